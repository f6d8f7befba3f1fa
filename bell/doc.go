// Package bell rings an audible alert when the input stream reports trouble.
//
// Sounds are synthesized with beep (oscillator, attack/release envelope,
// volume), rendered once to signed 16-bit little-endian stereo PCM and
// piped to a system player detected on PATH (pacat, pw-cat, aplay, sox
// play, ffplay). Without a player the bell stays silent; that is not an
// error.
package bell
