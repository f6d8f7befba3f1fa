// Package source defines where terminal input comes from.
//
// A Source delivers raw input chunks and resize notifications through
// callbacks. Emitter, TtySource and GlobalSource keep one listener slot per kind:
// registering again replaces the previous listener, and disposing a
// replaced registration leaves the newer one untouched.
//
// Implementations:
//   - Emitter: in-memory source for tests and embedding
//   - TtySource: a tcell.Tty (usually /dev/tty) read by a pump goroutine
//   - XtermSource, GlobalSource: xterm.js in the browser (js/wasm only)
package source
