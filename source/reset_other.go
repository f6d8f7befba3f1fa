//go:build !linux

package source

// resetTerminalMode is a no-op where termios is not reachable the linux way;
// tcell restores its own saved state on Stop
func resetTerminalMode() {}
