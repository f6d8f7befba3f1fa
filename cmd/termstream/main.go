// Command termstream prints decoded terminal input events.
//
//	termstream watch            live events from the controlling terminal
//	termstream decode [file]    decode captured input bytes offline
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/termstream/source"
)

func main() {
	// Panic recovery: the terminal may be in raw mode with reports enabled
	defer func() {
		if r := recover(); r != nil {
			source.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMSTREAM CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
