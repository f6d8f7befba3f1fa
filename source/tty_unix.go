//go:build unix

package source

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// OpenTty returns a TtySource on /dev/tty, which works even when stdin or
// stdout are redirected
func OpenTty(opts ...TtyOption) (*TtySource, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, fmt.Errorf("open /dev/tty: %w", err)
	}
	return NewTtySource(tty, opts...), nil
}
