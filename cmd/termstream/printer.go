package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/lixenwraith/termstream/terminal"
)

// printer writes one colored line per event
// eol is "\r\n" while the terminal is in raw mode
type printer struct {
	w   io.Writer
	eol string

	key    *color.Color
	mouse  *color.Color
	resize *color.Color
	other  *color.Color
	fail   *color.Color
	info   *color.Color
}

func newPrinter(w io.Writer, eol string) *printer {
	return &printer{
		w:      w,
		eol:    eol,
		key:    color.New(color.FgCyan),
		mouse:  color.New(color.FgMagenta),
		resize: color.New(color.FgYellow),
		other:  color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		info:   color.New(color.Faint),
	}
}

func (p *printer) event(ev terminal.Event) {
	c := p.other
	switch ev.Type {
	case terminal.EventKey:
		c = p.key
	case terminal.EventMouse:
		c = p.mouse
	case terminal.EventResize:
		c = p.resize
	}
	c.Fprint(p.w, ev.String())
	fmt.Fprint(p.w, p.eol)
}

func (p *printer) decodeErr(err error) {
	p.fail.Fprint(p.w, "error ", err.Error())
	fmt.Fprint(p.w, p.eol)
}

func (p *printer) note(format string, args ...any) {
	p.info.Fprintf(p.w, format, args...)
	fmt.Fprint(p.w, p.eol)
}
