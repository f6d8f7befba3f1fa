//go:build unix

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/termstream/bell"
	"github.com/lixenwraith/termstream/service"
	"github.com/lixenwraith/termstream/source"
	"github.com/lixenwraith/termstream/terminal"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print events from the controlling terminal until the quit key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), a, cmd.OutOrStdout())
		},
	}
}

func runWatch(ctx context.Context, a *app, out io.Writer) error {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return fmt.Errorf("watch: %w", source.ErrNotTerminal)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tty *source.TtySource
	streamSvc := service.NewStreamService(func() (source.Source, error) {
		src, err := source.OpenTty(
			source.WithModes(a.cfg.Modes()),
			source.WithLogger(a.log),
			source.WithReadSize(a.cfg.Terminal.ReadSize),
		)
		tty = src
		return src, err
	})
	bellSvc := bell.NewService(a.cfg.Bell, bell.WithLogger(a.log))

	hub := service.NewHub(a.log)
	if err := hub.Register(streamSvc); err != nil {
		return err
	}
	if err := hub.Register(bellSvc); err != nil {
		return err
	}

	// Each service picks the args it recognizes
	args := []any{a.cfg.Bell, a.log}
	for _, opt := range a.cfg.StreamOptions() {
		args = append(args, opt)
	}
	if err := hub.InitAll(args...); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	quit, hasQuit := a.cfg.Quit()
	p := newPrinter(out, "\r\n")
	if cols, rows, err := source.Size(streamSvc.Source()); err == nil {
		p.note("terminal %dx%d", cols, rows)
	}
	if hasQuit {
		p.note("press %s to quit", quit)
	}

	// A dead read pump never closes the stream, so watch it directly
	var pumpDone <-chan struct{}
	if tty != nil {
		pumpDone = tty.Done()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pumpDone:
			if err := tty.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		case m, ok := <-streamSvc.Events():
			if !ok {
				return nil
			}
			if m.Err != nil {
				p.decodeErr(m.Err)
				bellSvc.Ring(bell.SoundError)
				continue
			}

			p.event(m.Event)
			if m.Event.Type != terminal.EventKey || m.Event.Modifiers != terminal.ModNone {
				continue
			}
			switch {
			case hasQuit && m.Event.Key == quit:
				return nil
			case m.Event.Key == terminal.KeyCtrlG:
				bellSvc.Ring(bell.SoundBell)
			}
		}
	}
}
