package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/termstream/source"
	"github.com/lixenwraith/termstream/stream"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	var chunk int

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode captured terminal input from a file or stdin",
		Long: `decode feeds raw input bytes through the event stream and prints one
line per event. --chunk splits the input into fixed-size chunks to show that
sequences split across reads decode the same way. A chunk ending in a lone
ESC decodes as the Escape key, as it would from a real terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			opts := append(a.cfg.StreamOptions(), stream.WithLogger(a.log))
			events, errs, err := runDecode(in, cmd.OutOrStdout(), chunk, opts...)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{"events": events, "errors": errs}).Debug("decode finished")
			return nil
		},
	}
	cmd.Flags().IntVar(&chunk, "chunk", 0, "feed input in chunks of N bytes (0 = all at once)")
	return cmd
}

// runDecode emits r's bytes through an Emitter-backed stream and prints
// every result to w
func runDecode(r io.Reader, w io.Writer, chunk int, opts ...stream.Option) (events, errs int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, 0, fmt.Errorf("read input: %w", err)
	}

	em := source.NewEmitter(0, 0)
	s, err := stream.New(em, opts...)
	if err != nil {
		return 0, 0, err
	}

	if chunk <= 0 {
		chunk = len(data)
	}
	for off := 0; off < len(data); off += chunk {
		em.EmitData(string(data[off:min(off+chunk, len(data))]))
	}
	s.Close()

	p := newPrinter(w, "\n")
	for ev, err := range s.All(context.Background()) {
		if err != nil {
			p.decodeErr(err)
			errs++
			continue
		}
		p.event(ev)
		events++
	}
	p.note("%d events, %d errors", events, errs)
	return events, errs, nil
}
