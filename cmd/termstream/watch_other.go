//go:build !unix

package main

import (
	"fmt"

	"github.com/lixenwraith/termstream/source"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print events from the controlling terminal (unix only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("watch: %w", source.ErrUnsupported)
		},
	}
}
