package main

import (
	"os"

	"github.com/lixenwraith/termstream/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries state shared by subcommands once flags are parsed
type app struct {
	configPath string
	debug      bool

	cfg     config.Config
	log     *logrus.Logger
	logFile *os.File
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	root := &cobra.Command{
		Use:   "termstream",
		Short: "Decode terminal input into events",
		Long: `termstream turns raw terminal input (keys, mouse reports, focus changes,
bracketed paste, resizes) into a stream of decoded events.

Configuration is read from an optional YAML file and TERMSTREAM_* environment
variables, which take precedence over the file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging to the log directory")

	root.AddCommand(newWatchCmd(a), newDecodeCmd(a))
	return root
}

// setup loads configuration and routes logging
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.Debug = true
	}
	a.cfg = cfg

	a.log.SetLevel(cfg.Level())
	a.logFile = setupLogging(a.log, cfg.LogDir, cfg.Debug)
	a.log.WithField("config", a.configPath).Debug("termstream starting")
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}
