package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"statdesk/internal/config"
	"statdesk/internal/log"
)

var (
	cfgFile    string
	debug      bool
	enginePath string
	cfg        *config.Config
	cfgPath    string
)

// NewRootCmd creates the root command. Running it with no subcommand opens
// the desktop window.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "statdesk",
		Short:   "A front-end for the sales statistics backend engine",
		Long:    `Statdesk collects csv/xlsx exports, lets you pick output options and runs the backend engine over them, showing per-file progress.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)

			var err error
			if cfgFile != "" {
				cfgPath = cfgFile
				cfg, err = config.LoadFile(cfgFile)
			} else {
				cfgPath, _ = config.DefaultPath()
				cfg, err = config.Load()
			}
			if err != nil {
				// A broken settings file should not keep the tool from
				// starting; fall back to defaults and say so.
				log.Warnf("settings not loaded: %v", err)
				fmt.Println("⚠️ Warning: settings could not be loaded, using defaults.")
				cfg = config.New()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			runGUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is config.yaml beside the executable)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&enginePath, "engine", "", "backend engine executable (default is backend_engine/ beside the executable)")

	rootCmd.AddCommand(NewGUICmd())
	rootCmd.AddCommand(NewTUICmd())

	return rootCmd
}
