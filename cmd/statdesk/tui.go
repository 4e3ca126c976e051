package main

import (
	"github.com/spf13/cobra"

	"statdesk/internal/tui"
)

// NewTUICmd creates the tui command: a terminal run over a fixed list of
// files or directories given as arguments.
func NewTUICmd() *cobra.Command {
	var outputDir string
	var toSource bool
	var onConflict string

	cmd := &cobra.Command{
		Use:   "tui [paths...]",
		Short: "Process files from the terminal",
		Long:  `Run the terminal front-end over the given csv/xlsx files and directories. Output options default to the saved settings and can be overridden per run.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCfg := cfg.RunConfig()
			if cmd.Flags().Changed("output-dir") {
				runCfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("output-to-source") {
				runCfg.UseSourceDirAsOutput = toSource
			}
			if cmd.Flags().Changed("on-conflict") {
				policy, err := parseConflict(onConflict)
				if err != nil {
					return err
				}
				runCfg.ConflictPolicy = policy
			}
			return tui.Run(enginePath, runCfg, args)
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for processed files")
	cmd.Flags().BoolVar(&toSource, "output-to-source", false, "write output next to each source file")
	cmd.Flags().StringVar(&onConflict, "on-conflict", "", "conflict policy: rename, overwrite or skip")

	return cmd
}
