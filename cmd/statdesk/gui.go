package main

import (
	"github.com/spf13/cobra"

	"statdesk/internal/gui"
)

// NewGUICmd creates the gui command. It is also the root command's default.
func NewGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window",
		Run: func(cmd *cobra.Command, args []string) {
			runGUI()
		},
	}
}

func runGUI() {
	app := gui.NewApp(cfg, cfgPath, enginePath)
	app.Run()
}
