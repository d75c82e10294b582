package main

import (
	"github.com/spf13/cobra"

	"pdfsmaller/internal/gui"
)

// NewGuiCmd creates the gui command
func NewGuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.StartGUI(cfg)
		},
	}
}
