package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pdfsmaller/internal/tui"
	"pdfsmaller/internal/uploader"
	"pdfsmaller/pkg/types"
)

// NewUploadCmd creates the upload command running the terminal interface.
func NewUploadCmd() *cobra.Command {
	var startMode string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Collect files interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if startMode != "" {
				if _, ok := types.ParseMode(startMode); !ok {
					return fmt.Errorf("invalid mode %q (want single or batch)", startMode)
				}
				cfg.Uploader.DefaultMode = startMode
			}

			up := uploader.New(cfg)
			model := tui.New(up)
			up.Init()

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("terminal interface failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startMode, "mode", "", "starting mode (single or batch)")
	return cmd
}
