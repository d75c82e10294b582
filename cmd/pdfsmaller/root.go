package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfsmaller/internal/config"
	"pdfsmaller/internal/log"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pdfsmaller",
		Short:   "Dual-mode PDF upload front-end",
		Long:    `PDFSmaller collects PDF files for compression, one at a time or in batches, with validation and a remembered mode preference.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				fmt.Printf("Warning: %v\n", err)
				fmt.Println("Using default settings.")
				cfg = config.New()
			}

			if debug {
				cfg.Interface.Debug = true
			}
			log.SetDebug(cfg.Interface.Debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pdfsmaller/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewUploadCmd())
	rootCmd.AddCommand(NewGuiCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}
