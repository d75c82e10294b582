package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfsmaller/internal/uploader"
	"pdfsmaller/pkg/types"
)

// NewValidateCmd creates the validate command: a non-interactive run of
// the intake checks against files on disk.
func NewValidateCmd() *cobra.Command {
	var (
		accept  string
		maxSize string
	)

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check files against the intake rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if accept != "" {
				cfg.Uploader.Accept = accept
			}
			if maxSize != "" {
				cfg.Uploader.MaxSize = maxSize
			}

			refs := make([]*types.FileRef, 0, len(args))
			for _, path := range args {
				ref, err := types.FileRefFromPath(path)
				if err != nil {
					return fmt.Errorf("cannot read %s: %w", path, err)
				}
				refs = append(refs, ref)
			}

			up := uploader.New(cfg)
			results := up.ValidateFiles(cmd.Context(), refs)

			failed := 0
			for i, res := range results {
				name := refs[i].Name
				switch {
				case res.IsValid && len(res.Warnings) == 0:
					fmt.Printf("ok    %s\n", name)
				case res.IsValid:
					fmt.Printf("warn  %s\n", name)
					for _, w := range res.Warnings {
						fmt.Printf("        %s\n", w)
					}
				default:
					failed++
					fmt.Printf("FAIL  %s\n", name)
					for _, e := range res.Errors {
						fmt.Printf("        %s\n", e)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(refs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accept, "accept", "", "override the accept list (e.g. \".pdf,application/pdf\")")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "override the size limit (e.g. \"50MB\")")
	return cmd
}
