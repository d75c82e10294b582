package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pdfsmaller/internal/events"
	"pdfsmaller/internal/uploader"
	"pdfsmaller/internal/watch"
)

// NewWatchCmd creates the watch command: a headless drop-directory intake.
func NewWatchCmd() *cobra.Command {
	var dropDir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a drop directory and collect arriving PDFs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dropDir != "" {
				cfg.Watch.DropDir = dropDir
			}
			if cfg.Watch.DropDir == "" {
				return fmt.Errorf("no drop directory configured; pass --dir or set watch.drop_dir")
			}

			up := uploader.New(cfg)
			up.Events().Subscribe(events.FilesProcessed, func(ev events.Event) {
				p := ev.Payload.(events.FilesProcessedPayload)
				fmt.Printf("accepted %d of %d file(s), %d in list\n",
					p.ValidFiles, p.TotalFiles, up.FileCount())
			})
			up.Events().Subscribe(events.ValidationError, func(ev events.Event) {
				p := ev.Payload.(events.ValidationIssuesPayload)
				for _, issue := range p.Issues {
					fmt.Printf("rejected: %s\n", issue)
				}
			})
			up.Init()

			daemon, err := watch.NewDaemon(cfg, up)
			if err != nil {
				return err
			}
			if err := daemon.Start(); err != nil {
				return err
			}
			defer daemon.Stop()

			fmt.Printf("Watching %s; press Ctrl+C to stop.\n", cfg.Watch.DropDir)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			st := daemon.Status()
			fmt.Printf("Handled %d file(s); %d accepted into the list.\n",
				st.FilesHandled, up.FileCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&dropDir, "dir", "", "drop directory to watch")
	return cmd
}
