package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/quietpress/quill/pkg/server"
	"github.com/quietpress/quill/pkg/site"
)

var (
	serveAddr     string
	serveDrafts   bool
	serveNoReload bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it locally, rebuilding on change",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := site.New(
			site.WithConfigFile(configFile),
			site.WithDrafts(serveDrafts),
			site.WithLiveReload(!serveNoReload),
			site.WithBaseURL("http://"+serveAddr),
			site.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to load site", err)
		}

		if _, err := s.Build(ctx); err != nil {
			fatal("Initial build failed", err)
		}

		srv := server.New(server.Config{
			Addr:   serveAddr,
			Dir:    s.Config.OutputDir,
			Logger: slog.Default(),
		})

		events, err := s.Watch(ctx)
		if err != nil {
			fatal("Failed to watch content", err)
		}

		lifecycle.Go(ctx, func(ctx context.Context) error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-events:
					if !ok {
						return nil
					}
					slog.Info("content changed, rebuilding", "id", event.ID, "type", event.Type)
					if _, err := s.Build(ctx); err != nil {
						// A broken edit must not kill the server; the last
						// good output keeps being served.
						slog.Error("rebuild failed", "error", err)
						continue
					}
					srv.Hub().NotifyReload()
				}
			}
		})

		fmt.Printf("Serving %s on http://%s (Ctrl+C to stop)\n", s.Config.OutputDir, serveAddr)
		if err := srv.Run(ctx); err != nil {
			fatal("Server error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "localhost:1414", "Listen address")
	serveCmd.Flags().BoolVarP(&serveDrafts, "drafts", "D", true, "Include draft articles")
	serveCmd.Flags().BoolVar(&serveNoReload, "no-livereload", false, "Disable browser auto-reload")
}
