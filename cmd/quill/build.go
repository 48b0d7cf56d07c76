package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietpress/quill/pkg/site"
)

var (
	buildDrafts  bool
	buildBaseURL string
	buildOutput  string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site into the output directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := site.New(
			site.WithConfigFile(configFile),
			site.WithDrafts(buildDrafts),
			site.WithBaseURL(buildBaseURL),
			site.WithOutputDir(buildOutput),
			site.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to load site", err)
		}

		stats, err := s.Build(context.Background())
		if err != nil {
			fatal("Build failed", err)
		}

		fmt.Printf("Built %d articles (%d pages) in %s\n",
			stats.Articles, stats.Pages, stats.Duration.Round(time.Millisecond))
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&buildDrafts, "drafts", "D", false, "Include draft articles")
	buildCmd.Flags().StringVar(&buildBaseURL, "base-url", "", "Override the configured base URL")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Override the output directory")
}
