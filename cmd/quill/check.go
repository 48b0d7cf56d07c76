package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/quietpress/quill/pkg/site"
)

var checkJSON bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content without building",
	Long: `Check parses and validates every article against the schema and
reports group references that match no configured group. Schema failures
exit non-zero; dangling group references are warnings.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := site.New(
			site.WithConfigFile(configFile),
			site.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to load site", err)
		}

		articles, unknown, err := s.Check(context.Background())
		if err != nil {
			fatal("Content check failed", err)
		}

		for _, g := range unknown {
			fmt.Fprintf(os.Stderr, "warning: group %q is referenced but not configured\n", g)
		}

		if checkJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(articles); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("%d articles OK (%d drafts, %d group warnings)\n",
			len(articles), len(articles)-len(articles.Published()), len(unknown))

		if verbose {
			dumpState(s)
		}
	},
}

// dumpState prints introspection snapshots of the wired components.
func dumpState(s *site.Site) {
	for name, component := range map[string]any{
		"source":  s.Source,
		"service": s.Service,
		"builder": s.Builder,
	} {
		if i, ok := component.(introspection.Introspectable); ok {
			state, _ := json.Marshal(i.State())
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, state)
		}
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the validated articles as JSON")
}
