package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quietpress/quill/pkg/deploy"
	"github.com/quietpress/quill/pkg/site"
)

var (
	deployBranch  string
	deployRemote  string
	deployMessage string
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Publish the built output to a git branch",
	Long: `Commit the output directory to a deploy branch (gh-pages by default)
and push it when a remote is given. Run a build first; deploy never
rebuilds on its own.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := site.New(site.WithConfigFile(configFile))
		if err != nil {
			fatal("Failed to load site", err)
		}

		err = deploy.Publish(deploy.Options{
			Dir:     s.Config.OutputDir,
			Branch:  deployBranch,
			Remote:  deployRemote,
			Message: deployMessage,
			Logger:  slog.Default(),
		})
		if err != nil {
			fatal("Deploy failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)
	deployCmd.Flags().StringVarP(&deployBranch, "branch", "b", "gh-pages", "Deploy branch")
	deployCmd.Flags().StringVarP(&deployRemote, "remote", "r", "", "Remote to push to (skip push when empty)")
	deployCmd.Flags().StringVarP(&deployMessage, "message", "m", "", "Commit message")
}
