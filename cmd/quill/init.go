package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quietpress/quill/pkg/site"
)

const starterConfig = `title: My Site
description: Notes and projects.
base_url: https://example.com

author:
  name: Your Name

# social:
#   - name: GitHub
#     url: https://github.com/you
#     icon: github

# groups:
#   - id: projects
#     name: Projects
#     order: 1
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new quill project in the current directory",
	Long:  `Create the starter quill.yaml plus the content and static directories.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		configPath := filepath.Join(cwd, site.DefaultConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			fatal("Cannot initialize", fmt.Errorf("%s already exists", site.DefaultConfigFile))
		}

		for _, dir := range []string{"content", "static"} {
			if err := os.MkdirAll(filepath.Join(cwd, dir), 0755); err != nil {
				fatal("Failed to create directory", err)
			}
		}
		if err := os.WriteFile(configPath, []byte(starterConfig), 0644); err != nil {
			fatal("Failed to write config", err)
		}

		fmt.Println("Initialized quill project in", cwd)
		fmt.Println("Next: quill new hello-world && quill serve")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
