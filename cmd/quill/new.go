package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietpress/quill/pkg/adapters/fs"
	"github.com/quietpress/quill/pkg/core"
	"github.com/quietpress/quill/pkg/site"
)

var (
	newTitle       string
	newCategory    string
	newTags        []string
	newIcon        string
	newGroup       string
	newDescription string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <id>",
	Short: "Scaffold a new article",
	Long: `Create a content file with pre-filled front-matter. The ID becomes
the file path under the content directory and the URL slug, e.g.
"pipelines/retry-budgets" writes content/pipelines/retry-budgets.md.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := strings.Trim(args[0], "/")

		s, err := site.New(site.WithConfigFile(configFile))
		if err != nil {
			fatal("Failed to load site", err)
		}

		source, ok := s.Source.(*fs.Source)
		if !ok {
			fatal("Cannot scaffold", fmt.Errorf("content source is not filesystem-backed"))
		}

		path, err := source.Scaffold(id, scaffoldMetadata(id), "Write here.\n")
		if err != nil {
			fatal("Failed to scaffold article", err)
		}

		fmt.Printf("Created %s\n", path)
	},
}

// scaffoldMetadata builds front-matter for a fresh article from the flags.
// Every required field is seeded with a real value: a scaffolded file must
// pass validation on the very next build.
func scaffoldMetadata(id string) core.Metadata {
	title := newTitle
	if title == "" {
		title = titleFromID(id)
	}
	description := newDescription
	if description == "" {
		description = "Draft: " + title + "."
	}

	meta := core.Metadata{
		"title":       title,
		"date":        time.Now().Format("2006-01-02"),
		"category":    newCategory,
		"tags":        newTags,
		"icon":        newIcon,
		"description": description,
		"draft":       true,
	}
	if newGroup != "" {
		meta["group"] = newGroup
	}
	return meta
}

// titleFromID derives a readable default title from the last slug segment.
func titleFromID(id string) string {
	slug := id
	if i := strings.LastIndex(id, "/"); i >= 0 {
		slug = id[i+1:]
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Article title (defaults from the ID)")
	newCmd.Flags().StringVar(&newCategory, "category", "engineering", "Article category")
	newCmd.Flags().StringSliceVar(&newTags, "tags", []string{"draft"}, "Comma-separated tags")
	newCmd.Flags().StringVar(&newIcon, "icon", "article", "Icon key")
	newCmd.Flags().StringVar(&newGroup, "group", "", "Group ID from site configuration")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Short description (defaults from the title)")
}
