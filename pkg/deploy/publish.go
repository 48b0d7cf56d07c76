package deploy

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Options configures a publish run.
type Options struct {
	// Dir is the built output tree to publish.
	Dir string
	// Branch is the branch the output is committed to. Defaults to "gh-pages".
	Branch string
	// Remote is pushed to when non-empty (e.g. "origin").
	Remote string
	// Message overrides the default commit message.
	Message string
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Publish commits the output directory to the deploy branch and optionally
// pushes it. The output tree gets its own repository, separate from the
// source checkout.
func Publish(opts Options) error {
	if opts.Dir == "" {
		return fmt.Errorf("output directory is required")
	}
	if _, err := os.Stat(opts.Dir); err != nil {
		return fmt.Errorf("output directory not found, run a build first: %w", err)
	}
	if opts.Branch == "" {
		opts.Branch = "gh-pages"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client := NewClient(opts.Dir, opts.Logger)

	unlock, err := client.Lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := client.Init(); err != nil {
		return err
	}
	if err := client.Checkout(opts.Branch); err != nil {
		return err
	}
	if err := client.Add("-A"); err != nil {
		return err
	}

	status, err := client.Status()
	if err != nil {
		return err
	}
	if status == "" {
		opts.Logger.Info("nothing to publish, output unchanged")
		return nil
	}

	msg := opts.Message
	if msg == "" {
		msg = fmt.Sprintf("publish %s", time.Now().Format(time.RFC3339))
	}
	if err := client.Commit(msg); err != nil {
		return err
	}
	opts.Logger.Info("published output", "branch", opts.Branch)

	if opts.Remote != "" {
		if err := client.Push(opts.Remote, opts.Branch); err != nil {
			return err
		}
		opts.Logger.Info("pushed", "remote", opts.Remote, "branch", opts.Branch)
	}
	return nil
}
