package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matterframe/matterframe/pkg/workspace"
)

// recentCommand creates the recent command for listing editing sessions.
func (c *CLI) recentCommand() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently edited scene files",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := workspace.NewFileStore("")
			if err != nil {
				return err
			}

			if clear {
				sessions, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, sess := range sessions {
					if err := store.Delete(cmd.Context(), sess.ID); err != nil {
						return err
					}
				}
				printSuccess("Cleared %d sessions", len(sessions))
				return nil
			}

			if err := store.Cleanup(cmd.Context()); err != nil {
				c.Logger.Debugf("Session cleanup failed: %v", err)
			}
			sessions, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				printInfo("No recent scenes")
				return nil
			}

			for _, sess := range sessions {
				fmt.Println(StyleValue.Render(sess.Path))
				printDetail("%d objects · %s", sess.ObjectCount, formatRelativeTime(sess.UpdatedAt))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "forget all recorded sessions")

	return cmd
}

// recordSession upserts a workspace entry for the given scene file.
// Session tracking is best-effort; failures are logged, never fatal.
func (c *CLI) recordSession(ctx context.Context, path string, objectCount int) {
	store, err := workspace.NewFileStore("")
	if err != nil {
		c.Logger.Debugf("Session store unavailable: %v", err)
		return
	}
	if err := workspace.Record(ctx, store, path, objectCount); err != nil {
		c.Logger.Debugf("Failed to record session: %v", err)
	}
}

// formatRelativeTime renders a timestamp as a human-friendly age.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
