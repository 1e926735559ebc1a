package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kdiffteam/quickdiff/internal/core"
)

var (
	commentsIncludeResolved bool
	commentsFilterPath      string
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Inspect and triage review comments without the TUI",
}

var commentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List review comments in the current repository",
	RunE:  runCommentsList,
}

var commentsResolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Mark a comment resolved",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsResolve,
}

func init() {
	commentsListCmd.Flags().BoolVar(&commentsIncludeResolved, "all", false, "include resolved comments")
	commentsListCmd.Flags().StringVar(&commentsFilterPath, "path", "", "only list comments on this file")
	commentsCmd.AddCommand(commentsListCmd, commentsResolveCmd)
}

func openCommentsStore() (core.CommentStore, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	_, repoRoot, err := discoverRepo(context.Background(), cwd)
	if err != nil {
		return nil, fmt.Errorf("not inside a git or jj repository")
	}
	store, err := core.OpenFileCommentStore(string(repoRoot))
	if err != nil {
		return nil, fmt.Errorf("failed to open comment store: %w", err)
	}
	return store, nil
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	store, err := openCommentsStore()
	if err != nil {
		return err
	}

	var comments []core.Comment
	if commentsFilterPath != "" {
		comments = store.ListForPath(commentsFilterPath, commentsIncludeResolved)
	} else {
		comments = store.List(commentsIncludeResolved)
	}

	if len(comments) == 0 {
		fmt.Println("No comments found")
		return nil
	}
	for _, c := range comments {
		status := "OPEN"
		if c.Status == core.StatusResolved {
			status = "RESOLVED"
		}
		fmt.Printf("[%d] %s (%s) - %s\n", c.ID, c.Path, status, c.Message)
		fmt.Printf("    %s\n", core.FormatAnchorSummary(c.Anchor))
	}
	return nil
}

func runCommentsResolve(cmd *cobra.Command, args []string) error {
	store, err := openCommentsStore()
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid comment id %q", args[0])
	}
	ok, err := store.Resolve(core.CommentID(id))
	if err != nil {
		return fmt.Errorf("failed to resolve comment %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("no comment with id %d", id)
	}
	fmt.Printf("Resolved comment %d\n", id)
	return nil
}
