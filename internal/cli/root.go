// Package cli implements quickdiff's command-line surface using Cobra:
// a root command whose own (non-persistent) flags select the diff
// source, file filter, theme, PR and stdin modes, plus the `comments`
// subcommand.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagCommit string
	flagBase   string
	flagFile   string
	flagTheme  string
	flagPR     string
	flagStdin  bool
)

var rootCmd = &cobra.Command{
	Use:   "quickdiff [REV]",
	Short: "A git/jj-first terminal diff viewer",
	Long: `quickdiff is a terminal UI for reviewing changes: the dirty working
tree, a base ref, a single commit, a revision range, an open GitHub pull
request, or a raw unified diff piped over stdin.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDiffCmd,
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&flagCommit, "commit", "c", "", "show changes from a specific commit")
	rootCmd.Flags().StringVarP(&flagBase, "base", "b", "", "compare against a base ref (e.g. origin/main)")
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "filter to a specific file")
	rootCmd.Flags().StringVarP(&flagTheme, "theme", "t", "", fmt.Sprintf("color theme (%s)", themeChoices()))
	rootCmd.Flags().StringVar(&flagPR, "pr", "", "browse and review GitHub pull requests (optionally specify a number)")
	rootCmd.Flags().Lookup("pr").NoOptDefVal = "0"
	rootCmd.Flags().BoolVar(&flagStdin, "stdin", false, "read a unified diff from stdin")

	rootCmd.AddCommand(commentsCmd)
}
