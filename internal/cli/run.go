package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kdiffteam/quickdiff/internal/config"
	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/prhub"
	"github.com/kdiffteam/quickdiff/internal/ui"
	"github.com/kdiffteam/quickdiff/internal/vcs"
)

func themeChoices() string {
	return strings.Join(ui.ThemeNames(), ", ")
}

func runDiffCmd(cmd *cobra.Command, args []string) error {
	if flagTheme != "" && !ui.IsValidTheme(flagTheme) {
		return fmt.Errorf("unknown theme %q (choices: %s)", flagTheme, themeChoices())
	}

	if flagStdin {
		return runPatchMode()
	}

	ctx := context.Background()
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	adaptor, repoRoot, err := discoverRepo(ctx, cwd)
	if err != nil {
		return fmt.Errorf("not inside a git or jj repository")
	}

	var rev string
	if len(args) > 0 {
		rev = args[0]
	}
	source := parseDiffSource(flagCommit, flagBase, rev)

	prRequested := cmd.Flags().Changed("pr")
	if prRequested {
		if _, isJJ := adaptor.(*vcs.JJAdaptor); isJJ {
			return fmt.Errorf("PR mode requires a git repository")
		}
	}

	var prNumber int
	if prRequested && flagPR != "0" && flagPR != "" {
		n, err := strconv.Atoi(flagPR)
		if err != nil {
			return fmt.Errorf("invalid --pr value %q: must be a PR number", flagPR)
		}
		prNumber = n
	}

	var prClient *prhub.Client
	if prRequested {
		owner, repo, err := prhub.ResolveCurrentRepo(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve current repository: %w", err)
		}
		prClient, err = prhub.NewClient(owner, repo)
		if err != nil {
			return err
		}
	}

	if !prRequested {
		files, err := adaptor.ChangedFiles(ctx, source)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No changes detected")
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	comments, err := core.OpenFileCommentStore(string(repoRoot))
	if err != nil {
		return fmt.Errorf("failed to open comment store: %w", err)
	}
	viewed, err := core.OpenFileViewedStore(config.StateFilePath(), string(repoRoot))
	if err != nil {
		return fmt.Errorf("failed to open viewed-state store: %w", err)
	}

	var opts []ui.AppOption
	if flagFile != "" {
		opts = append(opts, ui.WithFileFilter(flagFile))
	}
	if flagTheme != "" {
		opts = append(opts, ui.WithTheme(flagTheme))
	}
	if prRequested {
		if prNumber > 0 {
			opts = append(opts, ui.WithPRNumber(prNumber))
		} else {
			opts = append(opts, ui.WithPRPicker())
		}
	}

	app := ui.NewApp(adaptor, repoRoot, source, comments, viewed, cfg, opts...)
	if prClient != nil {
		app.SetPRClient(prClient)
	}

	return runProgram(app, os.Stdin)
}

// runPatchMode handles --stdin: the patch itself is read once from the
// original stdin, then input switches to the terminal (or /dev/tty, if
// stdin was piped) for the rest of the session.
func runPatchMode() error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("error reading stdin: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return fmt.Errorf("empty input from stdin")
	}
	files := core.ParseUnifiedDiff(string(raw))
	if len(files) == 0 {
		return fmt.Errorf("patch contains no files")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// A repo root only keys where comment/viewed-state is stored; patch
	// review works fine outside of a repository too.
	repoRoot := core.RepoRoot(cwd)
	if _, root, err := discoverRepo(context.Background(), cwd); err == nil {
		repoRoot = root
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	comments, err := core.OpenFileCommentStore(string(repoRoot))
	if err != nil {
		return fmt.Errorf("failed to open comment store: %w", err)
	}
	viewed, err := core.OpenFileViewedStore(config.StateFilePath(), string(repoRoot))
	if err != nil {
		return fmt.Errorf("failed to open viewed-state store: %w", err)
	}

	source := core.PatchSource(string(raw))
	var opts []ui.AppOption
	if flagTheme != "" {
		opts = append(opts, ui.WithTheme(flagTheme))
	}
	opts = append(opts, ui.WithPatch(source, files))

	app := ui.NewApp(vcs.NewPatchAdaptor(repoRoot, files), repoRoot, source, comments, viewed, cfg, opts...)

	tty, err := openTTYInput()
	if err != nil {
		return err
	}
	defer func() {
		if tty != os.Stdin {
			tty.Close()
		}
	}()
	return runProgram(app, tty)
}

func runProgram(app *ui.App, input *os.File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "quickdiff panicked: %v\n", r)
			err = fmt.Errorf("quickdiff panicked: %v", r)
		}
	}()
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithInput(input))
	if _, runErr := p.Run(); runErr != nil {
		return fmt.Errorf("quickdiff: %w", runErr)
	}
	return nil
}

// discoverRepo tries the git and jj adaptors in turn, since either may
// be the actual VCS backing cwd.
func discoverRepo(ctx context.Context, cwd string) (vcs.RepositoryAdaptor, core.RepoRoot, error) {
	git := vcs.NewGitAdaptor(cwd)
	if root, err := git.Root(ctx); err == nil {
		return git, root, nil
	}
	jj := vcs.NewJJAdaptor(cwd)
	if root, err := jj.Root(ctx); err == nil {
		return jj, root, nil
	}
	return nil, "", vcs.ErrNotARepo
}

// parseDiffSource mirrors the positional-argument precedence the
// original implementation uses: explicit --commit/--base flags win,
// then the positional revision is read as a range (a..b), a remote
// branch (contains / but no :), or else a plain commit.
func parseDiffSource(commit, base, rev string) core.DiffSource {
	if commit != "" {
		return core.CommitSource(commit)
	}
	if base != "" {
		return core.BaseSource(base)
	}
	if rev != "" {
		if idx := strings.Index(rev, ".."); idx >= 0 {
			from := rev[:idx]
			to := strings.TrimPrefix(rev[idx+2:], ".")
			return core.RangeSource(from, to)
		}
		if strings.Contains(rev, "/") && !strings.Contains(rev, ":") {
			return core.BaseSource(rev)
		}
		return core.CommitSource(rev)
	}
	return core.WorktreeSource()
}
