package ui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kdiffteam/quickdiff/internal/config"
	"github.com/kdiffteam/quickdiff/internal/core"
	"github.com/kdiffteam/quickdiff/internal/highlight"
	"github.com/kdiffteam/quickdiff/internal/prhub"
	"github.com/kdiffteam/quickdiff/internal/vcs"
	"github.com/kdiffteam/quickdiff/internal/worker"
)

// pollInterval mirrors original_source's ~50ms event::poll loop that
// drains workers and the filesystem watcher between keypresses.
const pollInterval = 50 * time.Millisecond

// App is the root Bubble Tea model driving quickdiff's review session —
// the ReviewEngine of the design.
type App struct {
	// Repo context
	adaptor        vcs.RepositoryAdaptor
	repoRoot       core.RepoRoot
	source         core.DiffSource
	commentCtx     core.CommentContext

	// File list
	files           []core.ChangedFile
	fileFilter      string
	selectedIdx     int
	sidebarScroll   int
	filteredIndices []int

	// Selection-derived
	diff           *core.DiffResult
	currentPath    core.RelPath
	isBinary       bool
	commentedHunks map[int]bool
	currentLang    string
	focusedHunk    int

	// Viewer
	scrollY  int
	scrollX  int
	viewMode ViewMode
	paneMode PaneMode

	// UI
	mode    Mode
	focus   Focus
	errMsg  string
	status  string
	dirty   bool
	width   int
	height  int

	// Comments overlay
	comments       core.CommentStore
	commentDraft   string
	commentList    []core.Comment
	commentSel     int
	includeResolved bool

	// Workers
	diffWorker     *worker.DiffWorker
	prWorker       *worker.PRWorker
	nextRequestID  uint64
	pendingReqID   uint64
	nextPRReqID    uint64
	pendingPRReqID uint64

	// Viewed tracking
	viewed core.ViewedStore

	// Watcher
	watcher *core.Watcher

	// Theme
	highlighter  *highlight.Cache
	theme        string
	themeNames   []string
	themeSel     int
	originalTheme string

	// PR
	prActive   bool
	prClient   *prhub.Client
	prCurrent  int
	prList     []prhub.PRSummary
	prSel      int
	prActionBody string
	prAction   worker.PRAction

	// Patch mode
	patchActive  bool
	patchLabel   string
	patchAdaptor *vcs.PatchAdaptor

	cfg       *config.Config
	logger    *slog.Logger
	shouldQuit bool
}

// AppOption configures a new App before its event loop starts.
type AppOption func(*App)

// WithFileFilter pre-applies a fuzzy file filter (core.FilterSorted).
func WithFileFilter(filter string) AppOption {
	return func(a *App) { a.fileFilter = filter }
}

// WithTheme selects the initial highlighter theme.
func WithTheme(name string) AppOption {
	return func(a *App) {
		if name != "" {
			a.theme = name
		}
	}
}

// WithPRNumber starts the app directly in PR review mode for number.
func WithPRNumber(number int) AppOption {
	return func(a *App) {
		a.prActive = true
		a.prCurrent = number
	}
}

// WithPRPicker starts the app with the PR picker open.
func WithPRPicker() AppOption {
	return func(a *App) { a.mode = ModePRPicker }
}

// WithPatch starts the app reviewing a fixed set of already-parsed
// ChangedFiles (e.g. a unified diff piped over stdin) instead of a live
// git/jj working tree, swapping in a vcs.PatchAdaptor to serve them.
func WithPatch(source core.DiffSource, files []core.ChangedFile) AppOption {
	return func(a *App) {
		a.patchActive = true
		a.patchLabel = "patch"
		a.source = source
		a.commentCtx = source.CommentContextFor()
		a.patchAdaptor = vcs.NewPatchAdaptor(a.repoRoot, files)
		a.adaptor = a.patchAdaptor
	}
}

// NewApp builds the ReviewEngine for repoRoot/source. adaptor, comments
// and viewed stores are injected so internal/cli can wire real
// filesystem/VCS backends while tests inject fakes.
func NewApp(adaptor vcs.RepositoryAdaptor, repoRoot core.RepoRoot, source core.DiffSource, comments core.CommentStore, viewed core.ViewedStore, cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = &config.Config{Theme: config.DefaultTheme, ContextLines: config.DefaultContextLines, WatchDebounceMs: config.DefaultWatchDebounceMs}
	}
	a := &App{
		adaptor:        adaptor,
		repoRoot:       repoRoot,
		source:         source,
		commentCtx:     source.CommentContextFor(),
		comments:       comments,
		viewed:         viewed,
		cfg:            cfg,
		theme:          cfg.Theme,
		themeNames:     themeNames,
		paneMode:       PaneBoth,
		viewMode:       ViewHunksOnly,
		focus:          FocusSidebar,
		mode:           ModeNormal,
		dirty:          true,
		commentedHunks: make(map[int]bool),
		logger:         slog.Default(),
	}
	a.highlighter = highlight.NewCache(highlight.NewChromaHighlighter(chromaStyleFor(a.theme)))
	a.originalTheme = a.theme

	w, err := core.NewWatcher(string(repoRoot))
	if err != nil {
		a.logger.Warn("watcher unavailable", "error", err)
	} else {
		a.watcher = w
	}

	for _, opt := range opts {
		opt(a)
	}
	// Built last so WithPatch's adaptor swap (if any) is already in place.
	a.diffWorker = worker.NewDiffWorker(a.adaptor)
	return a
}

// SetPRClient wires a prhub.Client for PR review sessions (nil for a
// plain git/jj session).
func (a *App) SetPRClient(client *prhub.Client) {
	a.prClient = client
	a.prWorker = worker.NewPRWorker(client)
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if a.prActive && a.prCurrent > 0 {
		cmds = append(cmds, a.requestPRDiff(a.prCurrent))
	} else if a.mode == ModePRPicker {
		cmds = append(cmds, a.listPRsCmd())
	} else {
		cmds = append(cmds, a.loadFilesCmd())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.recalcViewport()
		a.markDirty()
		return a, nil

	case pollTickMsg:
		var cmds []tea.Cmd
		if a.watcher != nil {
			if _, ok := a.watcher.Poll(); ok {
				cmds = append(cmds, func() tea.Msg { return WatchChangedMsg{} })
			}
		}
		if resp, ok := a.drainDiffWorker(); ok {
			cmds = append(cmds, func() tea.Msg { return DiffResultMsg{Resp: resp} })
		}
		if resp, ok := a.drainPRWorker(); ok {
			cmds = append(cmds, func() tea.Msg { return PRResultMsg{Resp: resp} })
		}
		cmds = append(cmds, tickCmd())
		return a, tea.Batch(cmds...)

	case WatchChangedMsg:
		return a, a.manualReload()

	case FilesLoadedMsg:
		return a.handleFilesLoaded(msg)

	case DiffResultMsg:
		return a.handleDiffResult(msg.Resp)

	case PRResultMsg:
		return a.handlePRResult(msg.Resp)

	case PRListLoadedMsg:
		return a.handlePRListLoaded(msg)

	case ErrMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
		}
		a.markDirty()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) View() string {
	return a.render()
}

func (a *App) markDirty() { a.dirty = true }

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(_ time.Time) tea.Msg { return pollTickMsg{} })
}
