package ui

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// copyCurrentPath copies the selected file's repo-relative path to the
// system clipboard.
func (a *App) copyCurrentPath() {
	if a.currentPath == "" {
		return
	}
	if err := clipboard.WriteAll(string(a.currentPath)); err != nil {
		a.errMsg = err.Error()
		return
	}
	a.status = "copied path"
}

// openInEditor suspends the TUI and opens the current file in $EDITOR
// (falling back to vi), returning focus to quickdiff once it exits.
func (a *App) openInEditor() tea.Cmd {
	if a.currentPath == "" {
		return nil
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	path := filepath.Join(string(a.repoRoot), string(a.currentPath))
	c := exec.Command(editor, path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return ErrMsg{Err: err}
		}
		return nil
	})
}
