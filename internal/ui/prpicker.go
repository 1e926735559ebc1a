package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kdiffteam/quickdiff/internal/worker"
)

func (a *App) handlePRPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		a.mode = ModeNormal
	case key.Matches(msg, SidebarKeys.Up):
		if a.prSel > 0 {
			a.prSel--
		}
	case key.Matches(msg, SidebarKeys.Down):
		if a.prSel < len(a.prList)-1 {
			a.prSel++
		}
	case msg.Type == tea.KeyEnter:
		if a.prSel >= 0 && a.prSel < len(a.prList) {
			number := a.prList[a.prSel].Number
			a.prActive = true
			a.prCurrent = number
			a.mode = ModeNormal
			a.markDirty()
			return a, a.requestPRDiff(number)
		}
	}
	a.markDirty()
	return a, nil
}

func (a *App) beginPRAction() {
	a.prActionBody = ""
	a.prAction = worker.PRActionNone
	a.mode = ModePRAction
}

func (a *App) handlePRActionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.markDirty()
		return a, nil
	case tea.KeyEnter:
		if a.prAction == worker.PRActionNone {
			a.markDirty()
			return a, nil
		}
		action, body := a.prAction, a.prActionBody
		a.mode = ModeNormal
		a.markDirty()
		return a, a.submitPRAction(a.prCurrent, action, body)
	case tea.KeyBackspace:
		if len(a.prActionBody) > 0 {
			a.prActionBody = a.prActionBody[:len(a.prActionBody)-1]
		}
	case tea.KeyRunes, tea.KeySpace:
		switch msg.String() {
		case "a":
			if a.prActionBody == "" {
				a.prAction = worker.PRActionApprove
				a.markDirty()
				return a, nil
			}
		case "c":
			if a.prActionBody == "" {
				a.prAction = worker.PRActionComment
				a.markDirty()
				return a, nil
			}
		case "r":
			if a.prActionBody == "" {
				a.prAction = worker.PRActionRequestChanges
				a.markDirty()
				return a, nil
			}
		}
		a.prActionBody += msg.String()
	}
	a.markDirty()
	return a, nil
}
