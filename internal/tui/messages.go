// Package tui provides Bubble Tea models for the interactive TUI.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/pmboard/internal/store"
)

// NavigateMsg asks the app to show another route.
type NavigateMsg struct {
	Path    string
	Replace bool // Replace the current history entry instead of pushing
}

// BackMsg asks the app to return to the previous route.
type BackMsg struct{}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}

// CacheChangedMsg carries a store notification into the program loop.
type CacheChangedMsg struct {
	Change store.Change
}

// mountedMsg is an async result that belongs to one mounted container.
// The app drops it when that container is no longer mounted.
type mountedMsg interface {
	mountID() int
}

type mounted struct {
	mount int
}

func (m mounted) mountID() int { return m.mount }

func navigateCmd(path string, replace bool) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path, Replace: replace} }
}

func backCmd() tea.Msg { return BackMsg{} }
