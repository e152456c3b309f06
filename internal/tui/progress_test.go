package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRowUpdateMsg(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "TOOL", Width: 10},
		{Header: "STATUS", Width: 10},
		{Header: "PATH", Width: 20},
	})
	m.AddRow("gdu", []string{"gdu", "pending", ""})
	m.AddRow("fzf", []string{"fzf", "pending", ""})

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "gdu",
		Fields: map[string]string{"STATUS": "installed", "PATH": "/opt/bin/gdu"},
	})
	m = updated.(ProgressModel)

	if m.rows[0].Fields[1] != "installed" {
		t.Errorf("expected STATUS=installed, got %q", m.rows[0].Fields[1])
	}
	if m.rows[0].Fields[2] != "/opt/bin/gdu" {
		t.Errorf("expected PATH=/opt/bin/gdu, got %q", m.rows[0].Fields[2])
	}
	// Second row unchanged.
	if m.rows[1].Fields[1] != "pending" {
		t.Errorf("expected fzf STATUS=pending, got %q", m.rows[1].Fields[1])
	}
}

func TestRowUpdateMsg_UnknownKey(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("gdu", []string{"pending"})

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "missing",
		Fields: map[string]string{"STATUS": "installed"},
	})
	m = updated.(ProgressModel)

	if m.rows[0].Fields[0] != "pending" {
		t.Errorf("expected STATUS unchanged, got %q", m.rows[0].Fields[0])
	}
}

func TestWorkDoneMsg(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "STATUS", Width: 10},
	})

	updated, cmd := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after WorkDoneMsg")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestErrorMsg(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "STATUS", Width: 10},
	})

	updated, cmd := m.Update(ErrorMsg{Err: errors.New("boom")})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after ErrorMsg")
	}
	if m.Err() == nil {
		t.Error("expected Err() to be non-nil")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestView(t *testing.T) {
	m := NewProgressModel(InstallColumns())
	m.AddRow("gdu", []string{"gdu", "release", "pending", ""})
	m.AddRow("fzf", []string{"fzf", "release", "installed", "/opt/bin/fzf"})

	view := m.View()

	for _, want := range []string{"TOOL", "KIND", "STATUS", "PATH", "gdu", "fzf", "pending", "installed", "/opt/bin/fzf"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestTickMsg(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("gdu", []string{"pending"})

	updated, cmd := m.Update(tickMsg{})
	m = updated.(ProgressModel)

	if m.tick != 1 {
		t.Errorf("expected tick=1 after tickMsg, got %d", m.tick)
	}
	if cmd == nil {
		t.Error("expected next tick command")
	}
}

func TestTickStopsAfterDone(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "STATUS", Width: 10},
	})
	updated, _ := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	updated, cmd := m.Update(tickMsg{})
	m = updated.(ProgressModel)

	if cmd != nil {
		t.Error("expected no tick command after done")
	}
}

func TestProgressCounts(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "TOOL", Width: 10},
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("a", []string{"a", "pending"})
	m.AddRow("b", []string{"b", "resolving"})
	m.AddRow("c", []string{"c", "installed"})

	processed, total := m.progressCounts()
	if total != 3 {
		t.Errorf("expected total=3, got %d", total)
	}
	if processed != 1 {
		t.Errorf("expected processed=1, got %d", processed)
	}
}

func TestViewShowsSpinnerWhenNotDone(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("gdu", []string{"pending"})

	view := m.View()
	if !strings.Contains(view, "Installing") {
		t.Error("expected view to contain Installing footer when not done")
	}
}

func TestViewHidesSpinnerWhenDone(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("gdu", []string{"installed"})
	updated, _ := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	view := m.View()
	if strings.Contains(view, "Installing") {
		t.Error("expected view to NOT contain Installing footer when done")
	}
}

func TestCtrlC(t *testing.T) {
	m := NewProgressModel([]Column{
		{Header: "STATUS", Width: 10},
	})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after ctrl+c")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"a longer string here", 10, "a longe..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		got := TruncateWithEllipsis(tt.input, tt.max)
		if got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}
