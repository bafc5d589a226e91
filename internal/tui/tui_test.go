package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/docchat/internal/appconfig"
	"github.com/mwiater/docchat/internal/chat"
	"github.com/mwiater/docchat/internal/citation"
	"github.com/mwiater/docchat/internal/display"
)

type stubAnswerer struct{}

func (stubAnswerer) Ask(ctx context.Context, mode display.Mode, question string) (display.Response, error) {
	return display.Response{Answer: "ok"}, nil
}

func newTestModel(t *testing.T) *model {
	t.Helper()
	session, err := chat.NewSession(chat.Options{Backend: stubAnswerer{}})
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	return initialModel(context.Background(), &appconfig.Config{}, session)
}

// TestUpdate drives key presses and window size changes through the model and
// checks the resulting state.
func TestUpdate(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected a quit command, but got nil")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("Expected a quit command, but got nil")
	}

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = newModel.(*model)
	if m.width != 100 || m.height != 40 {
		t.Errorf("Expected width 100 and height 40, got %d and %d", m.width, m.height)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.session.Mode() != display.ModeInquiry {
		t.Errorf("Expected tab to switch to inquiry mode, got %q", m.session.Mode())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.session.Mode() != display.ModeSearch {
		t.Errorf("Expected tab to switch back to search mode, got %q", m.session.Mode())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.isLoading {
		t.Errorf("Expected empty input to be ignored")
	}

	m.textArea.SetValue("where is the manual?")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a command to fetch the answer")
	}
	if !m.isLoading {
		t.Error("Expected the model to be loading")
	}
	if entries := m.session.Entries(); len(entries) != 1 || entries[0].Content != display.Text("where is the manual?") {
		t.Fatalf("Expected the user turn to be recorded, got %#v", entries)
	}
	if m.textArea.Value() != "" {
		t.Error("Expected the input to be cleared")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.session.Mode() != display.ModeSearch {
		t.Error("Expected mode to stay fixed while loading")
	}

	m.Update(answerMsg{mode: display.ModeSearch, resp: display.Response{
		Answer:  "found it",
		Context: []citation.Document{{Metadata: map[string]any{"source": "manual.pdf", "page": 4}}},
	}})
	if m.isLoading {
		t.Error("Expected loading to finish")
	}
	entries := m.session.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	rec, ok := entries[1].Content.(display.SearchRecord)
	if !ok || len(rec.FileInfoList) != 1 || rec.FileInfoList[0] != "manual.pdf（ページNo.5）" {
		t.Fatalf("Unexpected assistant record %#v", entries[1].Content)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if len(m.session.Entries()) != 0 {
		t.Error("Expected ctrl+r to reset the conversation")
	}
}

// TestView checks the initial screen, the replayed conversation and error output.
func TestView(t *testing.T) {
	m := newTestModel(t)
	if view := m.View(); view != "Initializing..." {
		t.Errorf("Expected initializing view, got %q", view)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	_ = m.session.Submit("list the HR staff")
	m.Update(answerMsg{mode: display.ModeInquiry, resp: display.Response{
		Answer:  "three people",
		Context: []citation.Document{{Metadata: map[string]any{"source": "staff.csv"}}},
	}})

	view := m.View()
	for _, want := range []string{appconfig.DefaultAppName, string(display.ModeSearch), "list the HR staff", "three people", "staff.csv"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}

	m.Update(answerErr{error: errors.New("backend down")})
	if view := m.View(); !strings.Contains(view, "Error: backend down") {
		t.Errorf("Expected error in view, got:\n%s", view)
	}
}

func TestViewShowsModeHelp(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	summary, _ := display.ModeInquiry.Description()
	if view := m.View(); !strings.Contains(view, summary) {
		t.Errorf("Expected mode help in view")
	}
}
