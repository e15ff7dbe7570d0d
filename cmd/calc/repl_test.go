package main

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgomes/calcengine/calc"
)

func enterInput(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)

	rm, cmd := enterInput(t, m, ":quit")
	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)

	rm, cmd := enterInput(t, m, ":help")
	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestUpdateEvaluatesExpressionAndRecordsHistory(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)

	rm, _ := enterInput(t, m, "(2+3)*4")
	if len(rm.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(rm.history))
	}
	entry := rm.history[0]
	if entry.isErr || entry.output != "20" {
		t.Fatalf("unexpected history entry: %#v", entry)
	}
	if len(rm.cmdHistory) != 1 || rm.cmdHistory[0] != "(2+3)*4" {
		t.Fatalf("unexpected command history: %v", rm.cmdHistory)
	}
}

func TestEvaluateReportsErrors(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)

	output, isErr := m.evaluate("2+")
	if !isErr {
		t.Fatalf("expected evaluation error, got %q", output)
	}
	if !strings.Contains(output, "missing an operand") {
		t.Fatalf("unexpected error output: %q", output)
	}
}

func TestEvaluateAppliesPrecision(t *testing.T) {
	m := newREPLModel(calc.Config{}, 2)

	output, isErr := m.evaluate("2/3")
	if isErr || output != "0.67" {
		t.Fatalf("unexpected output %q (err=%v)", output, isErr)
	}
}

func TestModeCommandTogglesAndSelects(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)

	if _, isErr := m.evaluate("4/0"); !isErr {
		t.Fatalf("strict mode should reject division by zero")
	}

	rm, _ := enterInput(t, m, ":mode")
	if rm.engine.Mode() != calc.ModeLenient {
		t.Fatalf("expected lenient mode after toggle, got %s", rm.engine.Mode())
	}
	if output, isErr := rm.evaluate("4/0"); isErr || output != "Infinity" {
		t.Fatalf("unexpected lenient output %q (err=%v)", output, isErr)
	}

	rm, _ = enterInput(t, rm, ":mode strict")
	if rm.engine.Mode() != calc.ModeStrict {
		t.Fatalf("expected strict mode, got %s", rm.engine.Mode())
	}

	rm, _ = enterInput(t, rm, ":mode sloppy")
	last := rm.history[len(rm.history)-1]
	if !last.isErr || !strings.Contains(last.output, "unknown mode") {
		t.Fatalf("expected unknown mode error, got %#v", last)
	}
	if rm.engine.Mode() != calc.ModeStrict {
		t.Fatalf("mode changed by invalid :mode argument")
	}
}

func TestPostfixToggleShowsPostfixForm(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)

	rm, _ := enterInput(t, m, ":postfix")
	if !rm.showPostfix {
		t.Fatalf("postfix toggle should be enabled")
	}
	output, isErr := rm.evaluate("2+3*4")
	if isErr {
		t.Fatalf("unexpected error: %s", output)
	}
	if !strings.HasPrefix(output, "14") || !strings.Contains(output, "2 3 4 * +") {
		t.Fatalf("unexpected output with postfix: %q", output)
	}
}

func TestUnknownCommandIsReported(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)

	rm, _ := enterInput(t, m, ":vars")
	last := rm.history[len(rm.history)-1]
	if !last.isErr || last.output != "Unknown command: :vars" {
		t.Fatalf("unexpected history entry: %#v", last)
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)
	m, _ = enterInput(t, m, "1+1")
	m, _ = enterInput(t, m, "2+2")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "2+2" {
		t.Fatalf("expected most recent entry, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "1+1" {
		t.Fatalf("expected older entry, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	if m.textInput.Value() != "" || m.historyIdx != -1 {
		t.Fatalf("expected history reset, got %q (%d)", m.textInput.Value(), m.historyIdx)
	}
}

func TestAutocompleteCommands(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)

	m.textInput.SetValue(":po")
	m = m.handleAutocomplete()
	if m.textInput.Value() != ":postfix" {
		t.Fatalf("expected :postfix completion, got %q", m.textInput.Value())
	}

	m.textInput.SetValue(":")
	m = m.handleAutocomplete()
	last := m.history[len(m.history)-1]
	if !strings.HasPrefix(last.output, "Completions: ") || !strings.Contains(last.output, ":quit") {
		t.Fatalf("unexpected completions entry: %#v", last)
	}

	m.textInput.SetValue("2+")
	before := len(m.history)
	m = m.handleAutocomplete()
	if m.textInput.Value() != "2+" || len(m.history) != before {
		t.Fatalf("expressions should not be completed")
	}
}

func TestViewRendersHistory(t *testing.T) {
	m := newREPLModel(calc.Config{}, -1)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = enterInput(t, m, "7%3")

	view := m.View()
	if !strings.Contains(view, "calc REPL") || !strings.Contains(view, "7%3") || !strings.Contains(view, "→ 1") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestHistoryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	missing, err := loadHistory(path)
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty history for missing file, got %v (%v)", missing, err)
	}

	entries := make([]string, 0, maxHistoryEntries+5)
	for i := 0; i < maxHistoryEntries+5; i++ {
		entries = append(entries, strings.Repeat("1", i%5+1)+"+1")
	}
	if err := saveHistory(path, entries); err != nil {
		t.Fatalf("saveHistory failed: %v", err)
	}
	loaded, err := loadHistory(path)
	if err != nil {
		t.Fatalf("loadHistory failed: %v", err)
	}
	if len(loaded) != maxHistoryEntries {
		t.Fatalf("expected %d entries, got %d", maxHistoryEntries, len(loaded))
	}
	if loaded[len(loaded)-1] != entries[len(entries)-1] {
		t.Fatalf("expected newest entry last, got %q", loaded[len(loaded)-1])
	}
}
