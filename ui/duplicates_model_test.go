package ui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/audiomerge/audio"
)

func testGroups() []audio.DuplicateGroup {
	return []audio.DuplicateGroup{
		{
			Size:   100,
			Digest: "abc123",
			Files:  []audio.InputFile{audio.NewInputFile("/m/track1.mp3"), audio.NewInputFile("/m/copy/track1.mp3")},
		},
		{
			Size:   200,
			Digest: "def456",
			Files: []audio.InputFile{
				audio.NewInputFile("/m/track3.mp3"),
				audio.NewInputFile("/m/track3 (1).mp3"),
				audio.NewInputFile("/m/track3 (2).mp3"),
			},
		},
	}
}

func press(m DuplicatesModel, msgs ...tea.Msg) (DuplicatesModel, tea.Cmd) {
	var cmd tea.Cmd
	var updated tea.Model = m
	for _, msg := range msgs {
		updated, cmd = updated.(DuplicatesModel).Update(msg)
	}
	return updated.(DuplicatesModel), cmd
}

func TestNewDuplicatesModel(t *testing.T) {
	model := NewDuplicatesModel(testGroups(), "test")

	if len(model.groups) != 2 {
		t.Errorf("Expected 2 groups, got %d", len(model.groups))
	}

	if model.currentGroup != 0 {
		t.Errorf("Expected currentGroup to be 0, got %d", model.currentGroup)
	}

	if model.currentFile != 0 {
		t.Errorf("Expected currentFile to be 0, got %d", model.currentFile)
	}

	if model.groups[1].Digest != "def456" {
		t.Errorf("Expected groups in detector order, got %q first", model.groups[0].Digest)
	}
}

func TestNewDuplicatesModelEmptyInput(t *testing.T) {
	model := NewDuplicatesModel(nil, "test")

	if len(model.groups) != 0 {
		t.Errorf("Expected 0 groups for empty input, got %d", len(model.groups))
	}

	if !strings.Contains(model.View(), "No duplicate files") {
		t.Error("Expected empty view message")
	}
}

func TestDuplicateGroupStructure(t *testing.T) {
	model := NewDuplicatesModel(testGroups()[:1], "test")

	group := model.groups[0]
	if group.Digest != "abc123" {
		t.Errorf("Expected digest 'abc123', got '%s'", group.Digest)
	}

	if len(group.Files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(group.Files))
	}

	if len(group.Selected) != 2 {
		t.Errorf("Expected 2 selection states, got %d", len(group.Selected))
	}

	// Ensure no files are excluded by default
	for i, selected := range group.Selected {
		if selected {
			t.Errorf("Expected file %d to be kept by default", i)
		}
	}
}

func TestDuplicatesModel_ExcludeAndConfirm(t *testing.T) {
	m := NewDuplicatesModel(testGroups(), "test")

	// exclude the copy in group 1, then all but the first in group 2
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = press(m, key("n"), key("d"))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.confirmingExclusion {
		t.Fatal("Expected confirmation dialog")
	}
	if !strings.Contains(m.View(), "Leave 3 file(s) out of the merge?") {
		t.Errorf("Unexpected dialog:\n%s", m.View())
	}

	m, cmd := press(m, key("y"))
	if cmd == nil {
		t.Fatal("Expected confirmation command")
	}
	m, cmd = press(m, cmd())
	if cmd == nil || !m.Confirmed() {
		t.Fatal("Expected model to finish after confirmation")
	}

	want := []string{"/m/copy/track1.mp3", "/m/track3 (1).mp3", "/m/track3 (2).mp3"}
	if got := m.Excluded(); !reflect.DeepEqual(got, want) {
		t.Errorf("Excluded() = %v, expected %v", got, want)
	}

	all := []string{"/m/track3.mp3", "/m/track10.mp3", "/m/track1.mp3", "/m/copy/track1.mp3", "/m/track3 (1).mp3", "/m/track3 (2).mp3"}
	kept := m.KeptFiles(all)
	wantKept := []string{"/m/track1.mp3", "/m/track3.mp3", "/m/track10.mp3"}
	if !reflect.DeepEqual(kept, wantKept) {
		t.Errorf("KeptFiles() = %v, expected %v", kept, wantKept)
	}
}

func TestDuplicatesModel_CancelConfirmation(t *testing.T) {
	m := NewDuplicatesModel(testGroups(), "test")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, tea.KeyMsg{Type: tea.KeyEnter}, key("n"))

	if m.confirmingExclusion || m.Confirmed() {
		t.Error("Expected to return to the main view")
	}
	if !m.groups[0].Selected[0] {
		t.Error("Selections survive a cancelled confirmation")
	}
}

func TestDuplicatesModel_QuitKeepsEverything(t *testing.T) {
	m := NewDuplicatesModel(testGroups(), "test")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, key("q"))

	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if m.Confirmed() || len(m.Excluded()) != 0 {
		t.Error("Quitting must not exclude anything")
	}
}

func TestDuplicatesModel_FullyExcludedWarning(t *testing.T) {
	m := NewDuplicatesModel(testGroups(), "test")
	m, _ = press(m,
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	if !strings.Contains(m.View(), "1 group(s) will have no copy left") {
		t.Errorf("Expected warning about fully excluded group:\n%s", m.View())
	}
}

func TestDuplicatesModel_Navigation(t *testing.T) {
	m := NewDuplicatesModel(testGroups(), "test")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.currentFile != 0 {
		t.Errorf("Cursor should stay at top, got %d", m.currentFile)
	}

	m, _ = press(m, key("n"), key("j"), key("j"), key("j"))
	if m.currentGroup != 1 || m.currentFile != 2 {
		t.Errorf("Expected group 1 file 2, got group %d file %d", m.currentGroup, m.currentFile)
	}

	m, _ = press(m, key("n"))
	if m.currentGroup != 1 {
		t.Errorf("Cannot move past last group, got %d", m.currentGroup)
	}

	m, _ = press(m, key("p"))
	if m.currentGroup != 0 || m.currentFile != 0 {
		t.Errorf("Expected first group, got group %d file %d", m.currentGroup, m.currentFile)
	}
}

func TestOptimizePaths(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"single path unchanged", []string{"/a/b.mp3"}, []string{"/a/b.mp3"}},
		{"relative names", []string{"a.mp3", "b.mp3"}, []string{"a.mp3", "b.mp3"}},
		{
			"common prefix trimmed",
			[]string{"/music/album/cd1/x.mp3", "/music/album/cd2/x.mp3"},
			[]string{".../album/cd1/x.mp3", ".../album/cd2/x.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := optimizePaths(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("optimizePaths(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}
