package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lepinkainen/audiomerge/audio"
)

func TestPrompter_Answers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"yes", "y\n", true},
		{"full yes uppercase", "YES\n", true},
		{"yes without newline", "y", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"anything else", "sure\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out, false)

			if got := p.ConfirmOverwrite("/music/album.mp3"); got != tt.expected {
				t.Errorf("ConfirmOverwrite with input %q = %v, expected %v", tt.input, got, tt.expected)
			}
			if !strings.Contains(out.String(), "/music/album.mp3") {
				t.Errorf("Prompt should name the output file, got %q", out.String())
			}
		})
	}
}

func TestPrompter_AssumeYes(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("n\n"), &out, true)

	groups := []audio.DuplicateGroup{{
		Size:  42,
		Files: []audio.InputFile{audio.NewInputFile("a.mp3"), audio.NewInputFile("b.mp3")},
	}}
	if !p.ConfirmDuplicates(groups) {
		t.Error("assumeYes should accept without reading input")
	}

	text := out.String()
	for _, want := range []string{"Found 1 group(s)", "a.mp3", "b.mp3", "Merge anyway? [y/N]: y"} {
		if !strings.Contains(text, want) {
			t.Errorf("Output missing %q:\n%s", want, text)
		}
	}
}

func TestPrompter_SequentialQuestions(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("y\nn\n"), &out, false)

	if !p.ConfirmOverwrite("out.mp3") {
		t.Error("First answer should be yes")
	}
	if p.ConfirmDuplicates(nil) {
		t.Error("Second answer should be no")
	}
}

func TestPrompter_Progress(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out, false)

	p.Progress(audio.ProgressEvent{Phase: audio.PhasePreparing, Percent: 10})
	p.Progress(audio.ProgressEvent{Phase: audio.PhaseProcessingFile, Index: 1, Total: 1, Name: "a.mp3", Percent: 80})
	p.Progress(audio.ProgressEvent{Phase: audio.PhaseComplete, Percent: 100})

	text := out.String()
	if !strings.Contains(text, "Processing file 1 of 1: a.mp3") || !strings.Contains(text, "Merge complete!") {
		t.Errorf("Expected progress descriptions, got %q", text)
	}
}
