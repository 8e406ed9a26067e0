package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/audiomerge/audio"
)

// File log entry for the appended files list
type FileLogEntry struct {
	Name  string
	Index int
	Total int
}

func (f FileLogEntry) FilterValue() string { return f.Name }
func (f FileLogEntry) Title() string       { return f.Name }
func (f FileLogEntry) Description() string {
	return fmt.Sprintf("✓ appended (%d/%d)", f.Index, f.Total)
}

// MergeModel shows the progress of one merge job and answers engine questions
type MergeModel struct {
	// Job description
	files  []string
	output string

	// Engine state
	percent     float64
	status      string
	fileEntries []FileLogEntry
	pending     *ConfirmRequestMsg
	result      *audio.MergeResult

	// UI components
	progressBar progress.Model
	fileList    list.Model

	// Layout
	width  int
	height int

	// Control state
	quitting bool

	// Version for display
	Version string
}

// NewMergeModel creates the model for job
func NewMergeModel(job audio.MergeJob, version string) MergeModel {
	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Appended Files"
	fileList.SetShowHelp(false)

	return MergeModel{
		files:       job.Paths(),
		output:      job.OutputPath(),
		status:      "Waiting to start...",
		progressBar: progress.New(progress.WithDefaultGradient()),
		fileList:    fileList,
		Version:     version,
	}
}

// Init implements tea.Model
func (m MergeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m MergeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pending != nil {
			return m.handleConfirmationInput(msg)
		}
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			// copying cannot be interrupted, so q only works once the job is over
			if m.result != nil {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = max(msg.Width-10, 10)
		m.fileList.SetSize(msg.Width-4, msg.Height/3)

	case ProgressMsg:
		m.percent = msg.Event.Percent / 100
		m.status = msg.Event.Message()
		if msg.Event.Phase == audio.PhaseProcessingFile {
			m.fileEntries = append(m.fileEntries, FileLogEntry{
				Name:  msg.Event.Name,
				Index: msg.Event.Index,
				Total: msg.Event.Total,
			})
			items := make([]list.Item, len(m.fileEntries))
			for i, entry := range m.fileEntries {
				items[i] = entry
			}
			m.fileList.SetItems(items)
		}

	case ConfirmRequestMsg:
		req := msg
		m.pending = &req

	case MergeDoneMsg:
		res := msg.Result
		m.result = &res
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MergeModel) handleConfirmationInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.answer(true)

	case "n", "N", "esc":
		m.answer(false)

	case "ctrl+c":
		m.answer(false)
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *MergeModel) answer(ok bool) {
	if m.pending == nil {
		return
	}
	if m.pending.Reply != nil {
		m.pending.Reply <- ok
	}
	m.pending = nil
}

// Percent is the last reported progress as a fraction
func (m MergeModel) Percent() float64 {
	return m.percent
}

// Result returns the final result once MergeDoneMsg arrived
func (m MergeModel) Result() (audio.MergeResult, bool) {
	if m.result == nil {
		return audio.MergeResult{}, false
	}
	return *m.result, true
}

// View implements tea.Model
func (m MergeModel) View() string {
	if m.quitting {
		return ""
	}

	header := Title(m.Version, fmt.Sprintf("merging %d files", len(m.files)))

	if m.pending != nil {
		return strings.Join([]string{header, m.renderConfirmationDialog()}, "\n\n")
	}

	outputView := InfoStyle.Render(fmt.Sprintf("Output: %s", m.output))
	progressView := fmt.Sprintf("%s\n%s",
		m.progressBar.ViewAs(m.percent),
		ProcessingStyle.Render(m.status))

	sections := []string{
		header,
		outputView,
		progressView,
		m.fileList.View(),
		"Controls: [ctrl+c] Quit",
	}

	return strings.Join(sections, "\n\n")
}

func (m MergeModel) renderConfirmationDialog() string {
	var content strings.Builder

	switch m.pending.Kind {
	case ConfirmOverwrite:
		content.WriteString(WarningStyle.Render("⚠️  Output file already exists"))
		content.WriteString("\n\n")
		content.WriteString(fmt.Sprintf("  %s\n\n", m.pending.Path))
		content.WriteString("Overwrite it?\n\n")

	case ConfirmDuplicates:
		content.WriteString(WarningStyle.Render(fmt.Sprintf("⚠️  Found %d group(s) of duplicate files", len(m.pending.Groups))))
		content.WriteString("\n")
		for i, group := range m.pending.Groups {
			content.WriteString(fmt.Sprintf("\n🔸 Group %d (%d bytes):\n", i+1, group.Size))
			paths := group.Paths()
			for j, display := range optimizePaths(paths) {
				content.WriteString(fmt.Sprintf("  • %s (%s)\n", filepath.Base(paths[j]), display))
			}
		}
		content.WriteString("\nMerge anyway?\n\n")
	}

	content.WriteString("Press 'y' to continue, 'n' to cancel")
	return content.String()
}
