package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/audiomerge/audio"
)

// duplicateGroupView is one duplicate group with the user's exclusion marks
type duplicateGroupView struct {
	Size     int64
	Digest   string
	Files    []string
	Selected []bool // which files are excluded from the merge
}

// DuplicatesModel lets the user pick which copies of duplicate files to leave out of a merge
type DuplicatesModel struct {
	// Data
	groups       []duplicateGroupView
	currentGroup int
	currentFile  int

	// UI state
	width  int
	height int

	// Interaction state
	confirmingExclusion bool
	pendingExclusion    []string
	excluded            map[string]bool
	showHelp            bool

	// Control state
	done     bool
	quitting bool

	Version string
}

// NewDuplicatesModel creates the model; groups keep the order the detector returned
func NewDuplicatesModel(groups []audio.DuplicateGroup, version string) DuplicatesModel {
	views := make([]duplicateGroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, duplicateGroupView{
			Size:     g.Size,
			Digest:   g.Digest,
			Files:    g.Paths(),
			Selected: make([]bool, len(g.Files)),
		})
	}

	return DuplicatesModel{
		groups:   views,
		excluded: map[string]bool{},
		showHelp: true,
		Version:  version,
	}
}

// Init implements tea.Model
func (m DuplicatesModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m DuplicatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmingExclusion {
			return m.handleConfirmationInput(msg)
		}
		return m.handleNormalInput(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ExclusionConfirmedMsg:
		for _, path := range msg.Excluded {
			m.excluded[path] = true
		}
		m.pendingExclusion = nil
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m DuplicatesModel) handleNormalInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.groups) == 0 {
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "h", "?":
		m.showHelp = !m.showHelp

	case "up", "k":
		if m.currentFile > 0 {
			m.currentFile--
		}

	case "down", "j":
		if m.currentFile < len(m.groups[m.currentGroup].Files)-1 {
			m.currentFile++
		}

	case "left", "p":
		if m.currentGroup > 0 {
			m.currentGroup--
			m.currentFile = 0
		}

	case "right", "n":
		if m.currentGroup < len(m.groups)-1 {
			m.currentGroup++
			m.currentFile = 0
		}

	case " ":
		group := &m.groups[m.currentGroup]
		group.Selected[m.currentFile] = !group.Selected[m.currentFile]

	case "d": // exclude every copy except the first one
		group := &m.groups[m.currentGroup]
		for i := range group.Selected {
			group.Selected[i] = i > 0
		}

	case "c":
		group := &m.groups[m.currentGroup]
		for i := range group.Selected {
			group.Selected[i] = false
		}

	case "s":
		if m.currentGroup < len(m.groups)-1 {
			m.currentGroup++
			m.currentFile = 0
		}

	case "enter":
		return m.handleExcludeCommand()
	}

	return m, nil
}

func (m DuplicatesModel) handleConfirmationInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmingExclusion = false
		pending := m.pendingExclusion
		return m, func() tea.Msg {
			return ExclusionConfirmedMsg{Excluded: pending}
		}

	case "n", "N", "ctrl+c", "esc":
		m.confirmingExclusion = false
		m.pendingExclusion = nil
	}

	return m, nil
}

func (m DuplicatesModel) handleExcludeCommand() (tea.Model, tea.Cmd) {
	var selectedFiles []string

	// Collect selected files from ALL groups (not just current)
	for _, group := range m.groups {
		for i, selected := range group.Selected {
			if selected {
				selectedFiles = append(selectedFiles, group.Files[i])
			}
		}
	}

	// Confirming with nothing selected keeps every file
	m.pendingExclusion = selectedFiles
	m.confirmingExclusion = true
	return m, nil
}

// Confirmed reports whether the user accepted a selection with enter and y
func (m DuplicatesModel) Confirmed() bool {
	return m.done
}

// Excluded returns the confirmed exclusions
func (m DuplicatesModel) Excluded() []string {
	var out []string
	for _, group := range m.groups {
		for _, f := range group.Files {
			if m.excluded[f] {
				out = append(out, f)
			}
		}
	}
	return out
}

// KeptFiles returns all minus the confirmed exclusions, in merge order
func (m DuplicatesModel) KeptFiles(all []string) []string {
	var kept []string
	for _, f := range all {
		if !m.excluded[f] {
			kept = append(kept, f)
		}
	}
	return audio.OrderPaths(kept)
}

// fullyExcluded counts groups where every copy is selected
func (m DuplicatesModel) fullyExcluded() int {
	count := 0
	for _, group := range m.groups {
		all := len(group.Selected) > 0
		for _, selected := range group.Selected {
			all = all && selected
		}
		if all {
			count++
		}
	}
	return count
}

// View implements tea.Model
func (m DuplicatesModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	if len(m.groups) == 0 {
		return m.renderNoGroups()
	}

	if m.confirmingExclusion {
		return m.renderConfirmationDialog()
	}

	return m.renderMainView()
}

func (m DuplicatesModel) renderNoGroups() string {
	style := SuccessStyle.MarginTop(2).MarginLeft(2)
	return style.Render("✅ No duplicate files!\n\nPress 'q' to quit.")
}

func (m DuplicatesModel) renderConfirmationDialog() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("Confirm Exclusion"))
	content.WriteString("\n\n")

	if len(m.pendingExclusion) == 0 {
		content.WriteString("No files selected, every file will be kept.\n\n")
	} else {
		content.WriteString(fmt.Sprintf("Leave %d file(s) out of the merge?\n\n", len(m.pendingExclusion)))
		for _, file := range m.pendingExclusion {
			content.WriteString(fmt.Sprintf("  • %s\n", file))
		}
		content.WriteString("\n")
	}

	if n := m.fullyExcluded(); n > 0 {
		content.WriteString(WarningStyle.Render(fmt.Sprintf("⚠️  %d group(s) will have no copy left", n)))
		content.WriteString("\n\n")
	}

	content.WriteString("Press 'y' to confirm, 'n' to go back")
	return content.String()
}

func (m DuplicatesModel) renderMainView() string {
	var content strings.Builder

	content.WriteString(Title(m.Version, fmt.Sprintf("Duplicate Files (Group %d of %d)", m.currentGroup+1, len(m.groups))))
	content.WriteString("\n\n")

	group := m.groups[m.currentGroup]
	groupInfo := fmt.Sprintf("Fingerprint: %s (%d files, %d bytes each)", group.Digest, len(group.Files), group.Size)
	content.WriteString(InfoStyle.Render(groupInfo))
	content.WriteString("\n\n")

	content.WriteString(m.renderFileList(group))
	content.WriteString("\n")

	if m.showHelp {
		content.WriteString(m.renderHelp())
	} else {
		content.WriteString("Press 'h' for help")
	}

	return content.String()
}

func (m DuplicatesModel) renderFileList(group duplicateGroupView) string {
	var content strings.Builder

	optimizedPaths := optimizePaths(group.Files)

	for i, file := range group.Files {
		var line strings.Builder

		if group.Selected[i] {
			line.WriteString("[x] ")
		} else {
			line.WriteString("[ ] ")
		}

		fileName := filepath.Base(file)
		style := lipgloss.NewStyle()
		if group.Selected[i] {
			style = ErrorStyle
		}
		if i == m.currentFile {
			style = style.Reverse(true)
		}
		line.WriteString(style.Render(fileName))

		line.WriteString(fmt.Sprintf(" (%s)", optimizedPaths[i]))
		content.WriteString(line.String())
		content.WriteString("\n")
	}

	return content.String()
}

func (m DuplicatesModel) renderHelp() string {
	help := []string{
		"",
		"Navigation:",
		"  ↑/↓ or j/k   Navigate files in current group",
		"  ←/→ or p/n   Previous/Next duplicate group",
		"",
		"Selection:",
		"  Space        Toggle exclusion of file",
		"  d            Exclude all but the first copy",
		"  c            Clear exclusions in group",
		"",
		"Actions:",
		"  Enter        Confirm exclusions from all groups",
		"  s            Skip to next group",
		"  h/?          Toggle this help",
		"  q            Quit without excluding anything",
		"",
	}

	return strings.Join(help, "\n")
}
