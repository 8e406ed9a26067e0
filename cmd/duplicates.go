package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/audiomerge/audio"
	"github.com/lepinkainen/audiomerge/types"
	"github.com/lepinkainen/audiomerge/ui"
)

type DuplicatesCmd struct {
	Files     []string `arg:"" name:"files" help:"Audio files or directories to check" type:"path" default:"."`
	Recursive bool     `short:"r" help:"Descend into subdirectories"`
	NoTUI     bool     `name:"no-tui" help:"Disable interactive TUI and just list duplicates"`
}

func (cmd *DuplicatesCmd) Run(appCtx *types.AppContext) error {
	version := types.VersionOf(appCtx)
	tui := useTUI(cmd.NoTUI)

	fmt.Println(ui.Title(version, ""))

	files, err := audio.ExpandInputs(cmd.Files, cmd.Recursive)
	if err != nil {
		return fmt.Errorf("failed to collect input files: %w", err)
	}
	fmt.Printf("Checking %d files for duplicates...\n", len(files))

	inputs := make([]audio.InputFile, len(files))
	for i, f := range audio.OrderPaths(files) {
		inputs[i] = audio.NewInputFile(f)
	}

	groups := audio.FindDuplicates(inputs, audio.WithDetectLogger(types.LoggerOf(appCtx, tui)))
	if appCtx != nil && appCtx.Metrics != nil {
		appCtx.Metrics.DuplicatesFound(len(groups))
	}

	if len(groups) == 0 {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No duplicates found"))
		return nil
	}

	// If no-tui flag is set, just list the duplicates
	if !tui {
		printGroups(os.Stdout, groups)
		return nil
	}

	// Launch TUI for choosing which copies to leave out of a merge
	model := ui.NewDuplicatesModel(groups, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	m, ok := final.(ui.DuplicatesModel)
	if !ok || !m.Confirmed() {
		fmt.Println(ui.InfoStyle.Render("No files excluded."))
		return nil
	}

	printKept(os.Stdout, m.Excluded(), m.KeptFiles(files))
	return nil
}

func printGroups(w io.Writer, groups []audio.DuplicateGroup) {
	_, _ = fmt.Fprintf(w, "\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("Found %d group(s) of duplicates:", len(groups))))
	for _, group := range groups {
		_, _ = fmt.Fprintf(w, "\n🔸 Fingerprint %s (%d files, %d bytes):\n", group.Digest, len(group.Files), group.Size)
		for _, path := range group.Paths() {
			_, _ = fmt.Fprintf(w, "  %s\n", path)
		}
	}
}

func printKept(w io.Writer, excluded, kept []string) {
	_, _ = fmt.Fprintf(w, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("Excluded %d file(s). Files to merge, in order:", len(excluded))))
	for _, path := range kept {
		_, _ = fmt.Fprintln(w, path)
	}
}
