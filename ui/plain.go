package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/audiomerge/audio"
)

// Prompter is the line-oriented collaborator used without a TUI. Questions
// are read from in; an unreadable answer declines.
type Prompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
	bar       *progressbar.ProgressBar
}

// NewPrompter writes prompts and the progress bar to out. With assumeYes every
// question is answered yes without reading in.
func NewPrompter(in io.Reader, out io.Writer, assumeYes bool) *Prompter {
	return &Prompter{
		in:        bufio.NewReader(in),
		out:       out,
		assumeYes: assumeYes,
		bar: progressbar.NewOptions(100,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetDescription("Preparing to merge..."),
		),
	}
}

func (p *Prompter) ConfirmOverwrite(path string) bool {
	_, _ = fmt.Fprintf(p.out, "\n%s\n  %s\n", WarningStyle.Render("⚠️  Output file already exists:"), path)
	return p.ask("Overwrite it?")
}

func (p *Prompter) ConfirmDuplicates(groups []audio.DuplicateGroup) bool {
	_, _ = fmt.Fprintf(p.out, "\n%s\n", WarningStyle.Render(fmt.Sprintf("⚠️  Found %d group(s) of duplicate files:", len(groups))))
	for i, group := range groups {
		_, _ = fmt.Fprintf(p.out, "\n🔸 Group %d (%d bytes):\n", i+1, group.Size)
		for _, path := range group.Paths() {
			_, _ = fmt.Fprintf(p.out, "  %s\n", path)
		}
	}
	return p.ask("Merge anyway?")
}

func (p *Prompter) Progress(ev audio.ProgressEvent) {
	p.bar.Describe(ev.Message())
	_ = p.bar.Set(int(ev.Percent))
	if ev.Phase == audio.PhaseComplete {
		_ = p.bar.Finish()
		_, _ = fmt.Fprintln(p.out)
	}
}

func (p *Prompter) ask(question string) bool {
	if p.assumeYes {
		_, _ = fmt.Fprintf(p.out, "%s [y/N]: y\n", question)
		return true
	}

	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		_, _ = fmt.Fprintln(p.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
