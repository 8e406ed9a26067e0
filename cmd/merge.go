package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/audiomerge/audio"
	"github.com/lepinkainen/audiomerge/types"
	"github.com/lepinkainen/audiomerge/ui"
)

type MergeCmd struct {
	Files           []string `arg:"" name:"files" help:"Audio files or directories to merge" type:"path"`
	Name            string   `short:"o" help:"Output file name without extension" default:"merged_audio"`
	CheckDuplicates bool     `help:"Warn about duplicate inputs before merging" default:"true" negatable:""`
	Yes             bool     `short:"y" help:"Answer yes to every confirmation"`
	Recursive       bool     `short:"r" help:"Descend into subdirectories"`
	NoTUI           bool     `name:"no-tui" help:"Disable interactive TUI and use plain prompts"`
	BufferSize      int      `help:"Copy buffer size in bytes, 0 picks it by drive type" default:"0"`
}

func (cmd *MergeCmd) Run(appCtx *types.AppContext) error {
	version := types.VersionOf(appCtx)
	tui := useTUI(cmd.NoTUI)

	files, err := audio.ExpandInputs(cmd.Files, cmd.Recursive)
	if err != nil {
		return fmt.Errorf("failed to collect input files: %w", err)
	}

	job := audio.NewMergeJob(files, cmd.Name)
	engine := cmd.newEngine(appCtx, tui)

	var res audio.MergeResult
	if tui {
		res, err = cmd.runWithTUI(engine, job, version)
		if err != nil {
			return err
		}
	} else {
		fmt.Println(ui.Title(version, ""))
		fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("Merging %d files into %s", len(files), job.OutputPath())))
		res = engine.Run(context.Background(), job, ui.NewPrompter(os.Stdin, os.Stderr, cmd.Yes))
	}

	return report(os.Stdout, res)
}

func (cmd *MergeCmd) newEngine(appCtx *types.AppContext, tui bool) *audio.Engine {
	opts := []audio.EngineOption{
		audio.WithLogger(types.LoggerOf(appCtx, tui)),
		audio.WithDuplicateCheck(cmd.CheckDuplicates),
		audio.WithBufferSize(cmd.BufferSize),
	}
	if appCtx != nil && appCtx.Metrics != nil {
		opts = append(opts, audio.WithRecorder(appCtx.Metrics))
	}
	return audio.NewEngine(opts...)
}

// runWithTUI runs the engine next to a bubbletea program. Quitting the TUI
// declines any open question but never interrupts copying.
func (cmd *MergeCmd) runWithTUI(engine *audio.Engine, job audio.MergeJob, version string) (audio.MergeResult, error) {
	p := tea.NewProgram(ui.NewMergeModel(job, version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var collaborator audio.Collaborator = ui.NewBridge(ctx, p)
	if cmd.Yes {
		collaborator = autoConfirm{collaborator}
	}

	done := make(chan audio.MergeResult, 1)
	go func() {
		res := engine.Run(ctx, job, collaborator)
		p.Send(ui.MergeDoneMsg{Result: res})
		done <- res
	}()

	final, runErr := p.Run()
	cancel()

	if m, ok := final.(ui.MergeModel); !ok || !hasResult(m) {
		fmt.Println(ui.InfoStyle.Render("Waiting for the merge to finish..."))
	}
	res := <-done

	if runErr != nil {
		return res, fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return res, nil
}

func hasResult(m ui.MergeModel) bool {
	_, ok := m.Result()
	return ok
}

// autoConfirm answers yes to every question and forwards progress
type autoConfirm struct {
	audio.Collaborator
}

func (autoConfirm) ConfirmOverwrite(string) bool                  { return true }
func (autoConfirm) ConfirmDuplicates([]audio.DuplicateGroup) bool { return true }

// report prints the outcome. Cancellation is not an error.
func report(w io.Writer, res audio.MergeResult) error {
	switch res.Status {
	case audio.StatusSucceeded:
		_, _ = fmt.Fprintf(w, "%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Merged into %s", res.OutputPath)))
		_, _ = fmt.Fprintf(w, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("Size: %d bytes, estimated duration: %s", res.BytesWritten, res.Duration)))
		return nil

	case audio.StatusCancelled:
		_, _ = fmt.Fprintf(w, "%s\n", ui.WarningStyle.Render("⚠️  Merge "+res.Reason()))
		return nil

	default:
		if audio.IsIOFailure(res.Err) && res.BytesWritten > 0 {
			_, _ = fmt.Fprintf(w, "%s\n", ui.WarningStyle.Render(fmt.Sprintf("⚠️  Partial output left at %s (%d bytes)", res.OutputPath, res.BytesWritten)))
		}
		return fmt.Errorf("merge failed: %w", res.Err)
	}
}
