package audio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lepinkainen/audiomerge/utils"
)

// State is the position of an Engine in its state machine:
// Idle -> Validating -> (DuplicateCheck ->) Merging -> Finalizing -> Succeeded | Failed.
// A declined confirmation returns the engine to Idle.
type State int32

const (
	StateIdle State = iota
	StateValidating
	StateDuplicateCheck
	StateMerging
	StateFinalizing
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateDuplicateCheck:
		return "duplicate_check"
	case StateMerging:
		return "merging"
	case StateFinalizing:
		return "finalizing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Collaborator is the presentation side of a merge. Every call is synchronous
// and made from the goroutine running Engine.Run.
type Collaborator interface {
	// ConfirmOverwrite is asked when the output path already exists
	ConfirmOverwrite(path string) bool
	// ConfirmDuplicates is asked when the duplicate check found groups
	ConfirmDuplicates(groups []DuplicateGroup) bool
	// Progress receives every checkpoint
	Progress(ev ProgressEvent)
}

// CollaboratorFuncs adapts plain functions to Collaborator.
// Missing confirmation funcs decline; a missing progress func drops events.
type CollaboratorFuncs struct {
	OnConfirmOverwrite  func(path string) bool
	OnConfirmDuplicates func(groups []DuplicateGroup) bool
	OnProgress          func(ev ProgressEvent)
}

func (c CollaboratorFuncs) ConfirmOverwrite(path string) bool {
	return c.OnConfirmOverwrite != nil && c.OnConfirmOverwrite(path)
}

func (c CollaboratorFuncs) ConfirmDuplicates(groups []DuplicateGroup) bool {
	return c.OnConfirmDuplicates != nil && c.OnConfirmDuplicates(groups)
}

func (c CollaboratorFuncs) Progress(ev ProgressEvent) {
	if c.OnProgress != nil {
		c.OnProgress(ev)
	}
}

// Recorder receives job-level measurements
type Recorder interface {
	JobFinished(status Status, inputs int, bytes int64, elapsed time.Duration)
	DuplicatesFound(groups int)
}

type nopRecorder struct{}

func (nopRecorder) JobFinished(Status, int, int64, time.Duration) {}
func (nopRecorder) DuplicatesFound(int)                           {}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithLogger sets the logger that records the job lifecycle
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDuplicateCheck enables the duplicate warning before merging
func WithDuplicateCheck(enabled bool) EngineOption {
	return func(e *Engine) { e.checkDuplicates = enabled }
}

// WithBufferSize overrides the copy buffer size; zero or less picks it from the paths
func WithBufferSize(n int) EngineOption {
	return func(e *Engine) { e.bufferSize = n }
}

// WithRecorder attaches a metrics recorder
func WithRecorder(r Recorder) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// Engine runs exactly one MergeJob. Build a new Engine for every job.
type Engine struct {
	logger          *slog.Logger
	recorder        Recorder
	checkDuplicates bool
	bufferSize      int

	state atomic.Int32
	used  atomic.Bool
}

// NewEngine creates an idle engine
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:   slog.New(slog.DiscardHandler),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state; safe to call from any goroutine
func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
}

// Run validates, optionally checks for duplicates, concatenates the inputs and
// estimates the duration of the result. It blocks until the job is finished.
//
// ctx is only consulted at the confirmation checkpoints; once copying has
// started the job runs to completion or failure.
func (e *Engine) Run(ctx context.Context, job MergeJob, c Collaborator) MergeResult {
	if !e.used.CompareAndSwap(false, true) {
		return MergeResult{Status: StatusFailed, Err: ErrEngineReused}
	}
	if c == nil {
		c = CollaboratorFuncs{}
	}

	log := e.logger.With("job_id", job.ID)
	started := time.Now()

	res := e.run(ctx, log, job, c)

	e.recorder.JobFinished(res.Status, len(job.inputs), res.BytesWritten, time.Since(started))

	switch res.Status {
	case StatusSucceeded:
		log.Info("merge succeeded",
			"output", res.OutputPath,
			"bytes", res.BytesWritten,
			"duration", res.Duration.String(),
			"elapsed", time.Since(started))
	case StatusCancelled:
		log.Info("merge cancelled", "reason", res.Reason())
	default:
		log.Error("merge failed", "output", res.OutputPath, "error", res.Err)
	}
	return res
}

func (e *Engine) run(ctx context.Context, log *slog.Logger, job MergeJob, c Collaborator) MergeResult {
	tracker := &progressTracker{emit: c.Progress}

	e.setState(StateValidating)
	inputs := job.Inputs()
	log.Info("merge job started", "files", job.Paths(), "output_name", job.BaseName)

	outputPath, err := validateJob(job)
	if err != nil {
		return e.fail(outputPath, 0, err)
	}
	log.Info("files ordered", "order", job.Paths(), "output", outputPath)
	tracker.report(ProgressEvent{Phase: PhasePreparing, Percent: percentPreparing})

	if _, err := os.Stat(outputPath); err == nil {
		log.Info("output already exists", "output", outputPath)
		if res, stop := e.checkpoint(ctx, outputPath); stop {
			return res
		}
		if !c.ConfirmOverwrite(outputPath) {
			return e.cancel(outputPath, nil)
		}
		log.Info("overwrite confirmed", "output", outputPath)
	}

	if e.checkDuplicates {
		e.setState(StateDuplicateCheck)
		groups := FindDuplicates(inputs, WithDetectLogger(log))
		e.recorder.DuplicatesFound(len(groups))
		for _, g := range groups {
			log.Warn("duplicate files detected", "size", g.Size, "digest", g.Digest, "files", g.Paths())
		}
		if len(groups) > 0 {
			if res, stop := e.checkpoint(ctx, outputPath); stop {
				return res
			}
			if !c.ConfirmDuplicates(groups) {
				return e.cancel(outputPath, nil)
			}
			log.Info("duplicates accepted", "groups", len(groups))
		}
	}

	e.setState(StateMerging)
	written, err := e.merge(log, inputs, outputPath, tracker)
	if err != nil {
		return e.fail(outputPath, written, err)
	}

	e.setState(StateFinalizing)
	tracker.report(ProgressEvent{Phase: PhaseFinalizing, Percent: percentFinalizing})
	duration := EstimateDuration(outputPath, job.Extension)
	if !duration.Known {
		log.Warn("could not estimate duration", "output", outputPath)
	}
	tracker.report(ProgressEvent{Phase: PhaseComplete, Percent: percentComplete})

	e.setState(StateSucceeded)
	return MergeResult{
		Status:       StatusSucceeded,
		OutputPath:   outputPath,
		Duration:     duration,
		BytesWritten: written,
	}
}

// validateJob checks the job without touching the filesystem and returns the output path
func validateJob(job MergeJob) (string, error) {
	if len(job.inputs) == 0 {
		return "", ErrNoFilesSelected
	}
	if job.BaseName == "" {
		return "", ErrEmptyOutputName
	}

	outputPath := job.OutputPath()
	cleanOut := filepath.Clean(outputPath)
	for _, in := range job.inputs {
		if filepath.Clean(in.Path) == cleanOut {
			return outputPath, fmt.Errorf("%w: %s", ErrOutputIsInput, in.Path)
		}
	}
	return outputPath, nil
}

// checkpoint honours a cancelled context before a confirmation
func (e *Engine) checkpoint(ctx context.Context, outputPath string) (MergeResult, bool) {
	if ctx == nil {
		return MergeResult{}, false
	}
	if err := ctx.Err(); err != nil {
		return e.cancel(outputPath, err), true
	}
	return MergeResult{}, false
}

func (e *Engine) cancel(outputPath string, cause error) MergeResult {
	e.setState(StateIdle)
	return MergeResult{Status: StatusCancelled, OutputPath: outputPath, Err: cause}
}

func (e *Engine) fail(outputPath string, written int64, err error) MergeResult {
	e.setState(StateFailed)
	return MergeResult{Status: StatusFailed, OutputPath: outputPath, BytesWritten: written, Err: err}
}

// merge writes every input to outputPath in order. On error the partial output is kept.
func (e *Engine) merge(log *slog.Logger, inputs []InputFile, outputPath string, tracker *progressTracker) (int64, error) {
	out, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, &IOError{Op: "create", Path: outputPath, Err: err}
	}
	tracker.report(ProgressEvent{Phase: PhaseCreatingOutput, Percent: percentCreatingOutput})

	size := e.bufferSize
	if size <= 0 {
		paths := make([]string, 0, len(inputs)+1)
		paths = append(paths, outputPath)
		for _, in := range inputs {
			paths = append(paths, in.Path)
		}
		size = utils.CopyBufferSize(paths...)
	}

	written, err := concat(out, inputs, outputPath, size, func(i int, in InputFile, n int64) {
		log.Info("copied input", "index", i+1, "total", len(inputs), "path", in.Path, "bytes", n)
		tracker.report(ProgressEvent{
			Phase:   PhaseProcessingFile,
			Index:   i + 1,
			Total:   len(inputs),
			Name:    in.Name(),
			Percent: fileProgress(i+1, len(inputs)),
		})
	})
	if err != nil {
		_ = out.Close()
		return written, err
	}

	if err := out.Sync(); err != nil {
		_ = out.Close()
		return written, &IOError{Op: "sync", Path: outputPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return written, &IOError{Op: "close", Path: outputPath, Err: err}
	}
	return written, nil
}

// concat appends every input to dst through a buffer of size bytes and flushes it.
// The count is taken below the buffer, so after a failure it is what dst accepted.
func concat(dst io.Writer, inputs []InputFile, outputPath string, size int, copied func(int, InputFile, int64)) (int64, error) {
	cw := &countingWriter{w: dst}
	bw := bufio.NewWriterSize(cw, size)

	for i, in := range inputs {
		n, err := appendFile(bw, cw, in.Path, outputPath)
		if err != nil {
			_ = bw.Flush()
			return cw.n, err
		}
		if copied != nil {
			copied(i, in, n)
		}
	}

	if err := bw.Flush(); err != nil {
		return cw.n, &IOError{Op: "write", Path: outputPath, Err: err}
	}
	return cw.n, nil
}

// appendFile copies one input verbatim and tells read failures from write failures.
// The returned count is what the buffer accepted from this input.
func appendFile(bw *bufio.Writer, cw *countingWriter, inputPath, outputPath string) (int64, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return 0, &IOError{Op: "open", Path: inputPath, Err: err}
	}
	defer func() { _ = f.Close() }()

	cw.err = nil
	n, err := io.Copy(bw, readerOnly{f})
	if err != nil {
		if (cw.err != nil && errors.Is(err, cw.err)) || errors.Is(err, io.ErrShortWrite) {
			return n, &IOError{Op: "write", Path: outputPath, Err: err}
		}
		return n, &IOError{Op: "read", Path: inputPath, Err: err}
	}
	return n, nil
}

// countingWriter counts bytes the output accepted and remembers the last write error
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	if err != nil {
		cw.err = err
	}
	return n, err
}

// readerOnly hides WriterTo so the copy always goes through the bufio.Writer
type readerOnly struct {
	r io.Reader
}

func (r readerOnly) Read(p []byte) (int, error) {
	return r.r.Read(p)
}
