package audio

import "fmt"

// Phase identifies a checkpoint of a merge run
type Phase int

const (
	PhasePreparing Phase = iota
	PhaseCreatingOutput
	PhaseProcessingFile
	PhaseFinalizing
	PhaseComplete
)

// Progress bands: 0-20 preparation, 20-80 split evenly across inputs, 80-100 finalization
const (
	percentPreparing      = 10.0
	percentCreatingOutput = 20.0
	percentCopyBand       = 60.0
	percentFinalizing     = 90.0
	percentComplete       = 100.0
)

func (p Phase) String() string {
	switch p {
	case PhasePreparing:
		return "preparing"
	case PhaseCreatingOutput:
		return "creating_output"
	case PhaseProcessingFile:
		return "processing_file"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ProgressEvent is a one-way notification sent at each checkpoint.
// Index, Total and Name are only set for PhaseProcessingFile; Index is 1-based.
type ProgressEvent struct {
	Phase   Phase
	Index   int
	Total   int
	Name    string
	Percent float64
}

// Message is a short status line for the event
func (e ProgressEvent) Message() string {
	switch e.Phase {
	case PhasePreparing:
		return "Preparing to merge..."
	case PhaseCreatingOutput:
		return "Creating output file..."
	case PhaseProcessingFile:
		return fmt.Sprintf("Processing file %d of %d: %s", e.Index, e.Total, e.Name)
	case PhaseFinalizing:
		return "Finalizing..."
	case PhaseComplete:
		return "Merge complete!"
	default:
		return e.Phase.String()
	}
}

// fileProgress is the percentage reached once file index (1-based) of total is copied
func fileProgress(index, total int) float64 {
	if total <= 0 {
		return percentCreatingOutput + percentCopyBand
	}
	return percentCreatingOutput + float64(index)*percentCopyBand/float64(total)
}

// progressTracker keeps reported percentages non-decreasing within one run
type progressTracker struct {
	last float64
	emit func(ProgressEvent)
}

func (t *progressTracker) report(ev ProgressEvent) {
	if ev.Percent < t.last {
		ev.Percent = t.last
	}
	if ev.Percent > percentComplete {
		ev.Percent = percentComplete
	}
	t.last = ev.Percent
	if t.emit != nil {
		t.emit(ev)
	}
}
