package audio

// Status is the terminal outcome of a merge run
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
	// StatusCancelled means the user declined a confirmation; it is not a failure
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MergeResult is reported once at the end of a run
type MergeResult struct {
	Status       Status
	OutputPath   string
	Duration     Duration
	BytesWritten int64
	Err          error
}

// Succeeded is true when the output was written completely
func (r MergeResult) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// Reason is the human-readable failure or cancellation reason
func (r MergeResult) Reason() string {
	switch r.Status {
	case StatusSucceeded:
		return ""
	case StatusCancelled:
		if r.Err != nil {
			return "cancelled: " + r.Err.Error()
		}
		return "cancelled by user"
	default:
		if r.Err != nil {
			return r.Err.Error()
		}
		return "merge failed"
	}
}
