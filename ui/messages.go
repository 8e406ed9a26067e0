package ui

import "github.com/lepinkainen/audiomerge/audio"

// TUI Message Types for merge engine communication
type ProgressMsg struct {
	Event audio.ProgressEvent
}

// ConfirmKind tells which question the engine is asking
type ConfirmKind int

const (
	ConfirmOverwrite ConfirmKind = iota
	ConfirmDuplicates
)

// ConfirmRequestMsg carries an engine question; the answer goes back on Reply
type ConfirmRequestMsg struct {
	Kind   ConfirmKind
	Path   string
	Groups []audio.DuplicateGroup
	Reply  chan<- bool
}

type MergeDoneMsg struct {
	Result audio.MergeResult
}
