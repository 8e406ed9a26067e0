package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/audiomerge/audio"
)

// Sender is the part of *tea.Program the bridge needs
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge lets the engine goroutine talk to a running TUI. Questions are sent
// as ConfirmRequestMsg and the engine blocks until the model answers or ctx
// is cancelled, which counts as a decline.
type Bridge struct {
	ctx    context.Context
	sender Sender
}

// NewBridge wires a bridge to the program
func NewBridge(ctx context.Context, sender Sender) *Bridge {
	return &Bridge{ctx: ctx, sender: sender}
}

func (b *Bridge) ConfirmOverwrite(path string) bool {
	return b.ask(ConfirmRequestMsg{Kind: ConfirmOverwrite, Path: path})
}

func (b *Bridge) ConfirmDuplicates(groups []audio.DuplicateGroup) bool {
	return b.ask(ConfirmRequestMsg{Kind: ConfirmDuplicates, Groups: groups})
}

func (b *Bridge) Progress(ev audio.ProgressEvent) {
	b.sender.Send(ProgressMsg{Event: ev})
}

func (b *Bridge) ask(req ConfirmRequestMsg) bool {
	reply := make(chan bool, 1)
	req.Reply = reply
	b.sender.Send(req)

	select {
	case ok := <-reply:
		return ok
	case <-b.ctx.Done():
		return false
	}
}
