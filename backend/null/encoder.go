package null

import "github.com/gogpu/framegraph"

// Encoder is the null command encoder. Commands may call Record to be
// counted in the finished CommandBuffer.
type Encoder struct {
	label     string
	commands  int
	finished  bool
	discarded bool
}

// Label returns the encoder label (the pass name).
func (e *Encoder) Label() string { return e.label }

// Record counts one recorded command.
func (e *Encoder) Record() { e.commands++ }

// Finish implements framegraph.CommandEncoder.
func (e *Encoder) Finish() (framegraph.CommandBuffer, error) {
	if e.finished || e.discarded {
		return nil, ErrEncoderClosed
	}
	e.finished = true
	return &CommandBuffer{Label: e.label, Commands: e.commands}, nil
}

// Discard implements framegraph.CommandEncoder.
func (e *Encoder) Discard() { e.discarded = true }
