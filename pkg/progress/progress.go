// Package progress provides the shared counters updated by the stream
// writer and the concurrent reporter that renders them. The counters are
// atomic: the writer updates them from the decode/write path while the
// reporter reads them from its own goroutine, with no locking between
// the two.
package progress

import (
	"sync/atomic"
)

// Tracker holds the conversion progress counters. A single Tracker is
// injected into both the writer and the reporter at construction; it is
// the only state shared across concurrent execution contexts.
type Tracker struct {
	total          atomic.Int64
	framesWritten  atomic.Int64
	bytesProcessed atomic.Int64
}

// NewTracker creates a Tracker expecting total frames.
func NewTracker(total int) *Tracker {
	t := &Tracker{}
	t.total.Store(int64(total))
	return t
}

// SetTotal updates the expected frame count once it is known.
func (t *Tracker) SetTotal(total int64) {
	t.total.Store(total)
}

// FrameWritten records one written frame of the given decoded size.
func (t *Tracker) FrameWritten(bytes int64) {
	t.framesWritten.Add(1)
	t.bytesProcessed.Add(bytes)
}

// FramesWritten returns the number of frames written so far.
func (t *Tracker) FramesWritten() int64 {
	return t.framesWritten.Load()
}

// BytesProcessed returns the number of decoded bytes pushed to the sink.
func (t *Tracker) BytesProcessed() int64 {
	return t.bytesProcessed.Load()
}

// Total returns the expected frame count, 0 when unknown.
func (t *Tracker) Total() int64 {
	return t.total.Load()
}
