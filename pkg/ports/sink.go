package ports

import (
	"image"
)

// VideoSink abstracts the video encoding backend.
// All frames written into one open sink share the dimensions the sink
// was opened with; the writer enforces this before calling WriteFrame.
type VideoSink interface {
	// Open creates the output file and initializes the encoder with the
	// negotiated dimensions and frame rate.
	Open(path string, width, height int, fps float64) error

	// WriteFrame encodes and appends a single frame. Frames are written
	// in call order.
	WriteFrame(img image.Image) error

	// Close finalizes and closes the output file. It is safe to call
	// after a failed WriteFrame to release the file handle.
	Close() error
}
