package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveProbeJSON saves the first-pass probe result as JSON.
	SaveProbeJSON(data []byte) error

	// SaveDecodedFrame saves one decoded frame as PNG.
	SaveDecodedFrame(index int, img image.Image) error
}
