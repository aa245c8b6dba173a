package pipeline

import (
	"github.com/user/mcap2video/pkg/ports"
)

// =============================================================================
// Scan Stage Types
// =============================================================================

// ScanInput selects the channel to convert. An empty Topic puts the
// scanner into listing mode: all image channels are returned and no
// selection is made.
type ScanInput struct {
	Topic string
}

// ScanResult contains the image channels found in the container.
type ScanResult struct {
	// Channels are the image-bearing channels, deduplicated by topic.
	Channels []ports.Channel

	// Selected is the channel matching ScanInput.Topic, nil in listing
	// mode.
	Selected *ports.Channel
}

// =============================================================================
// Probe Stage Types (first pass)
// =============================================================================

// ProbeInput names the channel for the first pass.
type ProbeInput struct {
	Topic string
}

// ProbeResult carries everything the estimators need without a full
// decode: the complete timestamp sequence plus one representative
// decoded frame's geometry. Dimensions are uniform per channel by
// invariant, so one frame sizes them all.
type ProbeResult struct {
	// TimestampsNs are the record log times in container read order.
	TimestampsNs []uint64

	// FrameCount is the number of records seen on the channel.
	FrameCount int

	// Width and Height are the dimensions of the first decoded frame.
	Width  int
	Height int

	// FrameBytes is the decoded size of the representative frame.
	FrameBytes int64

	// Encoding is the source encoding tag of the first record, used for
	// the end-of-run conversion report.
	Encoding string
}

// =============================================================================
// Rate Stage Types
// =============================================================================

// RateInput is the ordered timestamp sequence of the selected channel.
type RateInput struct {
	TimestampsNs []uint64
}

// RateResult is the estimated output frame rate.
type RateResult struct {
	FPS float64
}

// =============================================================================
// Memory Check Stage Types
// =============================================================================

// MemCheckInput projects peak decode memory from the probe result.
type MemCheckInput struct {
	FrameBytes int64
	FrameCount int
}

// MemCheckResult reports the projection and the gate decision.
type MemCheckResult struct {
	// ProjectedBytes is frame size times frame count plus overhead.
	ProjectedBytes uint64

	// AvailableBytes is the platform-reported available memory, only
	// meaningful when Gated is true.
	AvailableBytes uint64

	// Gated is true when the platform query was supported and the gate
	// was evaluated; false means the check degraded to inform-only.
	Gated bool
}

// =============================================================================
// Write Stage Types
// =============================================================================

// WriteInput configures the second pass.
type WriteInput struct {
	Topic      string
	OutputPath string
	FPS        float64

	// Width and Height are the dimensions negotiated from the probe's
	// representative frame; every decoded frame must match them.
	Width  int
	Height int

	// FrameCount is the expected record count, used for progress totals.
	FrameCount int
}

// WriteResult summarizes a completed second pass.
type WriteResult struct {
	FramesWritten int

	// Encoding is the source encoding converted (for the final report).
	Encoding string
}
