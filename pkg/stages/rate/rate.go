// Package rate implements the frame rate estimation stage.
package rate

import (
	"context"
	"errors"

	"github.com/user/mcap2video/pkg/pipeline"
	"github.com/user/mcap2video/pkg/ports"
)

const nanosecondsPerSecond = 1e9

var (
	// ErrInsufficientFrames is returned when fewer than two records are
	// available: no interval exists to estimate a rate from.
	ErrInsufficientFrames = errors.New("rate: fewer than 2 frames, cannot estimate frame rate")

	// ErrDegenerateTimestamps is returned when every timestamp interval
	// is zero. The guard runs before the reciprocal is taken, so the
	// estimator can never emit an infinite or NaN rate.
	ErrDegenerateTimestamps = errors.New("rate: all timestamps identical, cannot estimate frame rate")
)

// Stage computes the output frames-per-second as the reciprocal of the
// mean interval between consecutive capture timestamps. The rate is
// computed once per session from the full first-pass timestamp set; it
// is never updated during writing and never falls back to a default.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new rate estimation stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("rate"),
	}
}

// Execute estimates fps = 1 / mean(dt) with dt in seconds.
func (s *Stage) Execute(ctx context.Context, input pipeline.RateInput) (pipeline.RateResult, error) {
	result := pipeline.RateResult{}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	ts := input.TimestampsNs
	if len(ts) < 2 {
		return result, ErrInsufficientFrames
	}

	// Summing signed deltas tolerates non-increasing timestamps the same
	// way a plain mean of differences does: the mean telescopes to
	// (last-first)/(n-1).
	var sum float64
	for i := 1; i < len(ts); i++ {
		sum += float64(int64(ts[i]) - int64(ts[i-1]))
	}
	meanNs := sum / float64(len(ts)-1)

	if meanNs <= 0 {
		return result, ErrDegenerateTimestamps
	}

	result.FPS = nanosecondsPerSecond / meanNs
	s.logger.Debug("Estimated %.3f fps from %d timestamps (mean interval %.0f ns)",
		result.FPS, len(ts), meanNs)
	return result, nil
}
