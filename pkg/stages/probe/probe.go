// Package probe implements the first conversion pass. It walks the
// selected channel once, collecting every record timestamp and decoding
// only the first record to size a representative frame. The rate and
// memory estimators run on its result, so the expensive full decode is
// deferred to the second pass.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/user/mcap2video/pkg/frame"
	"github.com/user/mcap2video/pkg/pipeline"
	"github.com/user/mcap2video/pkg/ports"
)

// ErrNoRecords is returned when the selected channel has no records.
var ErrNoRecords = errors.New("probe: channel has no records")

// Stage performs the lightweight first pass over the container.
type Stage struct {
	container ports.Container
	debug     ports.DebugSink
	logger    ports.Logger
}

// NewStage creates a new probe stage.
func NewStage(container ports.Container, debug ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		container: container,
		debug:     debug,
		logger:    logger.WithComponent("probe"),
	}
}

// Execute collects the channel's timestamps and the representative
// frame geometry.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	result := pipeline.ProbeResult{}

	it, err := s.container.Records(input.Topic)
	if err != nil {
		return result, fmt.Errorf("open records of %s: %w", input.Topic, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read record %d of %s: %w", result.FrameCount, input.Topic, err)
		}

		if result.FrameCount == 0 {
			f, err := frame.Decode(rec)
			if err != nil {
				return result, fmt.Errorf("decode representative frame: %w", err)
			}
			result.Width = f.Width
			result.Height = f.Height
			result.FrameBytes = int64(f.Bytes())
			result.Encoding = encodingTag(rec)
			s.logger.Debug("Representative frame: %dx%d, %d bytes (%s)",
				f.Width, f.Height, f.Bytes(), result.Encoding)
		}

		result.TimestampsNs = append(result.TimestampsNs, rec.LogTimeNs)
		result.FrameCount++
	}

	if result.FrameCount == 0 {
		return result, fmt.Errorf("%w: %s", ErrNoRecords, input.Topic)
	}

	if s.debug.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			if err := s.debug.SaveProbeJSON(data); err != nil {
				s.logger.Warn("Failed to save probe JSON: %s", err)
			}
		}
	}

	s.logger.Debug("Probed %d records on %s", result.FrameCount, input.Topic)
	return result, nil
}

func encodingTag(rec ports.ImageRecord) string {
	if rec.Compressed {
		return "compressed"
	}
	return rec.Encoding
}
