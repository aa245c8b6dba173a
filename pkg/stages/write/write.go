// Package write implements the stream writing stage: the second
// conversion pass that decodes every record and pushes frames to the
// video sink.
package write

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/user/mcap2video/pkg/frame"
	"github.com/user/mcap2video/pkg/pipeline"
	"github.com/user/mcap2video/pkg/ports"
	"github.com/user/mcap2video/pkg/progress"
)

// ErrDimensionMismatch is returned when a decoded frame does not match
// the dimensions the sink was opened with. All frames of one encoding
// session share identical width and height; a mismatch is fatal, never
// a silent resize.
var ErrDimensionMismatch = errors.New("write: frame dimensions differ from first frame")

// Stage iterates records of the selected channel in container read
// order, decodes each one and writes the frame to the sink. Records are
// not reordered: out-of-order timestamps keep their first-seen position,
// a documented simplification.
type Stage struct {
	container ports.Container
	sink      ports.VideoSink
	fs        ports.FileSystem
	debug     ports.DebugSink
	tracker   *progress.Tracker
	logger    ports.Logger
}

// NewStage creates a new write stage. The tracker is the shared progress
// handle also given to the reporter.
func NewStage(
	container ports.Container,
	sink ports.VideoSink,
	fs ports.FileSystem,
	debug ports.DebugSink,
	tracker *progress.Tracker,
	logger ports.Logger,
) *Stage {
	return &Stage{
		container: container,
		sink:      sink,
		fs:        fs,
		debug:     debug,
		tracker:   tracker,
		logger:    logger.WithComponent("write"),
	}
}

// Execute performs the second pass. Once writing has started there is no
// cancellation path: a decode or encode failure closes the sink, removes
// the partial output file and surfaces the error.
func (s *Stage) Execute(ctx context.Context, input pipeline.WriteInput) (pipeline.WriteResult, error) {
	result := pipeline.WriteResult{}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	it, err := s.container.Records(input.Topic)
	if err != nil {
		return result, fmt.Errorf("open records of %s: %w", input.Topic, err)
	}

	if err := s.sink.Open(input.OutputPath, input.Width, input.Height, input.FPS); err != nil {
		return result, fmt.Errorf("open sink %s: %w", input.OutputPath, err)
	}
	s.tracker.SetTotal(int64(input.FrameCount))
	s.logger.Debug("Sink opened: %s %dx%d at %.3f fps", input.OutputPath, input.Width, input.Height, input.FPS)

	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, s.fail(input.OutputPath, fmt.Errorf("read record %d: %w", result.FramesWritten, err))
		}

		f, err := frame.Decode(rec)
		if err != nil {
			return result, s.fail(input.OutputPath, fmt.Errorf("decode record %d: %w", result.FramesWritten, err))
		}

		if f.Width != input.Width || f.Height != input.Height {
			return result, s.fail(input.OutputPath, fmt.Errorf("%w: record %d is %dx%d, session is %dx%d",
				ErrDimensionMismatch, result.FramesWritten, f.Width, f.Height, input.Width, input.Height))
		}

		img := f.ToImage()
		if err := s.sink.WriteFrame(img); err != nil {
			return result, s.fail(input.OutputPath, fmt.Errorf("write frame %d: %w", result.FramesWritten, err))
		}

		if s.debug.Enabled() {
			if err := s.debug.SaveDecodedFrame(result.FramesWritten, img); err != nil {
				s.logger.Warn("Failed to save debug frame %d: %s", result.FramesWritten, err)
			}
		}

		if result.Encoding == "" {
			if rec.Compressed {
				result.Encoding = "compressed"
			} else {
				result.Encoding = rec.Encoding
			}
		}

		result.FramesWritten++
		s.tracker.FrameWritten(int64(f.Bytes()))
	}

	if err := s.sink.Close(); err != nil {
		return result, s.removePartial(input.OutputPath, fmt.Errorf("close sink: %w", err))
	}

	s.logger.Debug("Wrote %d frames to %s", result.FramesWritten, input.OutputPath)
	return result, nil
}

// fail finalizes the already-opened output in a failure state: the sink
// is closed to release the file, then the partial output is removed so
// no playable-but-truncated video is left behind.
func (s *Stage) fail(path string, cause error) error {
	if err := s.sink.Close(); err != nil {
		s.logger.Debug("Closing sink after failure: %s", err)
	}
	return s.removePartial(path, cause)
}

func (s *Stage) removePartial(path string, cause error) error {
	if exists, err := s.fs.Exists(path); err == nil && exists {
		if err := s.fs.Remove(path); err != nil {
			s.logger.Warn("Failed to remove partial output %s: %s", path, err)
		} else {
			s.logger.Debug("Removed partial output %s", path)
		}
	}
	return cause
}
