// Package avisink provides a Motion-JPEG AVI video sink. It is pure Go
// and needs no external encoder, which makes it the portable fallback
// output format.
package avisink

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/icza/mjpeg"

	"github.com/user/mcap2video/pkg/ports"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// Sink implements ports.VideoSink by JPEG-encoding each frame into an
// MJPEG AVI container.
type Sink struct {
	quality int
	writer  mjpeg.AviWriter
	buf     bytes.Buffer
}

// New creates a new AVI sink with the given JPEG quality (1-100);
// values outside the range fall back to DefaultQuality.
func New(quality int) *Sink {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Sink{quality: quality}
}

// Open creates the AVI file. The AVI header carries an integral frame
// rate, so fps is rounded to the nearest whole number (minimum 1).
func (s *Sink) Open(path string, width, height int, fps float64) error {
	if s.writer != nil {
		return fmt.Errorf("avisink: sink already open")
	}

	rate := int32(math.Round(fps))
	if rate < 1 {
		rate = 1
	}

	writer, err := mjpeg.New(path, int32(width), int32(height), rate)
	if err != nil {
		return fmt.Errorf("avisink: create %s: %w", path, err)
	}
	s.writer = writer
	return nil
}

// WriteFrame JPEG-encodes the frame and appends it to the AVI stream.
func (s *Sink) WriteFrame(img image.Image) error {
	if s.writer == nil {
		return fmt.Errorf("avisink: sink not open")
	}

	s.buf.Reset()
	if err := jpeg.Encode(&s.buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return fmt.Errorf("avisink: encode frame: %w", err)
	}
	if err := s.writer.AddFrame(s.buf.Bytes()); err != nil {
		return fmt.Errorf("avisink: add frame: %w", err)
	}
	return nil
}

// Close finalizes the AVI index and closes the file.
func (s *Sink) Close() error {
	if s.writer == nil {
		return nil
	}
	writer := s.writer
	s.writer = nil
	if err := writer.Close(); err != nil {
		return fmt.Errorf("avisink: close: %w", err)
	}
	return nil
}

// Ensure Sink implements ports.VideoSink
var _ ports.VideoSink = (*Sink)(nil)
