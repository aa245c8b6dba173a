// Package smartsink selects a video sink implementation from the output
// file extension.
package smartsink

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/mcap2video/pkg/adapters/avisink"
	"github.com/user/mcap2video/pkg/adapters/mp4sink"
	"github.com/user/mcap2video/pkg/ports"
)

// Format identifies the container format of the selected sink.
type Format string

const (
	// FormatMP4 is a fragmented MP4 with JPEG-coded samples.
	FormatMP4 Format = "mp4"
	// FormatAVI is a Motion-JPEG AVI.
	FormatAVI Format = "avi"
)

// ErrUnsupportedExtension is returned for output paths whose extension
// maps to no known container format.
var ErrUnsupportedExtension = errors.New("smartsink: unsupported output extension")

// Info describes the selected sink.
type Info struct {
	Format Format
}

// New selects a sink for the given output path. ".mp4" and ".avi" are
// recognized; an empty extension defaults to MP4.
func New(outputPath string, quality int) (ports.VideoSink, Info, error) {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".mp4", "":
		return mp4sink.New(quality), Info{Format: FormatMP4}, nil
	case ".avi":
		return avisink.New(quality), Info{Format: FormatAVI}, nil
	default:
		return nil, Info{}, fmt.Errorf("%w: %s", ErrUnsupportedExtension, filepath.Ext(outputPath))
	}
}
