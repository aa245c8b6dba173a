// Package mp4sink provides an MP4 video sink that muxes JPEG-coded
// frames into a fragmented MP4 container.
package mp4sink

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/mcap2video/pkg/ports"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// videoTimescale is the track timescale in units per second.
const videoTimescale = 90000

// Sink implements ports.VideoSink. Frames are JPEG-coded samples; the
// container is assembled and written when the sink is closed, so a
// failed conversion leaves no file behind.
type Sink struct {
	quality int

	path    string
	width   int
	height  int
	fps     float64
	samples [][]byte
	open    bool
}

// New creates a new MP4 sink with the given JPEG quality (1-100);
// values outside the range fall back to DefaultQuality.
func New(quality int) *Sink {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Sink{quality: quality}
}

// Open records the session parameters. The file itself is created on
// Close, once all samples are known.
func (s *Sink) Open(path string, width, height int, fps float64) error {
	if s.open {
		return fmt.Errorf("mp4sink: sink already open")
	}
	if fps <= 0 || math.IsInf(fps, 0) || math.IsNaN(fps) {
		return fmt.Errorf("mp4sink: invalid frame rate %f", fps)
	}
	s.path = path
	s.width = width
	s.height = height
	s.fps = fps
	s.samples = nil
	s.open = true
	return nil
}

// WriteFrame JPEG-encodes the frame and queues it as one sample.
func (s *Sink) WriteFrame(img image.Image) error {
	if !s.open {
		return fmt.Errorf("mp4sink: sink not open")
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return fmt.Errorf("mp4sink: encode frame: %w", err)
	}
	s.samples = append(s.samples, buf.Bytes())
	return nil
}

// Close muxes the queued samples and writes the MP4 file.
func (s *Sink) Close() error {
	if !s.open {
		return nil
	}
	s.open = false

	if len(s.samples) == 0 {
		// Nothing was written; leave no empty file.
		return nil
	}

	data, err := s.buildMP4()
	if err != nil {
		return fmt.Errorf("mp4sink: build container: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("mp4sink: write %s: %w", s.path, err)
	}
	return nil
}

// buildMP4 assembles an init segment plus one fragment holding every
// sample. JPEG frames are intra-coded, so every sample is a sync sample.
func (s *Sink) buildMP4() ([]byte, error) {
	trackID := uint32(1)

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(videoTimescale, "video", "und")

	trak := init.Moov.Trak
	sampleEntry := mp4.CreateVisualSampleEntryBox("jpeg", uint16(s.width), uint16(s.height), nil)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(sampleEntry)

	trak.Tkhd.Width = mp4.Fixed32(s.width << 16)
	trak.Tkhd.Height = mp4.Fixed32(s.height << 16)

	frag, err := mp4.CreateFragment(1, trackID)
	if err != nil {
		return nil, fmt.Errorf("create fragment: %w", err)
	}

	dur := uint32(math.Round(videoTimescale / s.fps))
	if dur == 0 {
		dur = 1
	}

	decodeTime := uint64(0)
	for _, sample := range s.samples {
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: mp4.SyncSampleFlags,
				Size:  uint32(len(sample)),
				Dur:   dur,
			},
			DecodeTime: decodeTime,
			Data:       sample,
		})
		decodeTime += uint64(dur)
	}

	var buf bytes.Buffer

	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode ftyp: %w", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode moov: %w", err)
	}
	if err := frag.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode fragment: %w", err)
	}

	return buf.Bytes(), nil
}

// Ensure Sink implements ports.VideoSink
var _ ports.VideoSink = (*Sink)(nil)
