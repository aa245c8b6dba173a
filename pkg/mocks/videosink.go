package mocks

import (
	"image"
	"sync"

	"github.com/user/mcap2video/pkg/ports"
)

// VideoSink is a mock implementation of ports.VideoSink. It records
// every opened stream and written frame for test verification.
type VideoSink struct {
	mu sync.Mutex

	OpenFunc       func(path string, width, height int, fps float64) error
	WriteFrameFunc func(img image.Image) error
	CloseFunc      func() error

	OpenedPath   string
	OpenedWidth  int
	OpenedHeight int
	OpenedFPS    float64
	Frames       []image.Image
	Closed       bool
}

// NewVideoSink creates a new mock VideoSink.
func NewVideoSink() *VideoSink {
	return &VideoSink{}
}

func (m *VideoSink) Open(path string, width, height int, fps float64) error {
	if m.OpenFunc != nil {
		return m.OpenFunc(path, width, height, fps)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OpenedPath = path
	m.OpenedWidth = width
	m.OpenedHeight = height
	m.OpenedFPS = fps
	return nil
}

func (m *VideoSink) WriteFrame(img image.Image) error {
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(img)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames = append(m.Frames, img)
	return nil
}

func (m *VideoSink) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// FrameCount returns how many frames were written (for test verification).
func (m *VideoSink) FrameCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Frames)
}

var _ ports.VideoSink = (*VideoSink)(nil)
