package mp4sink

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func testFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 13)
	}
	return img
}

func TestSink_WritesMP4(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mp4")

	s := New(90)
	if err := s.Open(path, 16, 16, 29.97); err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := s.WriteFrame(testFrame(16, 16)); err != nil {
			t.Fatalf("write frame %d: %v", i, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	// ftyp box is first: size(4) + "ftyp" + major brand "isom".
	if len(data) < 16 || !bytes.Equal(data[4:8], []byte("ftyp")) || !bytes.Equal(data[8:12], []byte("isom")) {
		t.Errorf("output does not start with an isom ftyp box")
	}
	if !bytes.Contains(data, []byte("moov")) || !bytes.Contains(data, []byte("moof")) {
		t.Error("output misses moov/moof boxes")
	}
}

func TestSink_InvalidFrameRate(t *testing.T) {
	for _, fps := range []float64{0, -1} {
		s := New(90)
		if err := s.Open("out.mp4", 8, 8, fps); err == nil {
			t.Errorf("Open with fps=%v should fail", fps)
		}
	}
}

func TestSink_NoFileWithoutFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mp4")

	s := New(90)
	if err := s.Open(path, 8, 8, 10); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created when no frame was written")
	}
}

func TestSink_WriteBeforeOpen(t *testing.T) {
	s := New(90)
	if err := s.WriteFrame(testFrame(8, 8)); err == nil {
		t.Error("WriteFrame before Open should fail")
	}
}

func TestSink_CloseWithoutOpen(t *testing.T) {
	s := New(90)
	if err := s.Close(); err != nil {
		t.Errorf("Close on an unopened sink should be a no-op, got %v", err)
	}
}
