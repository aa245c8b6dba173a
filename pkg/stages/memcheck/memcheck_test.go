package memcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/user/mcap2video/pkg/adapters/logger"
	"github.com/user/mcap2video/pkg/mocks"
	"github.com/user/mcap2video/pkg/pipeline"
)

func TestStage_Execute_FitsInMemory(t *testing.T) {
	memory := mocks.NewSystemMemory(1 << 30)
	confirmer := mocks.NewConfirmer(false)

	stage := NewStage(memory, confirmer, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.MemCheckInput{
		FrameBytes: 1 << 20,
		FrameCount: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := uint64(100<<20) + DefaultOverheadBytes
	if result.ProjectedBytes != want {
		t.Errorf("projected = %d, want %d", result.ProjectedBytes, want)
	}
	if !result.Gated {
		t.Error("expected the check to be gated on a supported platform")
	}
	if result.AvailableBytes != 1<<30 {
		t.Errorf("available = %d, want %d", result.AvailableBytes, uint64(1<<30))
	}
	if confirmer.PromptCount() != 0 {
		t.Error("no confirmation should be requested when the projection fits")
	}
}

func TestStage_Execute_ExceedsAndConfirmed(t *testing.T) {
	memory := mocks.NewSystemMemory(10 << 20)
	confirmer := mocks.NewConfirmer(true)

	stage := NewStage(memory, confirmer, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.MemCheckInput{
		FrameBytes: 1 << 20,
		FrameCount: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmer.PromptCount() != 1 {
		t.Errorf("prompt count = %d, want 1", confirmer.PromptCount())
	}
	if !result.Gated {
		t.Error("expected Gated to be set")
	}
}

func TestStage_Execute_ExceedsAndDeclined(t *testing.T) {
	memory := mocks.NewSystemMemory(10 << 20)
	confirmer := mocks.NewConfirmer(false)

	stage := NewStage(memory, confirmer, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.MemCheckInput{
		FrameBytes: 1 << 20,
		FrameCount: 100,
	})
	if !errors.Is(err, ErrMemoryAborted) {
		t.Errorf("err = %v, want ErrMemoryAborted", err)
	}
}

func TestStage_Execute_UnsupportedPlatformProceeds(t *testing.T) {
	memory := mocks.NewUnsupportedMemory()
	confirmer := mocks.NewConfirmer(false)

	stage := NewStage(memory, confirmer, logger.NewNoop())

	// Huge projection, but no memory query available: inform and proceed.
	result, err := stage.Execute(context.Background(), pipeline.MemCheckInput{
		FrameBytes: 1 << 30,
		FrameCount: 10000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Gated {
		t.Error("check must not gate on an unsupported platform")
	}
	if confirmer.PromptCount() != 0 {
		t.Error("no confirmation should be requested on an unsupported platform")
	}
}

func TestStage_Execute_ConfirmError(t *testing.T) {
	memory := mocks.NewSystemMemory(1)
	confirmer := &mocks.Confirmer{
		ConfirmFunc: func(prompt string) (bool, error) {
			return false, errors.New("terminal gone")
		},
	}

	stage := NewStage(memory, confirmer, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.MemCheckInput{
		FrameBytes: 1,
		FrameCount: 1,
	})
	if err == nil || errors.Is(err, ErrMemoryAborted) {
		t.Errorf("err = %v, want a confirmation failure distinct from an abort", err)
	}
}

func TestStage_WithOverhead(t *testing.T) {
	memory := mocks.NewSystemMemory(1 << 40)
	stage := NewStage(memory, mocks.NewConfirmer(false), logger.NewNoop()).WithOverhead(0)

	result, err := stage.Execute(context.Background(), pipeline.MemCheckInput{
		FrameBytes: 10,
		FrameCount: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProjectedBytes != 30 {
		t.Errorf("projected = %d, want 30", result.ProjectedBytes)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 << 20, "3.0 MiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, c := range cases {
		if got := formatBytes(c.n); got != c.want {
			t.Errorf("formatBytes(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
