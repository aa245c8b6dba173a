package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/user/mcap2video/pkg/adapters/logger"
	"github.com/user/mcap2video/pkg/pipeline"
	"github.com/user/mcap2video/pkg/ports"
	"github.com/user/mcap2video/pkg/stages/memcheck"
)

// stubStages returns a full set of stage stubs for a successful run.
// Individual tests override the stage under test.
type stubStages struct {
	scan  pipeline.StageFunc[pipeline.ScanInput, pipeline.ScanResult]
	probe pipeline.StageFunc[pipeline.ProbeInput, pipeline.ProbeResult]
	rate  pipeline.StageFunc[pipeline.RateInput, pipeline.RateResult]
	mem   pipeline.StageFunc[pipeline.MemCheckInput, pipeline.MemCheckResult]
	write pipeline.StageFunc[pipeline.WriteInput, pipeline.WriteResult]
}

func happyStages() *stubStages {
	return &stubStages{
		scan: func(ctx context.Context, in pipeline.ScanInput) (pipeline.ScanResult, error) {
			ch := ports.Channel{Topic: in.Topic, SchemaName: "sensor_msgs/msg/Image", MessageCount: 3}
			return pipeline.ScanResult{Channels: []ports.Channel{ch}, Selected: &ch}, nil
		},
		probe: func(ctx context.Context, in pipeline.ProbeInput) (pipeline.ProbeResult, error) {
			return pipeline.ProbeResult{
				TimestampsNs: []uint64{0, 100_000_000, 200_000_000},
				FrameCount:   3,
				Width:        4,
				Height:       2,
				FrameBytes:   24,
				Encoding:     "rgb8",
			}, nil
		},
		rate: func(ctx context.Context, in pipeline.RateInput) (pipeline.RateResult, error) {
			return pipeline.RateResult{FPS: 10}, nil
		},
		mem: func(ctx context.Context, in pipeline.MemCheckInput) (pipeline.MemCheckResult, error) {
			return pipeline.MemCheckResult{ProjectedBytes: 1000, AvailableBytes: 2000, Gated: true}, nil
		},
		write: func(ctx context.Context, in pipeline.WriteInput) (pipeline.WriteResult, error) {
			return pipeline.WriteResult{FramesWritten: in.FrameCount, Encoding: "rgb8"}, nil
		},
	}
}

func (s *stubStages) orchestrator() *Orchestrator {
	return New(s.scan, s.probe, s.rate, s.mem, s.write, logger.NewNoop())
}

func TestOrchestrator_Run_Completes(t *testing.T) {
	stages := happyStages()

	var writeInput pipeline.WriteInput
	stages.write = func(ctx context.Context, in pipeline.WriteInput) (pipeline.WriteResult, error) {
		writeInput = in
		return pipeline.WriteResult{FramesWritten: in.FrameCount, Encoding: "rgb8"}, nil
	}

	result, err := stages.orchestrator().Run(context.Background(), Config{
		Topic:      "/cam",
		OutputPath: "out.mp4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != StateCompleted {
		t.Errorf("state = %v, want completed", result.State)
	}
	if result.FramesWritten != 3 {
		t.Errorf("frames written = %d, want 3", result.FramesWritten)
	}
	if result.FPS != 10 {
		t.Errorf("fps = %v, want 10", result.FPS)
	}
	if result.Width != 4 || result.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 4x2", result.Width, result.Height)
	}
	if result.SchemaName != "sensor_msgs/msg/Image" {
		t.Errorf("schema = %q", result.SchemaName)
	}
	if result.ProjectedBytes != 1000 || result.AvailableBytes != 2000 {
		t.Errorf("memory projection = %d/%d", result.ProjectedBytes, result.AvailableBytes)
	}

	// The write pass runs with the parameters bound by the first pass.
	if writeInput.FPS != 10 || writeInput.Width != 4 || writeInput.Height != 2 || writeInput.FrameCount != 3 {
		t.Errorf("write input = %+v", writeInput)
	}
	if writeInput.OutputPath != "out.mp4" || writeInput.Topic != "/cam" {
		t.Errorf("write target = %s on %s", writeInput.OutputPath, writeInput.Topic)
	}
}

func TestOrchestrator_Run_EmptyTopicFails(t *testing.T) {
	result, err := happyStages().orchestrator().Run(context.Background(), Config{OutputPath: "out.mp4"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if result.State != StateFailed {
		t.Errorf("state = %v, want failed", result.State)
	}
}

func TestOrchestrator_Run_ScanFailure(t *testing.T) {
	stages := happyStages()
	scanErr := errors.New("unreadable index")
	stages.scan = func(ctx context.Context, in pipeline.ScanInput) (pipeline.ScanResult, error) {
		return pipeline.ScanResult{}, scanErr
	}

	result, err := stages.orchestrator().Run(context.Background(), Config{Topic: "/cam", OutputPath: "o"})
	if !errors.Is(err, scanErr) {
		t.Errorf("err = %v, want wrapped scan error", err)
	}
	if result.State != StateFailed {
		t.Errorf("state = %v, want failed", result.State)
	}
}

func TestOrchestrator_Run_RateFailurePreservesSentinel(t *testing.T) {
	stages := happyStages()
	stages.rate = func(ctx context.Context, in pipeline.RateInput) (pipeline.RateResult, error) {
		return pipeline.RateResult{}, errRateBroke
	}

	result, err := stages.orchestrator().Run(context.Background(), Config{Topic: "/cam", OutputPath: "o"})
	if !errors.Is(err, errRateBroke) {
		t.Errorf("err = %v, want the stage sentinel to survive wrapping", err)
	}
	if result.State != StateFailed {
		t.Errorf("state = %v, want failed", result.State)
	}
}

var errRateBroke = errors.New("rate broke")

func TestOrchestrator_Run_MemoryDeclineAborts(t *testing.T) {
	stages := happyStages()
	stages.mem = func(ctx context.Context, in pipeline.MemCheckInput) (pipeline.MemCheckResult, error) {
		return pipeline.MemCheckResult{}, memcheck.ErrMemoryAborted
	}

	writeCalled := false
	stages.write = func(ctx context.Context, in pipeline.WriteInput) (pipeline.WriteResult, error) {
		writeCalled = true
		return pipeline.WriteResult{}, nil
	}

	result, err := stages.orchestrator().Run(context.Background(), Config{Topic: "/cam", OutputPath: "o"})
	if !errors.Is(err, memcheck.ErrMemoryAborted) {
		t.Errorf("err = %v, want ErrMemoryAborted", err)
	}
	if result.State != StateAborted {
		t.Errorf("state = %v, want aborted", result.State)
	}
	if writeCalled {
		t.Error("write pass must not start after an abort")
	}
}

func TestOrchestrator_Run_WriteFailure(t *testing.T) {
	stages := happyStages()
	stages.write = func(ctx context.Context, in pipeline.WriteInput) (pipeline.WriteResult, error) {
		return pipeline.WriteResult{}, errors.New("disk full")
	}

	result, err := stages.orchestrator().Run(context.Background(), Config{Topic: "/cam", OutputPath: "o"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if result.State != StateFailed {
		t.Errorf("state = %v, want failed", result.State)
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateScanning:    "scanning",
		StateEstimating:  "estimating",
		StateMemoryCheck: "memory-check",
		StateWriting:     "writing",
		StateCompleted:   "completed",
		StateAborted:     "aborted",
		StateFailed:      "failed",
		State(99):        "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
