// Package integration contains integration tests for the full
// conversion pipeline: real stages and real sinks over an in-memory
// container.
package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/mcap2video/pkg/adapters/logger"
	"github.com/user/mcap2video/pkg/adapters/osfilesystem"
	"github.com/user/mcap2video/pkg/adapters/smartsink"
	"github.com/user/mcap2video/pkg/mocks"
	"github.com/user/mcap2video/pkg/orchestrator"
	"github.com/user/mcap2video/pkg/ports"
	"github.com/user/mcap2video/pkg/progress"
	"github.com/user/mcap2video/pkg/stages/memcheck"
	"github.com/user/mcap2video/pkg/stages/probe"
	"github.com/user/mcap2video/pkg/stages/rate"
	"github.com/user/mcap2video/pkg/stages/scan"
	"github.com/user/mcap2video/pkg/stages/write"
)

// fakeContainer builds an in-memory container with count rgb8 records at
// a fixed 100ms interval.
func fakeContainer(topic string, count, width, height int) *mocks.Container {
	c := mocks.NewContainer()
	c.AddChannel(ports.Channel{
		Topic:        topic,
		SchemaName:   "sensor_msgs/msg/Image",
		MessageCount: uint64(count),
	})
	for i := 0; i < count; i++ {
		data := make([]byte, width*height*3)
		for j := range data {
			data[j] = uint8(i + j)
		}
		c.AddRecord(ports.ImageRecord{
			Topic:     topic,
			LogTimeNs: uint64(i) * 100_000_000,
			Encoding:  "rgb8",
			Width:     uint32(width),
			Height:    uint32(height),
			Step:      uint32(width * 3),
			Data:      data,
		})
	}
	return c
}

func runPipeline(t *testing.T, container *mocks.Container, topic, output string) (orchestrator.RunResult, error) {
	t.Helper()

	sink, _, err := smartsink.New(output, 90)
	if err != nil {
		t.Fatalf("select sink: %v", err)
	}

	log := logger.NewNoop()
	tracker := progress.NewTracker(0)
	memory := mocks.NewSystemMemory(8 << 30)

	orch := orchestrator.New(
		scan.NewStage(container, log),
		probe.NewStage(container, mocks.NewDebugSink(false), log),
		rate.NewStage(log),
		memcheck.NewStage(memory, mocks.NewConfirmer(false), log),
		write.NewStage(container, sink, osfilesystem.New(), mocks.NewDebugSink(false), tracker, log),
		log,
	)

	return orch.Run(context.Background(), orchestrator.Config{
		Topic:      topic,
		OutputPath: output,
	})
}

func TestPipeline_ConvertsToAVI(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.avi")
	container := fakeContainer("/cam", 12, 16, 8)

	result, err := runPipeline(t, container, "/cam", output)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if result.State != orchestrator.StateCompleted {
		t.Errorf("state = %v, want completed", result.State)
	}
	if result.FramesWritten != 12 {
		t.Errorf("frames written = %d, want 12", result.FramesWritten)
	}
	if result.FPS != 10 {
		t.Errorf("fps = %v, want 10", result.FPS)
	}

	info, err := os.Stat(output)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output is empty")
	}
}

func TestPipeline_ConvertsToMP4(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.mp4")
	container := fakeContainer("/cam", 5, 8, 8)

	result, err := runPipeline(t, container, "/cam", output)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if result.State != orchestrator.StateCompleted {
		t.Errorf("state = %v, want completed", result.State)
	}

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestPipeline_SingleFrameFails(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.avi")
	container := fakeContainer("/cam", 1, 8, 8)

	result, err := runPipeline(t, container, "/cam", output)
	if !errors.Is(err, rate.ErrInsufficientFrames) {
		t.Errorf("err = %v, want ErrInsufficientFrames", err)
	}
	if result.State != orchestrator.StateFailed {
		t.Errorf("state = %v, want failed", result.State)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("no output should exist after a failed estimation")
	}
}

func TestPipeline_IdenticalTimestampsFail(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.avi")

	container := mocks.NewContainer()
	container.AddChannel(ports.Channel{Topic: "/cam", SchemaName: "sensor_msgs/msg/Image", MessageCount: 3})
	for i := 0; i < 3; i++ {
		container.AddRecord(ports.ImageRecord{
			Topic:     "/cam",
			LogTimeNs: 42, // all identical
			Encoding:  "rgb8",
			Width:     4,
			Height:    4,
			Step:      12,
			Data:      make([]byte, 48),
		})
	}

	_, err := runPipeline(t, container, "/cam", output)
	if !errors.Is(err, rate.ErrDegenerateTimestamps) {
		t.Errorf("err = %v, want ErrDegenerateTimestamps", err)
	}
}

func TestPipeline_UnknownTopicFails(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.avi")
	container := fakeContainer("/cam", 3, 4, 4)

	_, err := runPipeline(t, container, "/other", output)
	if !errors.Is(err, scan.ErrChannelNotFound) {
		t.Errorf("err = %v, want ErrChannelNotFound", err)
	}
}

func TestPipeline_MemoryDeclineAborts(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.avi")
	container := fakeContainer("/cam", 4, 8, 8)

	sink, _, err := smartsink.New(output, 90)
	if err != nil {
		t.Fatal(err)
	}

	log := logger.NewNoop()
	// 1 byte available guarantees the gate trips; the confirmer declines.
	orch := orchestrator.New(
		scan.NewStage(container, log),
		probe.NewStage(container, mocks.NewDebugSink(false), log),
		rate.NewStage(log),
		memcheck.NewStage(mocks.NewSystemMemory(1), mocks.NewConfirmer(false), log),
		write.NewStage(container, sink, osfilesystem.New(), mocks.NewDebugSink(false), progress.NewTracker(0), log),
		log,
	)

	result, err := orch.Run(context.Background(), orchestrator.Config{Topic: "/cam", OutputPath: output})
	if !errors.Is(err, memcheck.ErrMemoryAborted) {
		t.Errorf("err = %v, want ErrMemoryAborted", err)
	}
	if result.State != orchestrator.StateAborted {
		t.Errorf("state = %v, want aborted", result.State)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("no output should exist after an abort")
	}
}
