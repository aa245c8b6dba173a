// Package orchestrator sequences the conversion stages and owns the
// run's terminal state.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/ideamans/go-l10n"

	"github.com/user/mcap2video/pkg/pipeline"
	"github.com/user/mcap2video/pkg/ports"
	"github.com/user/mcap2video/pkg/stages/memcheck"
)

// State is the orchestrator's position in the conversion state machine:
// Scanning → Estimating → MemoryCheck → Writing → {Completed | Failed},
// with Aborted as the terminal state of an operator decline. No
// transition retries; every failure is terminal for the run.
type State int

const (
	StateScanning State = iota
	StateEstimating
	StateMemoryCheck
	StateWriting
	StateCompleted
	StateAborted
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateEstimating:
		return "estimating"
	case StateMemoryCheck:
		return "memory-check"
	case StateWriting:
		return "writing"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config contains the per-run parameters.
type Config struct {
	// Topic is the channel to convert.
	Topic string

	// OutputPath is where the video file is written.
	OutputPath string
}

// RunResult contains the results of a conversion run.
type RunResult struct {
	State State

	// Conversion session parameters, bound during the run.
	FPS    float64
	Width  int
	Height int

	FramesWritten int

	// Encoding is the source encoding that was converted.
	Encoding string

	// SchemaName is the schema of the selected channel.
	SchemaName string

	// ProjectedBytes is the memory estimator's projection;
	// AvailableBytes is what the system reported (0 when unsupported).
	ProjectedBytes uint64
	AvailableBytes uint64
}

// Orchestrator coordinates the two-pass conversion.
type Orchestrator struct {
	scanStage  pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult]
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult]
	rateStage  pipeline.Stage[pipeline.RateInput, pipeline.RateResult]
	memStage   pipeline.Stage[pipeline.MemCheckInput, pipeline.MemCheckResult]
	writeStage pipeline.Stage[pipeline.WriteInput, pipeline.WriteResult]
	logger     ports.Logger
}

// New creates a new Orchestrator.
func New(
	scanStage pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult],
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult],
	rateStage pipeline.Stage[pipeline.RateInput, pipeline.RateResult],
	memStage pipeline.Stage[pipeline.MemCheckInput, pipeline.MemCheckResult],
	writeStage pipeline.Stage[pipeline.WriteInput, pipeline.WriteResult],
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		scanStage:  scanStage,
		probeStage: probeStage,
		rateStage:  rateStage,
		memStage:   memStage,
		writeStage: writeStage,
		logger:     logger,
	}
}

// Run executes the complete conversion pipeline. The returned
// RunResult.State is terminal: Completed, Aborted or Failed.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	result := RunResult{State: StateScanning}

	if config.Topic == "" {
		result.State = StateFailed
		return result, errors.New("orchestrator: no topic selected")
	}

	// 1. Scan for image channels and resolve the requested topic.
	o.logger.Info(l10n.T("Scanning container for image channels"))
	scanRes, err := o.scanStage.Execute(ctx, pipeline.ScanInput{Topic: config.Topic})
	if err != nil {
		result.State = StateFailed
		o.logger.Error(l10n.F("Failed to scan container: %s", err))
		return result, fmt.Errorf("scan stage: %w", err)
	}
	result.SchemaName = scanRes.Selected.SchemaName
	o.logger.Info(l10n.F("Selected channel %s (%d messages)",
		scanRes.Selected.Topic, scanRes.Selected.MessageCount))

	// 2. First pass: timestamps plus one representative frame.
	result.State = StateEstimating
	probeRes, err := o.probeStage.Execute(ctx, pipeline.ProbeInput{Topic: config.Topic})
	if err != nil {
		result.State = StateFailed
		o.logger.Error(l10n.F("Failed to probe channel: %s", err))
		return result, fmt.Errorf("probe stage: %w", err)
	}

	rateRes, err := o.rateStage.Execute(ctx, pipeline.RateInput{TimestampsNs: probeRes.TimestampsNs})
	if err != nil {
		result.State = StateFailed
		o.logger.Error(l10n.F("Failed to estimate frame rate: %s", err))
		return result, fmt.Errorf("rate stage: %w", err)
	}
	result.FPS = rateRes.FPS
	result.Width = probeRes.Width
	result.Height = probeRes.Height
	o.logger.Info(l10n.F("Estimated %.2f fps from %d frames (%dx%d)",
		rateRes.FPS, probeRes.FrameCount, probeRes.Width, probeRes.Height))

	// 3. Memory gate.
	result.State = StateMemoryCheck
	memRes, err := o.memStage.Execute(ctx, pipeline.MemCheckInput{
		FrameBytes: probeRes.FrameBytes,
		FrameCount: probeRes.FrameCount,
	})
	if err != nil {
		if errors.Is(err, memcheck.ErrMemoryAborted) {
			result.State = StateAborted
			o.logger.Warn(l10n.T("Conversion aborted at memory check"))
		} else {
			result.State = StateFailed
			o.logger.Error(l10n.F("Memory check failed: %s", err))
		}
		return result, fmt.Errorf("memory check stage: %w", err)
	}
	result.ProjectedBytes = memRes.ProjectedBytes
	result.AvailableBytes = memRes.AvailableBytes

	// 4. Second pass: decode and write.
	result.State = StateWriting
	o.logger.Info(l10n.F("Writing %d frames to %s", probeRes.FrameCount, config.OutputPath))
	writeRes, err := o.writeStage.Execute(ctx, pipeline.WriteInput{
		Topic:      config.Topic,
		OutputPath: config.OutputPath,
		FPS:        rateRes.FPS,
		Width:      probeRes.Width,
		Height:     probeRes.Height,
		FrameCount: probeRes.FrameCount,
	})
	if err != nil {
		result.State = StateFailed
		o.logger.Error(l10n.F("Failed to write video: %s", err))
		return result, fmt.Errorf("write stage: %w", err)
	}

	result.State = StateCompleted
	result.FramesWritten = writeRes.FramesWritten
	result.Encoding = writeRes.Encoding
	o.logger.Info(l10n.F("Conversion completed: %d frames", writeRes.FramesWritten))
	return result, nil
}
