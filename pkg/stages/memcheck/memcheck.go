// Package memcheck implements the memory estimation stage and its
// operator gate.
package memcheck

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/mcap2video/pkg/pipeline"
	"github.com/user/mcap2video/pkg/ports"
)

// DefaultOverheadBytes is the fixed margin added to the frame-buffer
// projection for decode scratch space and encoder state.
const DefaultOverheadBytes = 64 << 20

// ErrMemoryAborted is returned when the operator declines to proceed
// under the high-memory warning.
var ErrMemoryAborted = errors.New("memcheck: conversion declined at memory check")

// Stage projects peak decode memory from one representative frame and
// gates the conversion against available system memory.
//
// The behavior is two-tier: on platforms with a working memory query the
// projection is compared against available memory and exceeding it
// requires explicit confirmation; on platforms without one the
// projection is only displayed and the conversion proceeds. The
// degradation is deliberate, not an error path.
type Stage struct {
	memory    ports.SystemMemory
	confirmer ports.Confirmer
	logger    ports.Logger
	overhead  uint64
}

// NewStage creates a new memory check stage.
func NewStage(memory ports.SystemMemory, confirmer ports.Confirmer, logger ports.Logger) *Stage {
	return &Stage{
		memory:    memory,
		confirmer: confirmer,
		logger:    logger.WithComponent("memcheck"),
		overhead:  DefaultOverheadBytes,
	}
}

// WithOverhead overrides the fixed overhead margin.
func (s *Stage) WithOverhead(bytes uint64) *Stage {
	s.overhead = bytes
	return s
}

// Execute projects peak memory and runs the confirmation gate.
func (s *Stage) Execute(ctx context.Context, input pipeline.MemCheckInput) (pipeline.MemCheckResult, error) {
	result := pipeline.MemCheckResult{}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	result.ProjectedBytes = uint64(input.FrameBytes)*uint64(input.FrameCount) + s.overhead

	status := s.memory.Query()
	if !status.Supported {
		s.logger.Info("Projected decode memory: %s (available memory unknown on this platform)",
			formatBytes(result.ProjectedBytes))
		return result, nil
	}

	result.Gated = true
	result.AvailableBytes = status.AvailableBytes
	s.logger.Debug("Projected %s against %s available",
		formatBytes(result.ProjectedBytes), formatBytes(status.AvailableBytes))

	if result.ProjectedBytes <= status.AvailableBytes {
		return result, nil
	}

	prompt := fmt.Sprintf("Conversion may need %s but only %s is available. Continue?",
		formatBytes(result.ProjectedBytes), formatBytes(status.AvailableBytes))
	s.logger.Warn("Projected memory %s exceeds available %s",
		formatBytes(result.ProjectedBytes), formatBytes(status.AvailableBytes))

	ok, err := s.confirmer.Confirm(prompt)
	if err != nil {
		return result, fmt.Errorf("memory check confirmation: %w", err)
	}
	if !ok {
		return result, ErrMemoryAborted
	}
	return result, nil
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
