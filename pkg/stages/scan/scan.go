// Package scan implements the channel scanning stage.
package scan

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/user/mcap2video/pkg/pipeline"
	"github.com/user/mcap2video/pkg/ports"
)

var (
	// ErrIndexUnreadable is returned when the container index cannot be
	// read (corrupt or truncated container).
	ErrIndexUnreadable = errors.New("scan: container index unreadable")

	// ErrNoImageChannels is returned when the container holds no channel
	// with a recognized image schema.
	ErrNoImageChannels = errors.New("scan: no image channels in container")

	// ErrChannelNotFound is returned when the requested topic is absent
	// from the scan result.
	ErrChannelNotFound = errors.New("scan: requested channel not found")
)

// Stage enumerates image-bearing channels by inspecting declared
// message schemas. It is read-only with respect to the container.
type Stage struct {
	container ports.Container
	logger    ports.Logger
}

// NewStage creates a new scan stage.
func NewStage(container ports.Container, logger ports.Logger) *Stage {
	return &Stage{
		container: container,
		logger:    logger.WithComponent("scan"),
	}
}

// Execute returns the image channels of the container, deduplicated by
// topic, and resolves the requested topic when one is given.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScanInput) (pipeline.ScanResult, error) {
	result := pipeline.ScanResult{}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	channels, err := s.container.Channels()
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrIndexUnreadable, err)
	}

	seen := make(map[string]bool, len(channels))
	for _, ch := range channels {
		if seen[ch.Topic] {
			continue
		}
		seen[ch.Topic] = true
		result.Channels = append(result.Channels, ch)
		s.logger.Debug("Found image channel %s (%s, %d messages)", ch.Topic, ch.SchemaName, ch.MessageCount)
	}
	sort.Slice(result.Channels, func(i, j int) bool {
		return result.Channels[i].Topic < result.Channels[j].Topic
	})

	if len(result.Channels) == 0 {
		return result, ErrNoImageChannels
	}

	if input.Topic != "" {
		for i := range result.Channels {
			if result.Channels[i].Topic == input.Topic {
				result.Selected = &result.Channels[i]
				break
			}
		}
		if result.Selected == nil {
			return result, fmt.Errorf("%w: %s", ErrChannelNotFound, input.Topic)
		}
	}

	return result, nil
}
