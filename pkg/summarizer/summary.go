// Package summarizer provides summary generation for conversion results.
package summarizer

import "time"

// Summary contains all data collected during a conversion run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input container information
	Input InputInfo

	// Frame rate estimation
	Rate RateInfo

	// Memory projection
	Memory MemoryInfo

	// Video output details
	Video VideoInfo
}

// InputInfo describes the source container and selected channel.
type InputInfo struct {
	Path       string
	Topic      string
	SchemaName string
	Encoding   string
}

// RateInfo contains the estimated playback rate.
type RateInfo struct {
	FPS        float64
	FrameCount int
}

// MemoryInfo contains the memory projection made before writing.
type MemoryInfo struct {
	ProjectedBytes uint64
	AvailableBytes uint64
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Path          string
	FramesWritten int
	Width         int
	Height        int
	FileSize      int64
	ElapsedMs     int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets input container information.
func (b *Builder) WithInput(path, topic, schemaName, encoding string) *Builder {
	b.summary.Input = InputInfo{
		Path:       path,
		Topic:      topic,
		SchemaName: schemaName,
		Encoding:   encoding,
	}
	return b
}

// WithRate sets the estimated frame rate.
func (b *Builder) WithRate(fps float64, frameCount int) *Builder {
	b.summary.Rate = RateInfo{
		FPS:        fps,
		FrameCount: frameCount,
	}
	return b
}

// WithMemory sets the memory projection.
func (b *Builder) WithMemory(projected, available uint64) *Builder {
	b.summary.Memory = MemoryInfo{
		ProjectedBytes: projected,
		AvailableBytes: available,
	}
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
