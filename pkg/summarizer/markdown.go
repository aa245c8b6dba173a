package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format converts a Summary to Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Conversion Summary\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	sb.WriteString("## Input\n\n")
	fmt.Fprintf(&sb, "- Container: %s\n", summary.Input.Path)
	fmt.Fprintf(&sb, "- Topic: %s\n", summary.Input.Topic)
	if summary.Input.SchemaName != "" {
		fmt.Fprintf(&sb, "- Schema: %s\n", summary.Input.SchemaName)
	}
	if summary.Input.Encoding != "" {
		fmt.Fprintf(&sb, "- Encoding: %s\n", summary.Input.Encoding)
	}
	sb.WriteString("\n")

	sb.WriteString("## Rate\n\n")
	fmt.Fprintf(&sb, "- Estimated FPS: %.3f\n", summary.Rate.FPS)
	fmt.Fprintf(&sb, "- Frames: %d\n", summary.Rate.FrameCount)
	sb.WriteString("\n")

	if summary.Memory.ProjectedBytes > 0 {
		sb.WriteString("## Memory\n\n")
		fmt.Fprintf(&sb, "- Projected: %s\n", formatBytes(summary.Memory.ProjectedBytes))
		if summary.Memory.AvailableBytes > 0 {
			fmt.Fprintf(&sb, "- Available: %s\n", formatBytes(summary.Memory.AvailableBytes))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Output\n\n")
	fmt.Fprintf(&sb, "- File: %s\n", summary.Video.Path)
	fmt.Fprintf(&sb, "- Frames written: %d\n", summary.Video.FramesWritten)
	fmt.Fprintf(&sb, "- Resolution: %dx%d\n", summary.Video.Width, summary.Video.Height)
	if summary.Video.FileSize > 0 {
		fmt.Fprintf(&sb, "- File size: %s\n", formatBytes(uint64(summary.Video.FileSize)))
	}
	fmt.Fprintf(&sb, "- Elapsed: %d ms\n", summary.Video.ElapsedMs)

	return sb.String()
}

func formatBytes(n uint64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.2f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.2f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.2f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

var _ Formatter = (*MarkdownFormatter)(nil)
