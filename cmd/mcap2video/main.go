// Package main provides the CLI entry point for mcap2video.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/mcap2video/pkg/adapters/confirm"
	"github.com/user/mcap2video/pkg/adapters/framedump"
	"github.com/user/mcap2video/pkg/adapters/logger"
	"github.com/user/mcap2video/pkg/adapters/mcapreader"
	"github.com/user/mcap2video/pkg/adapters/nullsink"
	"github.com/user/mcap2video/pkg/adapters/osfilesystem"
	"github.com/user/mcap2video/pkg/adapters/smartsink"
	"github.com/user/mcap2video/pkg/adapters/sysmemory"
	"github.com/user/mcap2video/pkg/config"
	"github.com/user/mcap2video/pkg/orchestrator"
	"github.com/user/mcap2video/pkg/ports"
	"github.com/user/mcap2video/pkg/progress"
	"github.com/user/mcap2video/pkg/stages/memcheck"
	"github.com/user/mcap2video/pkg/stages/probe"
	"github.com/user/mcap2video/pkg/stages/rate"
	"github.com/user/mcap2video/pkg/stages/scan"
	"github.com/user/mcap2video/pkg/stages/write"
	"github.com/user/mcap2video/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Convert ConvertCmd `cmd:"" help:"Convert a timestamped image topic to a video file."`
	Topics  TopicsCmd  `cmd:"" help:"List image topics in an MCAP file."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// ConvertCmd defines the convert subcommand. Pointer flags overlay the
// configuration file only when given on the command line.
type ConvertCmd struct {
	// Required arguments
	Input string `arg:"" help:"Input MCAP file path."`
	Topic string `short:"t" help:"Image topic to convert. Omit to list available topics."`

	// Configuration file
	Config string `short:"c" help:"YAML configuration file."`

	// Output options
	Output  *string `short:"o" help:"Output video file path, .mp4 or .avi (default: output.mp4)."`
	Quality *int    `short:"q" help:"JPEG quality for encoded frames, 1-100 (default: 90)."`

	// Memory options
	Yes bool `short:"y" help:"Proceed without prompting when projected memory exceeds available."`

	// Reporting options
	Summary string `short:"s" help:"Write a Markdown conversion summary to this path."`

	// Debug options
	Debug    bool    `short:"d" help:"Enable debug output."`
	DebugDir *string `help:"Directory for debug output (default: ./debug)."`

	// Logging options
	LogLevel *string `short:"l" help:"Log level: debug, info, warn, error (default: info)."`
	Quiet    bool    `short:"Q" help:"Suppress all log output."`
}

// TopicsCmd lists the image channels of a container.
type TopicsCmd struct {
	Input string `arg:"" help:"Input MCAP file path."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

// Exit codes for the distinguished conversion failures.
const (
	exitGeneric            = 1
	exitInsufficientFrames = 2
	exitDegenerateTime     = 3
	exitMemoryDeclined     = 4
)

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("mcap2video"),
		kong.Description("Convert timestamped image records in MCAP logs to video files."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "mcap2video: %s\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps distinguished failures to their exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, rate.ErrInsufficientFrames):
		return exitInsufficientFrames
	case errors.Is(err, rate.ErrDegenerateTimestamps):
		return exitDegenerateTime
	case errors.Is(err, memcheck.ErrMemoryAborted):
		return exitMemoryDeclined
	}
	return exitGeneric
}

// Run executes the convert command.
func (cmd *ConvertCmd) Run() error {
	if _, err := os.Stat(cmd.Input); err != nil {
		return errors.New(l10n.F("input file not found: %s", cmd.Input))
	}

	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// No topic given: list the available image topics instead.
	if cfg.Topic == "" {
		topics := TopicsCmd{Input: cmd.Input}
		return topics.Run()
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()

	container, err := mcapreader.Open(cmd.Input)
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}
	defer container.Close()

	sink, _, err := smartsink.New(cfg.OutputPath, cfg.Quality)
	if err != nil {
		return err
	}

	memory := sysmemory.New()

	var confirmer ports.Confirmer
	if cfg.AssumeYes {
		confirmer = confirm.AlwaysProceed
	} else {
		confirmer = confirm.NewPrompt()
	}

	// Create debug sink
	var dsink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		dsink = framedump.New(cfg.DebugDir, fs)
	} else {
		dsink = nullsink.New()
	}

	// Shared progress counters with a concurrent reporter
	tracker := progress.NewTracker(0)
	var reporterOpts []progress.Option
	if !cmd.Quiet && cfg.LogLevel != "debug" && isatty.IsTerminal(os.Stderr.Fd()) {
		reporterOpts = append(reporterOpts, progress.WithBar(os.Stderr))
	}
	reporter := progress.NewReporter(tracker, log, reporterOpts...)

	// Create stages
	scanStage := scan.NewStage(container, log)
	probeStage := probe.NewStage(container, dsink, log)
	rateStage := rate.NewStage(log)
	memStage := memcheck.NewStage(memory, confirmer, log).WithOverhead(cfg.OverheadBytes)
	writeStage := write.NewStage(container, sink, fs, dsink, tracker, log)

	// Create orchestrator
	orch := orchestrator.New(scanStage, probeStage, rateStage, memStage, writeStage, log)

	log.Info(l10n.F("Converting %s (topic %s)...", cmd.Input, cfg.Topic))

	start := time.Now()
	reporter.Start()
	result, runErr := orch.Run(ctx, cfg.ToOrchestratorConfig())
	reporter.Stop()
	if runErr != nil {
		return runErr
	}

	if msg := encodingReport(result.Encoding); msg != "" {
		log.Info(msg)
	}
	log.Info(l10n.F("Output saved to %s", cfg.OutputPath))

	if cfg.SummaryPath != "" {
		if err := writeSummary(cfg, result, time.Since(start)); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cfg.SummaryPath))
		}
	}

	return nil
}

// buildConfig overlays the configuration file (or the defaults) with
// the flags given on the command line.
func (cmd *ConvertCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", cmd.Config, err)
		}
		cfg = loaded
	}

	cfg.InputPath = cmd.Input
	if cmd.Topic != "" {
		cfg.Topic = cmd.Topic
	}
	if cmd.Output != nil {
		cfg.OutputPath = *cmd.Output
	}
	if cmd.Quality != nil {
		cfg.Quality = *cmd.Quality
	}
	if cmd.Yes {
		cfg.AssumeYes = true
	}
	if cmd.Summary != "" {
		cfg.SummaryPath = cmd.Summary
	}
	if cmd.Debug {
		cfg.Debug = true
	}
	if cmd.DebugDir != nil {
		cfg.DebugDir = *cmd.DebugDir
	}
	if cmd.LogLevel != nil {
		cfg.LogLevel = *cmd.LogLevel
	}
	return cfg, nil
}

// encodingReport names the channel handling that was applied to the
// source encoding.
func encodingReport(encoding string) string {
	switch encoding {
	case "bgr8":
		return l10n.T("Converted from BGR (bgr8) to RGB")
	case "rgb8":
		return l10n.T("Wrote RGB (rgb8) frames without channel conversion")
	case "compressed":
		return l10n.T("Wrote compressed frames as decoded")
	}
	return ""
}

// writeSummary builds the Markdown conversion summary and writes it to
// the configured summary path.
func writeSummary(cfg config.Config, result orchestrator.RunResult, elapsed time.Duration) error {
	video := summarizer.VideoInfo{
		Path:          cfg.OutputPath,
		FramesWritten: result.FramesWritten,
		Width:         result.Width,
		Height:        result.Height,
		ElapsedMs:     int(elapsed.Milliseconds()),
	}
	if info, err := os.Stat(cfg.OutputPath); err == nil {
		video.FileSize = info.Size()
	}

	summary := summarizer.NewBuilder().
		WithInput(cfg.InputPath, cfg.Topic, result.SchemaName, result.Encoding).
		WithRate(result.FPS, result.FramesWritten).
		WithMemory(result.ProjectedBytes, result.AvailableBytes).
		WithVideo(video).
		Build()

	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter())
	return writer.Write(cfg.SummaryPath, summary)
}

// Run executes the topics command.
func (cmd *TopicsCmd) Run() error {
	if _, err := os.Stat(cmd.Input); err != nil {
		return errors.New(l10n.F("input file not found: %s", cmd.Input))
	}

	container, err := mcapreader.Open(cmd.Input)
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}
	defer container.Close()

	channels, err := container.Channels()
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		fmt.Println(l10n.T("No image topics found."))
		return nil
	}

	for _, ch := range channels {
		if ch.MessageCount > 0 {
			fmt.Printf("%s\t%s\t%d\n", ch.Topic, ch.SchemaName, ch.MessageCount)
		} else {
			fmt.Printf("%s\t%s\t-\n", ch.Topic, ch.SchemaName)
		}
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("mcap2video version %s", version))
	return nil
}
