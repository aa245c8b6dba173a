package progress

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/user/mcap2video/pkg/ports"
)

// defaultInterval is how often the reporter re-reads the counters.
const defaultInterval = 100 * time.Millisecond

// Reporter renders the tracker state from its own goroutine. It only
// reads the shared counters and never blocks the writer. On a terminal
// it draws a progress bar; otherwise it logs periodic debug lines.
type Reporter struct {
	tracker  *Tracker
	logger   ports.Logger
	interval time.Duration
	bar      *progressbar.ProgressBar

	done chan struct{}
	wg   sync.WaitGroup
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithInterval overrides the polling interval. Tests use a short
// interval to avoid real-time waits.
func WithInterval(d time.Duration) Option {
	return func(r *Reporter) {
		r.interval = d
	}
}

// WithBar enables bar rendering to the given writer (normally stderr
// when it is a terminal).
func WithBar(w io.Writer) Option {
	return func(r *Reporter) {
		r.bar = progressbar.NewOptions64(r.tracker.Total(),
			progressbar.OptionSetDescription("Writing frames"),
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionClearOnFinish(),
		)
	}
}

// NewReporter creates a Reporter over the given tracker.
func NewReporter(tracker *Tracker, logger ports.Logger, opts ...Option) *Reporter {
	r := &Reporter{
		tracker:  tracker,
		logger:   logger.WithComponent("progress"),
		interval: defaultInterval,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the reporting goroutine.
func (r *Reporter) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				r.render()
				return
			case <-ticker.C:
				r.render()
			}
		}
	}()
}

// Stop renders the final state and waits for the goroutine to exit.
func (r *Reporter) Stop() {
	close(r.done)
	r.wg.Wait()
	if r.bar != nil {
		r.bar.Finish()
	}
}

func (r *Reporter) render() {
	written := r.tracker.FramesWritten()
	total := r.tracker.Total()
	if r.bar != nil {
		if total > 0 && r.bar.GetMax64() != total {
			r.bar.ChangeMax64(total)
		}
		r.bar.Set64(written)
		return
	}
	if total > 0 {
		r.logger.Debug("Wrote %d/%d frames (%d bytes)", written, total, r.tracker.BytesProcessed())
	} else {
		r.logger.Debug("Wrote %d frames (%d bytes)", written, r.tracker.BytesProcessed())
	}
}
