package progress

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/user/mcap2video/pkg/ports"
)

func TestTracker_Counters(t *testing.T) {
	tracker := NewTracker(10)

	tracker.FrameWritten(300)
	tracker.FrameWritten(300)

	if got := tracker.FramesWritten(); got != 2 {
		t.Errorf("expected 2 frames, got %d", got)
	}
	if got := tracker.BytesProcessed(); got != 600 {
		t.Errorf("expected 600 bytes, got %d", got)
	}
	if got := tracker.Total(); got != 10 {
		t.Errorf("expected total 10, got %d", got)
	}
}

func TestTracker_ConcurrentReads(t *testing.T) {
	tracker := NewTracker(1000)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Reader goroutine mimicking the reporter.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = tracker.FramesWritten()
				_ = tracker.BytesProcessed()
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		tracker.FrameWritten(3)
	}
	close(stop)
	wg.Wait()

	if got := tracker.FramesWritten(); got != 1000 {
		t.Errorf("expected 1000 frames, got %d", got)
	}
	if got := tracker.BytesProcessed(); got != 3000 {
		t.Errorf("expected 3000 bytes, got %d", got)
	}
}

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.msgs)
}

func (l *recordingLogger) Debug(msg string, args ...interface{}) { l.log(msg) }
func (l *recordingLogger) Info(msg string, args ...interface{})  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, args ...interface{})  { l.log(msg) }
func (l *recordingLogger) Error(msg string, args ...interface{}) { l.log(msg) }
func (l *recordingLogger) WithComponent(component string) ports.Logger {
	return l
}

func TestReporter_LogsProgress(t *testing.T) {
	tracker := NewTracker(5)
	logger := &recordingLogger{}

	r := NewReporter(tracker, logger, WithInterval(time.Millisecond))
	r.Start()
	for i := 0; i < 5; i++ {
		tracker.FrameWritten(100)
	}
	time.Sleep(10 * time.Millisecond)
	r.Stop()

	if logger.count() == 0 {
		t.Error("expected at least one progress line")
	}
}

func TestReporter_BarReachesFinalCount(t *testing.T) {
	tracker := NewTracker(3)
	logger := &recordingLogger{}

	var out bytes.Buffer
	r := NewReporter(tracker, logger, WithInterval(time.Millisecond), WithBar(&out))
	r.Start()
	tracker.FrameWritten(10)
	tracker.FrameWritten(10)
	tracker.FrameWritten(10)
	r.Stop()

	// The final render on Stop must observe all three frames.
	if got := tracker.FramesWritten(); got != 3 {
		t.Errorf("expected 3 frames, got %d", got)
	}
	if out.Len() == 0 {
		t.Error("expected bar output")
	}
}
