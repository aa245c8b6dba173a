package mocks

import (
	"fmt"
	"io"
	"sync"

	"github.com/user/mcap2video/pkg/ports"
)

// Container is a mock implementation of ports.Container backed by an
// in-memory record table keyed by topic.
type Container struct {
	mu sync.Mutex

	channels []ports.Channel
	records  map[string][]ports.ImageRecord

	ChannelsFunc func() ([]ports.Channel, error)
	RecordsFunc  func(topic string) (ports.RecordIterator, error)
	CloseFunc    func() error

	RecordsCalls []string
	Closed       bool
}

// NewContainer creates a new mock Container.
func NewContainer() *Container {
	return &Container{
		records: make(map[string][]ports.ImageRecord),
	}
}

// AddChannel registers a channel to be returned by Channels.
func (m *Container) AddChannel(ch ports.Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, ch)
}

// AddRecord appends a record to the given topic's stream.
func (m *Container) AddRecord(rec ports.ImageRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Topic] = append(m.records[rec.Topic], rec)
}

func (m *Container) Channels() ([]ports.Channel, error) {
	if m.ChannelsFunc != nil {
		return m.ChannelsFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.Channel, len(m.channels))
	copy(out, m.channels)
	return out, nil
}

func (m *Container) Records(topic string) (ports.RecordIterator, error) {
	m.mu.Lock()
	m.RecordsCalls = append(m.RecordsCalls, topic)
	m.mu.Unlock()
	if m.RecordsFunc != nil {
		return m.RecordsFunc(topic)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	recs, ok := m.records[topic]
	if !ok {
		return nil, fmt.Errorf("topic not found: %s", topic)
	}
	return &RecordIterator{records: recs}, nil
}

func (m *Container) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// RecordIterator is a mock implementation of ports.RecordIterator that
// replays a fixed slice of records.
type RecordIterator struct {
	mu      sync.Mutex
	records []ports.ImageRecord
	pos     int

	NextFunc func() (ports.ImageRecord, error)

	// FailAt makes Next return FailErr once pos reaches this index
	// (when FailErr is non-nil).
	FailAt  int
	FailErr error
}

// NewRecordIterator creates an iterator over the given records.
func NewRecordIterator(records []ports.ImageRecord) *RecordIterator {
	return &RecordIterator{records: records}
}

func (m *RecordIterator) Next() (ports.ImageRecord, error) {
	if m.NextFunc != nil {
		return m.NextFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailErr != nil && m.pos == m.FailAt {
		return ports.ImageRecord{}, m.FailErr
	}
	if m.pos >= len(m.records) {
		return ports.ImageRecord{}, io.EOF
	}
	rec := m.records[m.pos]
	m.pos++
	return rec, nil
}

var _ ports.Container = (*Container)(nil)
var _ ports.RecordIterator = (*RecordIterator)(nil)
