package mocks

import (
	"github.com/user/mcap2video/pkg/ports"
)

// SystemMemory is a mock implementation of ports.SystemMemory.
type SystemMemory struct {
	Status ports.MemoryStatus

	QueryFunc func() ports.MemoryStatus
}

// NewSystemMemory creates a mock reporting the given available bytes.
func NewSystemMemory(available uint64) *SystemMemory {
	return &SystemMemory{
		Status: ports.MemoryStatus{Supported: true, AvailableBytes: available},
	}
}

// NewUnsupportedMemory creates a mock for platforms without a memory probe.
func NewUnsupportedMemory() *SystemMemory {
	return &SystemMemory{}
}

func (m *SystemMemory) Query() ports.MemoryStatus {
	if m.QueryFunc != nil {
		return m.QueryFunc()
	}
	return m.Status
}

var _ ports.SystemMemory = (*SystemMemory)(nil)
