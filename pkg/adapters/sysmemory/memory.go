// Package sysmemory provides the platform available-memory query. The
// query is implemented on Linux; other platforms report unsupported and
// the memory check degrades to inform-only.
package sysmemory

import (
	"github.com/user/mcap2video/pkg/ports"
)

// Query implements ports.SystemMemory via the platform-specific
// queryAvailable function.
type Query struct{}

// New creates a new system memory query.
func New() *Query {
	return &Query{}
}

// Query reports available system memory.
func (q *Query) Query() ports.MemoryStatus {
	return queryAvailable()
}

// Ensure Query implements ports.SystemMemory
var _ ports.SystemMemory = (*Query)(nil)
