//go:build !linux

package sysmemory

import (
	"github.com/user/mcap2video/pkg/ports"
)

// queryAvailable reports that the platform has no memory query.
func queryAvailable() ports.MemoryStatus {
	return ports.MemoryStatus{Supported: false}
}
