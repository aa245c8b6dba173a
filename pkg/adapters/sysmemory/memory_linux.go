//go:build linux

package sysmemory

import (
	"golang.org/x/sys/unix"

	"github.com/user/mcap2video/pkg/ports"
)

// queryAvailable reads free plus buffer memory from sysinfo(2).
func queryAvailable() ports.MemoryStatus {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return ports.MemoryStatus{}
	}

	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	available := (uint64(info.Freeram) + uint64(info.Bufferram)) * unit

	return ports.MemoryStatus{
		Supported:      true,
		AvailableBytes: available,
	}
}
