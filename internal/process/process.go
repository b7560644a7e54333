// Package process reports live statistics about the running process.
package process

import (
	"os"
	"runtime"
	"time"

	"github.com/prometheus/procfs"
)

var started = time.Now()

// Memory is a memory usage snapshot in bytes.
type Memory struct {
	RSS       uint64
	HeapTotal uint64
	HeapUsage uint64
	External  uint64
}

// Snapshot is the state of the process at one point in time.
type Snapshot struct {
	PID           int
	UptimeSeconds float64
	Memory        Memory
}

// Current reads a Snapshot of the calling process.
//
// Resident set size and start time come from procfs where it is available;
// elsewhere RSS falls back to the memory obtained by the Go runtime and uptime
// is measured from package initialisation.
func Current() Snapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snap := Snapshot{
		PID:           os.Getpid(),
		UptimeSeconds: time.Since(started).Seconds(),
		Memory: Memory{
			RSS:       ms.Sys,
			HeapTotal: ms.HeapSys,
			HeapUsage: ms.HeapAlloc,
			External:  ms.Sys - ms.HeapSys,
		},
	}

	self, err := procfs.Self()
	if err != nil {
		return snap
	}
	stat, err := self.Stat()
	if err != nil {
		return snap
	}
	if rss := stat.ResidentMemory(); rss > 0 {
		snap.Memory.RSS = uint64(rss)
	}
	if start, err := stat.StartTime(); err == nil {
		if up := float64(time.Now().UnixNano())/1e9 - start; up >= 0 {
			snap.UptimeSeconds = up
		}
	}
	return snap
}
