package monitor

import "github.com/hazz-dev/selfmon/internal/process"

// Memory is a process memory snapshot in bytes.
type Memory struct {
	RSS       uint64 `json:"rss"`
	HeapTotal uint64 `json:"heapTotal"`
	HeapUsage uint64 `json:"heapUsage"`
	External  uint64 `json:"external"`
}

// ProcessStats describes the host process.
type ProcessStats struct {
	PID           int
	UptimeSeconds float64
	Memory        Memory
}

// StatusPayload is the body of a successful status response.
type StatusPayload struct {
	App           string       `json:"app,omitempty"`
	PID           int          `json:"pid"`
	UptimeSeconds float64      `json:"uptimeSeconds"`
	Memory        Memory       `json:"memory"`
	Metadata      Metadata     `json:"metadata"`
	Checks        *CheckReport `json:"checks"`
}

func currentProcess() ProcessStats {
	snap := process.Current()
	return ProcessStats{
		PID:           snap.PID,
		UptimeSeconds: snap.UptimeSeconds,
		Memory: Memory{
			RSS:       snap.Memory.RSS,
			HeapTotal: snap.Memory.HeapTotal,
			HeapUsage: snap.Memory.HeapUsage,
			External:  snap.Memory.External,
		},
	}
}

func assembleStatus(cfg *Config, stats ProcessStats, md Metadata, report *CheckReport) *StatusPayload {
	return &StatusPayload{
		App:           cfg.App,
		PID:           stats.PID,
		UptimeSeconds: stats.UptimeSeconds,
		Memory:        stats.Memory,
		Metadata:      md,
		Checks:        report,
	}
}
