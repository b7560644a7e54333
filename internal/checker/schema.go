package checker

import "github.com/hazz-dev/selfmon/monitor"

func object(props monitor.Schema) monitor.Schema {
	return monitor.Schema{"type": "object", "properties": props}
}

var (
	number  = monitor.Schema{"type": "number"}
	integer = monitor.Schema{"type": "integer"}
	str     = monitor.Schema{"type": "string"}
	boolean = monitor.Schema{"type": "boolean"}
)

// DefaultSchema returns the result schema of a built-in check type, or an
// empty schema for unknown types.
func DefaultSchema(typ string) monitor.Schema {
	switch typ {
	case "http":
		return object(monitor.Schema{"status": integer, "response_ms": number})
	case "tcp":
		return object(monitor.Schema{"address": str, "response_ms": number})
	case "ping":
		return object(monitor.Schema{"rtt_ms": number})
	case "docker":
		return object(monitor.Schema{"container": str, "running": boolean})
	case "sqlite":
		return object(monitor.Schema{"version": str, "tables": integer, "response_ms": number})
	case "redis":
		return object(monitor.Schema{"ping": str, "depth": integer, "response_ms": number})
	}
	return monitor.Schema{}
}
