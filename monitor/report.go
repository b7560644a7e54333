package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CheckReport maps check names to their results. Names keep the order in
// which they were first set, and JSON output follows that order.
type CheckReport struct {
	names   []string
	results map[string]any
}

// NewCheckReport returns an empty report.
func NewCheckReport() *CheckReport {
	return &CheckReport{results: make(map[string]any)}
}

// Set records the result for name, replacing any earlier value.
func (r *CheckReport) Set(name string, result any) {
	if _, ok := r.results[name]; !ok {
		r.names = append(r.names, name)
	}
	r.results[name] = result
}

// Get returns the result recorded for name.
func (r *CheckReport) Get(name string) (any, bool) {
	v, ok := r.results[name]
	return v, ok
}

// Names returns the recorded names in order.
func (r *CheckReport) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of recorded names.
func (r *CheckReport) Len() int {
	return len(r.names)
}

// MarshalJSON encodes the report as a JSON object in insertion order.
func (r *CheckReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.results[name])
		if err != nil {
			return nil, fmt.Errorf("encoding result of %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
