package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hazz-dev/selfmon/monitor"
)

func writeSchema(out io.Writer, mon *monitor.Monitor) error {
	b, err := json.MarshalIndent(mon.ResponseSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", b)
	return err
}
