package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hazz-dev/selfmon/monitor"
)

func executeCheck(cmd *cobra.Command, mon *monitor.Monitor) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return runChecks(ctx, cmd.OutOrStdout(), mon)
}

func runChecks(ctx context.Context, out io.Writer, mon *monitor.Monitor) error {
	status, err := mon.Status(ctx)
	if err != nil {
		fmt.Fprintf(out, "FAILED: %v\n", err)
		return fmt.Errorf("status check failed")
	}

	md := mon.Metadata()
	fmt.Fprintf(out, "revision: %s (%s)\n\n", md.Revision, md.Summary)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK\tRESULT")
	for _, name := range status.Checks.Names() {
		result, _ := status.Checks.Get(name)
		b, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encoding result of %q: %w", name, err)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, b)
	}
	w.Flush()
	return nil
}
