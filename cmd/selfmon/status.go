package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazz-dev/selfmon/monitor"
)

func executeStatus(cmd *cobra.Command, client *http.Client, baseURL string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fetchStatus(ctx, cmd.OutOrStdout(), client, baseURL)
}

// fetchStatus prints the status report of the instance at baseURL.
func fetchStatus(ctx context.Context, out io.Writer, client *http.Client, baseURL string) error {
	url := strings.TrimRight(baseURL, "/") + monitor.StatusPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("querying status: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &failure); err == nil && failure.Message != "" {
			return fmt.Errorf("status returned %d: %s", resp.StatusCode, failure.Message)
		}
		return fmt.Errorf("status returned %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("decoding status: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(out)
	return err
}
