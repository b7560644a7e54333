package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/hazz-dev/selfmon/internal/config"
	"github.com/hazz-dev/selfmon/monitor"
)

const dockerSockPath = "/var/run/docker.sock"

// ContainerState holds the minimal Docker container state we care about.
type ContainerState struct {
	Running bool
	Status  string
}

// DockerClient abstracts Docker Engine API access for testability.
type DockerClient interface {
	InspectContainer(ctx context.Context, name string) (*ContainerState, error)
}

type dockerChecker struct {
	cfg    config.Check
	client DockerClient
}

func newDockerChecker(c config.Check) *dockerChecker {
	return &dockerChecker{cfg: c, client: newUnixDockerClient(dockerSockPath)}
}

// NewDockerCheckerWithClient creates a docker checker with a custom client (for testing).
func NewDockerCheckerWithClient(c config.Check, client DockerClient) monitor.Check {
	return &dockerChecker{cfg: c, client: client}
}

func (c *dockerChecker) Run(ctx context.Context) (any, error) {
	state, err := c.client.InspectContainer(ctx, c.cfg.Target)
	if err != nil {
		return nil, err
	}
	if !state.Running {
		return nil, fmt.Errorf("container %q is not running", c.cfg.Target)
	}
	return map[string]any{
		"container": c.cfg.Target,
		"running":   true,
	}, nil
}

// unixDockerClient queries the Docker Engine API over the Unix socket.
type unixDockerClient struct {
	client *http.Client
}

func newUnixDockerClient(sock string) *unixDockerClient {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", sock)
		},
	}
	return &unixDockerClient{client: &http.Client{Transport: transport}}
}

func (d *unixDockerClient) InspectContainer(ctx context.Context, name string) (*ContainerState, error) {
	u := fmt.Sprintf("http://localhost/containers/%s/json", url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying docker socket: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("container %q not found", name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("docker API returned status %d", resp.StatusCode)
	}

	var body struct {
		State ContainerState `json:"State"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding docker response: %w", err)
	}
	return &body.State, nil
}
