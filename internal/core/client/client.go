// Package client defines the Client abstraction for catalyst.
//
// A Client represents an AI assistant CLI (Kiro CLI, Claude Code) that keeps
// agents in its own directory and format. Each client knows its paths, how to
// detect whether it is installed, and how to translate an agent.Record to and
// from its on-disk representation. Clients are self-contained Go structs.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/barysiuk/catalyst/internal/core/agent"
)

var (
	// ErrClientNotFound is returned when a client name cannot be used,
	// either because it is unknown or because it is not installed.
	ErrClientNotFound = errors.New("client not found")

	// ErrClientNotInstalled is returned for a known client whose host tool
	// is not installed. It also matches ErrClientNotFound.
	ErrClientNotInstalled error = notInstalledError{}

	// ErrNoCompatibleClient is returned when no client is installed.
	ErrNoCompatibleClient = errors.New("no compatible AI CLI found")

	// ErrAgentNotFound is returned when a client has no agent by that name.
	ErrAgentNotFound = errors.New("agent not found")
)

type notInstalledError struct{}

func (notInstalledError) Error() string { return "client not installed" }

func (notInstalledError) Is(target error) bool { return target == ErrClientNotFound }

// Client defines how catalyst reads and writes agents for one host tool.
type Client interface {
	// Identity
	Name() string        // machine name: "kiro", "claude-code"
	DisplayName() string // human name: "Kiro CLI", "Claude Code"

	// Detection. Never fails: absence of the tool is false.
	IsInstalled(ctx context.Context) bool

	// Agents
	AgentsDir() string
	GetAgent(name string) (*agent.Record, error)
	InstallAgent(name string, rec *agent.Record) (string, error)
	ListAgents() ([]string, error)
}

// Defaults returns every supported client in detection order.
func Defaults(opts ...Option) []Client {
	return []Client{
		NewKiro(opts...),
		NewClaudeCode(opts...),
	}
}

// DefaultProbeTimeout bounds a single host-tool version probe.
const DefaultProbeTimeout = 5 * time.Second

// Detector holds the ordered list of known clients and answers which of
// them are installed.
type Detector struct {
	clients []Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewDetector creates a Detector over clients. A non-positive timeout falls
// back to DefaultProbeTimeout; a nil logger discards.
func NewDetector(timeout time.Duration, logger *slog.Logger, clients ...Client) *Detector {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Detector{clients: clients, timeout: timeout, logger: logger}
}

// All returns every known client in registration order.
func (d *Detector) All() []Client { return d.clients }

// Available returns the installed clients, preserving registration order.
func (d *Detector) Available(ctx context.Context) []Client {
	var available []Client
	for _, c := range d.clients {
		if d.probe(ctx, c) {
			available = append(available, c)
		}
	}
	return available
}

// ByName returns the client with the given machine name if it is installed.
// Unknown names fail with ErrClientNotFound; known clients that are not
// installed fail with ErrClientNotInstalled.
func (d *Detector) ByName(ctx context.Context, name string) (Client, error) {
	for _, c := range d.clients {
		if c.Name() != name {
			continue
		}
		if !d.probe(ctx, c) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrClientNotInstalled, c.DisplayName(), name)
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: unknown client %q; available: %s",
		ErrClientNotFound, name, strings.Join(Names(d.clients), ", "))
}

// probe runs one IsInstalled check under the detector timeout.
func (d *Detector) probe(ctx context.Context, c Client) bool {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	installed := c.IsInstalled(ctx)
	d.logger.Debug("probed client",
		"client", c.Name(),
		"installed", installed,
		"elapsed", time.Since(start))
	return installed
}

// Names returns the machine names of the given clients.
func Names(clients []Client) []string {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name()
	}
	return names
}

// DisplayNames returns the display names of the given clients.
func DisplayNames(clients []Client) []string {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.DisplayName()
	}
	return names
}
