package client

import (
	"encoding/json"
	"fmt"

	"github.com/barysiuk/catalyst/internal/core/agent"
	"github.com/tailscale/hujson"
)

// Kiro implements the Client interface for Kiro CLI, which keeps one JSON
// document per agent in ~/.kiro/agents/<name>.json.
type Kiro struct {
	BaseClient
}

// NewKiro creates a configured Kiro CLI client.
func NewKiro(opts ...Option) *Kiro {
	return &Kiro{newBase(
		"kiro",
		"Kiro CLI",
		"~/.kiro",
		".json",
		[]string{"kiro-cli", "--version"},
		opts,
	)}
}

// GetAgent reads the named agent. Files may carry comments and trailing
// commas; they are standardized before decoding. Unknown top-level fields
// are kept in Record.Extra.
func (k *Kiro) GetAgent(name string) (*agent.Record, error) {
	data, path, err := k.readAgentFile(name)
	if err != nil {
		return nil, err
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", agent.ErrMalformedAgent, path, err)
	}

	var rec agent.Record
	if err := json.Unmarshal(std, &rec); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", agent.ErrMalformedAgent, path, err)
	}
	if rec.Name == "" {
		rec.Name = name
	}
	return &rec, nil
}

// InstallAgent writes rec under name, overriding rec.Name. Extension fields
// are written back at the top level.
func (k *Kiro) InstallAgent(name string, rec *agent.Record) (string, error) {
	out := rec.Clone()
	out.Name = name

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding agent %s: %w", name, err)
	}
	data = append(data, '\n')

	return k.writeAgentFile(name, data)
}
