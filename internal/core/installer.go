package core

import (
	"context"
	"log/slog"

	"github.com/barysiuk/catalyst/internal/core/agent"
	"github.com/barysiuk/catalyst/internal/core/client"
	"github.com/barysiuk/catalyst/internal/logging"
)

// Installer installs packaged agents into a client.
type Installer struct {
	resolver
}

// NewInstaller creates an Installer. selector may be nil when no interactive
// choice is possible.
func NewInstaller(detector *client.Detector, selector Selector, logger *slog.Logger) *Installer {
	return &Installer{resolver: newResolver(detector, selector, logger)}
}

// Install reads the package at path and writes its agent into the chosen
// client, under opts.Name when set.
func (inst *Installer) Install(ctx context.Context, path string, opts InstallOptions) (*InstallResult, error) {
	m, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = m.Agent.Name
	}
	if err := agent.ValidateName(name); err != nil {
		return nil, err
	}

	c, err := inst.resolveClient(ctx, opts.Client, "Install to which client?")
	if err != nil {
		return nil, err
	}

	written, err := c.InstallAgent(name, &m.Agent)
	if err != nil {
		return nil, err
	}
	logging.WithClient(inst.logger, c.Name()).Info("installed agent",
		"agent", name,
		"package", m.Name,
		"version", m.Version,
		"path", written)

	return &InstallResult{
		Manifest:  m,
		Client:    c,
		AgentName: name,
		Path:      written,
	}, nil
}
