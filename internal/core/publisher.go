package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/barysiuk/catalyst/internal/core/client"
	"github.com/barysiuk/catalyst/internal/logging"
)

// Publisher reads an agent from a client and packages it.
type Publisher struct {
	resolver
	packager *Packager
}

// NewPublisher creates a Publisher. selector may be nil when no interactive
// choice is possible.
func NewPublisher(detector *client.Detector, packager *Packager, selector Selector, logger *slog.Logger) *Publisher {
	return &Publisher{
		resolver: newResolver(detector, selector, logger),
		packager: packager,
	}
}

// Publish packages agentName from the chosen client. An empty agentName
// means the only agent, or one picked through the selector.
func (p *Publisher) Publish(ctx context.Context, agentName string, opts PublishOptions) (*PublishResult, error) {
	c, err := p.resolveClient(ctx, opts.Client, "Publish from which client?")
	if err != nil {
		return nil, err
	}

	if agentName == "" {
		agentName, err = p.resolveAgent(c)
		if err != nil {
			return nil, err
		}
	}

	rec, err := c.GetAgent(agentName)
	if err != nil {
		return nil, err
	}

	path, err := p.packager.CreatePackage(rec)
	if err != nil {
		return nil, err
	}
	logging.WithClient(p.logger, c.Name()).Info("published agent",
		"agent", rec.Name,
		"version", p.packager.Version(),
		"path", path)

	return &PublishResult{Client: c, Agent: rec, Path: path}, nil
}

func (p *Publisher) resolveAgent(c client.Client) (string, error) {
	names, err := c.ListAgents()
	if err != nil {
		return "", err
	}
	switch len(names) {
	case 0:
		return "", fmt.Errorf("%w: no agents in %s (%s)", client.ErrAgentNotFound, c.DisplayName(), c.AgentsDir())
	case 1:
		return names[0], nil
	}

	options := make([]Option, len(names))
	for i, n := range names {
		options[i] = Option{Label: n, Value: n}
	}
	chosen, err := p.choose("Which agent do you want to publish?", options)
	if err != nil {
		return "", fmt.Errorf("selecting agent: %w", err)
	}
	return chosen, nil
}
