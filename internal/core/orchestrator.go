package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/barysiuk/catalyst/internal/core/client"
)

// ErrNoSelection is returned when a choice between several options is needed
// but no Selector is configured.
var ErrNoSelection = errors.New("selection required")

// resolver picks the client (and, for publish, the agent) an operation works
// on. It is shared by Installer and Publisher.
type resolver struct {
	detector *client.Detector
	selector Selector
	logger   *slog.Logger
}

func newResolver(detector *client.Detector, selector Selector, logger *slog.Logger) resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return resolver{detector: detector, selector: selector, logger: logger}
}

// resolveClient returns the named client, or the only installed one, or asks
// the selector to choose between installed clients.
func (r *resolver) resolveClient(ctx context.Context, name, title string) (client.Client, error) {
	if name != "" {
		return r.detector.ByName(ctx, name)
	}

	available := r.detector.Available(ctx)
	switch len(available) {
	case 0:
		return nil, fmt.Errorf("%w; install one of: %s",
			client.ErrNoCompatibleClient, strings.Join(client.DisplayNames(r.detector.All()), ", "))
	case 1:
		r.logger.Debug("using only installed client", "client", available[0].Name())
		return available[0], nil
	}

	options := make([]Option, len(available))
	for i, c := range available {
		options[i] = Option{Label: c.DisplayName(), Value: c.Name(), Hint: c.AgentsDir()}
	}
	chosen, err := r.choose(title, options)
	if err != nil {
		return nil, fmt.Errorf("selecting client: %w", err)
	}
	for _, c := range available {
		if c.Name() == chosen {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", client.ErrClientNotFound, chosen)
}

// choose runs the selector and checks the answer is one of the options.
func (r *resolver) choose(title string, options []Option) (string, error) {
	if r.selector == nil {
		return "", fmt.Errorf("%w: %d candidates", ErrNoSelection, len(options))
	}
	chosen, err := r.selector.Select(title, options)
	if err != nil {
		return "", err
	}
	for _, o := range options {
		if o.Value == chosen {
			return chosen, nil
		}
	}
	return "", fmt.Errorf("selector returned unknown option %q", chosen)
}
