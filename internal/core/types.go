// Package core provides the business logic for catalyst: configuration,
// packaging, and the install and publish flows. It has zero UI dependencies
// and is independently testable.
package core

import (
	"time"

	"github.com/barysiuk/catalyst/internal/core/agent"
	"github.com/barysiuk/catalyst/internal/core/client"
)

// Config represents the catalyst configuration stored at
// ~/.catalyst/config.yaml.
type Config struct {
	OutputDir      string          `yaml:"output_dir"`
	PackageVersion string          `yaml:"package_version" validate:"omitempty,semver"`
	DefaultClient  string          `yaml:"default_client,omitempty"`
	Detection      DetectionConfig `yaml:"detection"`
	Logging        LoggingConfig   `yaml:"logging"`
}

// DetectionConfig controls how installed clients are discovered.
type DetectionConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	Commands bool          `yaml:"commands"` // false = config directories only
}

// LoggingConfig selects the diagnostic log level and format.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Manifest is a distributable package: one agent plus package metadata.
type Manifest struct {
	Name        string       `json:"name" validate:"required" jsonschema:"required"`
	Version     string       `json:"version" validate:"required,semver" jsonschema:"required"`
	Description string       `json:"description,omitempty"`
	Agent       agent.Record `json:"agent" jsonschema:"required"`
	CreatedAt   Timestamp    `json:"createdAt" jsonschema:"required"`
}

// InstallOptions configures an installation.
type InstallOptions struct {
	Name   string // install under this name instead of the packaged one
	Client string // explicit client machine name; empty = detect
}

// InstallResult is the outcome of an installation.
type InstallResult struct {
	Manifest  *Manifest
	Client    client.Client
	AgentName string
	Path      string // file written by the client
}

// PublishOptions configures a publish.
type PublishOptions struct {
	Client string // explicit client machine name; empty = detect
}

// PublishResult is the outcome of a publish.
type PublishResult struct {
	Client client.Client
	Agent  *agent.Record
	Path   string // package file written
}

// Option is one choice offered by a Selector.
type Option struct {
	Label string // shown to the user
	Value string // returned when chosen
	Hint  string // secondary text, may be empty
}

// Selector asks the user to pick one of several options and returns the
// chosen Option.Value.
type Selector interface {
	Select(title string, options []Option) (string, error)
}
