package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/barysiuk/catalyst/internal/core/agent"
)

// Packager turns agent records into versioned package files.
type Packager struct {
	outputDir string
	version   string
	now       func() time.Time
}

// NewPackager creates a Packager writing to outputDir. Empty arguments fall
// back to DefaultOutputDir and DefaultPackageVersion.
func NewPackager(outputDir, version string) *Packager {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if version == "" {
		version = DefaultPackageVersion
	}
	return &Packager{outputDir: outputDir, version: version, now: time.Now}
}

// OutputDir returns the directory packages are written to.
func (p *Packager) OutputDir() string { return p.outputDir }

// Version returns the version stamped on new packages.
func (p *Packager) Version() string { return p.version }

// PackagePath returns where the package for name is written.
func (p *Packager) PackagePath(name string) string {
	return filepath.Join(p.outputDir, fmt.Sprintf("%s-v%s.json", name, p.version))
}

// CreatePackage writes a manifest wrapping rec and returns its path. An
// existing package with the same name and version is replaced.
func (p *Packager) CreatePackage(rec *agent.Record) (string, error) {
	if err := agent.ValidateName(rec.Name); err != nil {
		return "", err
	}
	if err := validate.Var(p.version, "semver"); err != nil {
		return "", fmt.Errorf("invalid package version %q: must be semantic (e.g. 1.0.0)", p.version)
	}

	m := Manifest{
		Name:        rec.Name,
		Version:     p.version,
		Description: rec.Description,
		Agent:       *rec.Clone(),
		CreatedAt:   NewTimestamp(p.now()),
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling package: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := p.PackagePath(rec.Name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing package: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("saving package: %w", err)
	}
	return path, nil
}
