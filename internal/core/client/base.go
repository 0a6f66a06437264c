package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/barysiuk/catalyst/internal/core/agent"
)

// BaseClient provides the behavior shared by all clients: identity, detection,
// and agent file lookup. Individual clients embed it and add the format
// specific GetAgent and InstallAgent.
type BaseClient struct {
	name        string
	displayName string
	configDir   string   // tool's dot-directory (with ~)
	agentsDir   string   // agents directory (with ~)
	ext         string   // agent file extension, including the dot
	versionCmd  []string // command whose success means the tool is installed

	probeCommand bool
	runCommand   func(ctx context.Context, argv []string) error
}

// Option configures a client.
type Option func(*BaseClient)

// WithoutCommandProbe makes detection rely on the configuration directory
// only, skipping the version command.
func WithoutCommandProbe() Option {
	return func(b *BaseClient) { b.probeCommand = false }
}

func newBase(name, displayName, configDir, ext string, versionCmd []string, opts []Option) BaseClient {
	b := BaseClient{
		name:         name,
		displayName:  displayName,
		configDir:    configDir,
		agentsDir:    configDir + "/agents",
		ext:          ext,
		versionCmd:   versionCmd,
		probeCommand: true,
		runCommand:   runCommand,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *BaseClient) Name() string        { return b.name }
func (b *BaseClient) DisplayName() string { return b.displayName }

// AgentsDir returns the resolved agents directory.
func (b *BaseClient) AgentsDir() string { return expandPath(b.agentsDir) }

// ConfigDir returns the resolved configuration directory.
func (b *BaseClient) ConfigDir() string { return expandPath(b.configDir) }

// IsInstalled runs the version command and, if that fails, checks for the
// tool's configuration directory.
func (b *BaseClient) IsInstalled(ctx context.Context) bool {
	if b.probeCommand && len(b.versionCmd) > 0 {
		if err := b.runCommand(ctx, b.versionCmd); err == nil {
			return true
		}
	}
	return dirExists(b.ConfigDir())
}

// ListAgents returns the names of agent files in the agents directory,
// sorted. A missing directory yields an empty list.
func (b *BaseClient) ListAgents() ([]string, error) {
	entries, err := os.ReadDir(b.AgentsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading agents directory for %s: %w", b.displayName, err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), b.ext) {
			continue
		}
		if stem := strings.TrimSuffix(e.Name(), b.ext); stem != "" {
			names = append(names, stem)
		}
	}
	return names, nil
}

// agentPath returns the file path for the named agent after validating it.
func (b *BaseClient) agentPath(name string) (string, error) {
	if err := agent.ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(b.AgentsDir(), name+b.ext), nil
}

// readAgentFile reads the named agent's file. A missing file is
// ErrAgentNotFound.
func (b *BaseClient) readAgentFile(name string) ([]byte, string, error) {
	path, err := b.agentPath(name)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, path, fmt.Errorf("%w: %s in %s", ErrAgentNotFound, name, b.displayName)
		}
		return nil, path, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, path, nil
}

// writeAgentFile replaces the named agent's file with data.
func (b *BaseClient) writeAgentFile(name string, data []byte) (string, error) {
	path, err := b.agentPath(name)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("installing %s for %s: %w", name, b.displayName, err)
	}
	return path, nil
}

// --- Shared Helpers ---

// runCommand runs argv with output discarded. Cancellation of ctx kills the
// process.
func runCommand(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.WaitDelay = time.Second
	return cmd.Run()
}

// expandPath expands a leading ~ to the home directory.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	return p
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// writeFileAtomic writes content via a temp file and rename, creating parent
// directories.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
