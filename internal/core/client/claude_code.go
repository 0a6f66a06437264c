package client

import "github.com/barysiuk/catalyst/internal/core/agent"

// ClaudeCode implements the Client interface for Claude Code, which keeps
// one Markdown file with a metadata header per agent in
// ~/.claude/agents/<name>.md.
type ClaudeCode struct {
	BaseClient
}

// NewClaudeCode creates a configured Claude Code client.
func NewClaudeCode(opts ...Option) *ClaudeCode {
	return &ClaudeCode{newBase(
		"claude-code",
		"Claude Code",
		"~/.claude",
		".md",
		[]string{"claude", "-v"},
		opts,
	)}
}

// GetAgent reads the named agent. A file without a header block is
// agent.ErrMalformedAgent.
func (c *ClaudeCode) GetAgent(name string) (*agent.Record, error) {
	data, path, err := c.readAgentFile(name)
	if err != nil {
		return nil, err
	}

	rec, err := agent.ParseMarkdown(data, path)
	if err != nil {
		return nil, err
	}
	if rec.Name == "" {
		rec.Name = name
	}
	return rec, nil
}

// InstallAgent renders rec as Markdown under name. Extension fields are
// dropped; the format has nowhere to put them.
func (c *ClaudeCode) InstallAgent(name string, rec *agent.Record) (string, error) {
	return c.writeAgentFile(name, agent.RenderMarkdown(name, rec))
}
