package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/barysiuk/catalyst/internal/core/agent"
	"github.com/barysiuk/catalyst/internal/core/client"
	"github.com/barysiuk/catalyst/internal/logging"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// memClient is an in-memory client.Client.
type memClient struct {
	name      string
	installed bool
	agents    map[string]*agent.Record
}

func newMemClient(name string, installed bool, agents ...*agent.Record) *memClient {
	c := &memClient{name: name, installed: installed, agents: map[string]*agent.Record{}}
	for _, a := range agents {
		c.agents[a.Name] = a
	}
	return c
}

func (c *memClient) Name() string                     { return c.name }
func (c *memClient) DisplayName() string              { return strings.ToUpper(c.name) }
func (c *memClient) IsInstalled(context.Context) bool { return c.installed }
func (c *memClient) AgentsDir() string                { return "/mem/" + c.name }
func (c *memClient) GetAgent(name string) (*agent.Record, error) {
	if a, ok := c.agents[name]; ok {
		return a.Clone(), nil
	}
	return nil, client.ErrAgentNotFound
}
func (c *memClient) InstallAgent(name string, rec *agent.Record) (string, error) {
	cp := rec.Clone()
	cp.Name = name
	c.agents[name] = cp
	return c.AgentsDir() + "/" + name, nil
}
func (c *memClient) ListAgents() ([]string, error) {
	names := []string{}
	for n := range c.agents {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// fakeSelector records prompts and answers with a fixed value.
type fakeSelector struct {
	answer  string
	err     error
	titles  []string
	offered [][]Option
}

func (s *fakeSelector) Select(title string, options []Option) (string, error) {
	s.titles = append(s.titles, title)
	s.offered = append(s.offered, options)
	return s.answer, s.err
}

func detectorFor(clients ...client.Client) *client.Detector {
	return client.NewDetector(time.Second, logging.NewForTest(), clients...)
}

func writeManifest(t *testing.T, m Manifest) string {
	t.Helper()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), m.Name+"-v"+m.Version+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func botManifest(t *testing.T) string {
	return writeManifest(t, Manifest{
		Name:      "bot",
		Version:   "1.0.0",
		Agent:     agent.Record{Name: "bot", Prompt: "Hi"},
		CreatedAt: NewTimestamp(time.Now()),
	})
}

// ---------------------------------------------------------------------------
// Client resolution
// ---------------------------------------------------------------------------

func TestResolveClient(t *testing.T) {
	kiro := newMemClient("kiro", true)
	claude := newMemClient("claude-code", true)
	missing := newMemClient("claude-code", false)

	tests := []struct {
		name       string
		clients    []client.Client
		explicit   string
		selector   *fakeSelector
		want       string
		wantErr    error
		wantPrompt bool
	}{
		{"only one installed", []client.Client{kiro, missing}, "", &fakeSelector{}, "kiro", nil, false},
		{"none installed", []client.Client{newMemClient("kiro", false), missing}, "", &fakeSelector{}, "", client.ErrNoCompatibleClient, false},
		{"explicit", []client.Client{kiro, claude}, "claude-code", &fakeSelector{}, "claude-code", nil, false},
		{"explicit unknown", []client.Client{kiro}, "cursor", &fakeSelector{}, "", client.ErrClientNotFound, false},
		{"explicit not installed", []client.Client{kiro, missing}, "claude-code", &fakeSelector{}, "", client.ErrClientNotInstalled, false},
		{"several prompts", []client.Client{kiro, claude}, "", &fakeSelector{answer: "claude-code"}, "claude-code", nil, true},
		{"selector unknown answer", []client.Client{kiro, claude}, "", &fakeSelector{answer: "cursor"}, "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(detectorFor(tt.clients...), tt.selector, nil)
			got, err := r.resolveClient(context.Background(), tt.explicit, "pick")

			if tt.want == "" {
				if err == nil {
					t.Fatalf("resolveClient() = %s, want error", got.Name())
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("resolveClient() error = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("resolveClient() error: %v", err)
				}
				if got.Name() != tt.want {
					t.Errorf("resolveClient() = %s, want %s", got.Name(), tt.want)
				}
			}
			if prompted := len(tt.selector.titles) > 0; prompted != tt.wantPrompt {
				t.Errorf("prompted = %v, want %v", prompted, tt.wantPrompt)
			}
		})
	}
}

func TestResolveClient_OffersInstalledInOrder(t *testing.T) {
	sel := &fakeSelector{answer: "kiro"}
	r := newResolver(detectorFor(
		newMemClient("kiro", true),
		newMemClient("other", false),
		newMemClient("claude-code", true),
	), sel, nil)

	if _, err := r.resolveClient(context.Background(), "", "pick"); err != nil {
		t.Fatalf("resolveClient() error: %v", err)
	}
	var values []string
	for _, o := range sel.offered[0] {
		values = append(values, o.Value)
	}
	if !reflect.DeepEqual(values, []string{"kiro", "claude-code"}) {
		t.Errorf("offered %v, want [kiro claude-code]", values)
	}
	if sel.offered[0][0].Label != "KIRO" {
		t.Errorf("label = %q, want display name", sel.offered[0][0].Label)
	}
}

func TestResolveClient_NoSelector(t *testing.T) {
	r := newResolver(detectorFor(newMemClient("a", true), newMemClient("b", true)), nil, nil)
	_, err := r.resolveClient(context.Background(), "", "pick")
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("resolveClient() error = %v, want ErrNoSelection", err)
	}
}

func TestResolveClient_SelectorError(t *testing.T) {
	cancelled := errors.New("cancelled")
	r := newResolver(detectorFor(newMemClient("a", true), newMemClient("b", true)), &fakeSelector{err: cancelled}, nil)
	_, err := r.resolveClient(context.Background(), "", "pick")
	if !errors.Is(err, cancelled) {
		t.Errorf("resolveClient() error = %v, want selector error", err)
	}
}

// ---------------------------------------------------------------------------
// Install
// ---------------------------------------------------------------------------

func TestInstaller_Install(t *testing.T) {
	kiro := newMemClient("kiro", true)
	inst := NewInstaller(detectorFor(kiro, newMemClient("claude-code", false)), &fakeSelector{}, logging.NewForTest())

	res, err := inst.Install(context.Background(), botManifest(t), InstallOptions{})
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if res.AgentName != "bot" || res.Client.Name() != "kiro" || res.Path != "/mem/kiro/bot" {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Manifest.Version != "1.0.0" {
		t.Errorf("Manifest.Version = %q", res.Manifest.Version)
	}
	if got := kiro.agents["bot"]; got == nil || got.Prompt != "Hi" {
		t.Errorf("installed agent = %+v", got)
	}
}

func TestInstaller_Rename(t *testing.T) {
	kiro := newMemClient("kiro", true)
	inst := NewInstaller(detectorFor(kiro), nil, nil)

	res, err := inst.Install(context.Background(), botManifest(t), InstallOptions{Name: "buddy"})
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if res.AgentName != "buddy" {
		t.Errorf("AgentName = %q, want buddy", res.AgentName)
	}
	if got := kiro.agents["buddy"]; got == nil || got.Name != "buddy" {
		t.Errorf("renamed agent not stored: %+v", kiro.agents)
	}
	if _, ok := kiro.agents["bot"]; ok {
		t.Error("original name should not be installed")
	}
	if res.Manifest.Agent.Name != "bot" {
		t.Error("manifest record should not be mutated by rename")
	}
}

func TestInstaller_Errors(t *testing.T) {
	none := detectorFor(newMemClient("kiro", false))
	one := detectorFor(newMemClient("kiro", true))
	dir := t.TempDir()

	tests := []struct {
		name     string
		detector *client.Detector
		path     string
		opts     InstallOptions
		want     error
	}{
		{"missing package", one, filepath.Join(dir, "nope.json"), InstallOptions{}, ErrPackageNotFound},
		{"no client", none, botManifest(t), InstallOptions{}, client.ErrNoCompatibleClient},
		{"bad rename", one, botManifest(t), InstallOptions{Name: "a/b"}, agent.ErrInvalidName},
		{"unknown client", one, botManifest(t), InstallOptions{Client: "cursor"}, client.ErrClientNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInstaller(tt.detector, nil, nil).Install(context.Background(), tt.path, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Install() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// The full path through the real Kiro client: a package lands as
// ~/.kiro/agents/bot.json.
func TestInstaller_KiroOnDisk(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.MkdirAll(filepath.Join(home, ".kiro"), 0o755); err != nil {
		t.Fatal(err)
	}

	det := detectorFor(client.Defaults(client.WithoutCommandProbe())...)
	res, err := NewInstaller(det, nil, nil).Install(context.Background(), botManifest(t), InstallOptions{})
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	want := filepath.Join(home, ".kiro", "agents", "bot.json")
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("agent file not written: %v", err)
	}
	if string(data) != "{\n  \"name\": \"bot\",\n  \"prompt\": \"Hi\"\n}\n" {
		t.Errorf("agent file = %q", data)
	}
}

// ---------------------------------------------------------------------------
// Publish
// ---------------------------------------------------------------------------

func TestPublisher_Publish(t *testing.T) {
	claude := newMemClient("claude-code", true, &agent.Record{Name: "helper", Description: "Helps", Prompt: "Be kind"})
	out := t.TempDir()
	pub := NewPublisher(detectorFor(newMemClient("kiro", false), claude), fixedPackager(out, "1.0.0"), nil, nil)

	res, err := pub.Publish(context.Background(), "", PublishOptions{})
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if want := filepath.Join(out, "helper-v1.0.0.json"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if res.Client.Name() != "claude-code" || res.Agent.Name != "helper" {
		t.Errorf("unexpected result: %+v", res)
	}

	m, err := ReadManifest(res.Path)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}
	if m.Description != "Helps" || m.Agent.Prompt != "Be kind" {
		t.Errorf("unexpected manifest: %+v", m)
	}
}

func TestPublisher_SelectsAgent(t *testing.T) {
	kiro := newMemClient("kiro", true,
		&agent.Record{Name: "alpha"},
		&agent.Record{Name: "beta"},
	)
	sel := &fakeSelector{answer: "beta"}
	pub := NewPublisher(detectorFor(kiro), fixedPackager(t.TempDir(), "2.0.0"), sel, nil)

	res, err := pub.Publish(context.Background(), "", PublishOptions{})
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if res.Agent.Name != "beta" {
		t.Errorf("published %q, want beta", res.Agent.Name)
	}
	if filepath.Base(res.Path) != "beta-v2.0.0.json" {
		t.Errorf("Path = %q", res.Path)
	}
	if len(sel.titles) != 1 {
		t.Fatalf("expected exactly one prompt (agent), got %v", sel.titles)
	}
	if got := []string{sel.offered[0][0].Value, sel.offered[0][1].Value}; !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("offered %v", got)
	}
}

func TestPublisher_Errors(t *testing.T) {
	empty := newMemClient("kiro", true)
	full := newMemClient("kiro", true, &agent.Record{Name: "a"}, &agent.Record{Name: "b"})

	tests := []struct {
		name      string
		c         *memClient
		agentName string
		want      error
	}{
		{"explicit missing", full, "zzz", client.ErrAgentNotFound},
		{"no agents", empty, "", client.ErrAgentNotFound},
		{"several without selector", full, "", ErrNoSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			pub := NewPublisher(detectorFor(tt.c), fixedPackager(out, "1.0.0"), nil, nil)
			_, err := pub.Publish(context.Background(), tt.agentName, PublishOptions{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Publish() error = %v, want %v", err, tt.want)
			}
			if entries, _ := os.ReadDir(out); len(entries) != 0 {
				t.Errorf("failed publish should write nothing, found %d files", len(entries))
			}
		})
	}
}
