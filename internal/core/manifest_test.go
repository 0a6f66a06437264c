package core

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writePackage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pkg.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadManifest_Valid(t *testing.T) {
	path := writePackage(t, `{
  "name": "bot",
  "version": "1.2.3",
  "description": "Helps",
  "agent": {"name": "bot", "prompt": "Hi", "tools": ["read"], "x": true},
  "createdAt": "2024-05-06T07:08:09.010Z"
}`)

	m, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}
	if m.Name != "bot" || m.Version != "1.2.3" || m.Description != "Helps" {
		t.Errorf("unexpected metadata: %+v", m)
	}
	if m.Agent.Prompt != "Hi" || len(m.Agent.Tools) != 1 || m.Agent.Extra["x"] != true {
		t.Errorf("unexpected agent: %+v", m.Agent)
	}
	want := time.Date(2024, 5, 6, 7, 8, 9, 10_000_000, time.UTC)
	if !m.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", m.CreatedAt, want)
	}
}

func TestReadManifest_NotFound(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("ReadManifest() error = %v, want ErrPackageNotFound", err)
	}
}

func TestReadManifest_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"not json", `{"name": `, ""},
		{"missing name", `{"version":"1.0.0","agent":{"name":"a"},"createdAt":"2024-01-01T00:00:00.000Z"}`, "name"},
		{"missing version", `{"name":"a","agent":{"name":"a"},"createdAt":"2024-01-01T00:00:00.000Z"}`, "version"},
		{"bad version", `{"name":"a","version":"v1","agent":{"name":"a"},"createdAt":"2024-01-01T00:00:00.000Z"}`, "version"},
		{"missing agent name", `{"name":"a","version":"1.0.0","agent":{"prompt":"x"},"createdAt":"2024-01-01T00:00:00.000Z"}`, "agent.name"},
		{"bad timestamp", `{"name":"a","version":"1.0.0","agent":{"name":"a"},"createdAt":"yesterday"}`, "createdAt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadManifest(writePackage(t, tt.content))
			if !errors.Is(err, ErrMalformedPackage) {
				t.Fatalf("ReadManifest() error = %v, want ErrMalformedPackage", err)
			}
			if tt.field != "" && !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %q", err, tt.field)
			}
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), `"2024-01-02T03:04:05.000Z"`},
		{time.Date(2024, 1, 2, 3, 4, 5, 678_901_234, time.UTC), `"2024-01-02T03:04:05.678Z"`},
		{time.Date(2024, 1, 2, 5, 4, 5, 0, time.FixedZone("X", 2*3600)), `"2024-01-02T03:04:05.000Z"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(NewTimestamp(tt.in))
		if err != nil {
			t.Fatalf("Marshal() error: %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestManifestSchema(t *testing.T) {
	data, err := json.Marshal(ManifestSchema())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var doc struct {
		Title      string                    `json:"title"`
		Required   []string                  `json:"required"`
		Properties map[string]map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if doc.Title != "catalyst package" {
		t.Errorf("title = %q", doc.Title)
	}
	for _, key := range []string{"name", "version", "agent", "createdAt"} {
		if _, ok := doc.Properties[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}
	if doc.Properties["createdAt"]["format"] != "date-time" {
		t.Errorf("createdAt schema = %v, want date-time string", doc.Properties["createdAt"])
	}
	if !contains(doc.Required, "version") {
		t.Errorf("required = %v, want version included", doc.Required)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
