// Package agent defines the host-agnostic agent record and the codecs that
// translate it to and from the on-disk formats used by host tools.
//
// A Record is what flows between clients: it is read from one host tool's
// agents directory, optionally wrapped in a package manifest, and written to
// another host tool's agents directory.
package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMalformedAgent is returned when an agent file cannot be parsed.
	ErrMalformedAgent = errors.New("malformed agent")

	// ErrInvalidName is returned for names that cannot be used as file names.
	ErrInvalidName = errors.New("invalid agent name")
)

// Defaults applied when rendering to formats that require a value.
const (
	DefaultModel  = "sonnet"
	DefaultPrompt = "You are a helpful AI assistant."
)

// knownFields are the top-level JSON keys mapped onto Record fields.
// Everything else is carried in Record.Extra.
var knownFields = []string{"name", "description", "prompt", "tools", "model"}

// Record is one agent's identity, prompt, tool list, and model choice.
type Record struct {
	Name        string   `json:"name" validate:"required" jsonschema:"required"`
	Description string   `json:"description,omitempty"`
	Prompt      string   `json:"prompt,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	Model       string   `json:"model,omitempty"`

	// Extra holds client-specific top-level fields (e.g. Kiro's mcpServers)
	// so they survive a JSON round trip.
	Extra map[string]any `json:"-"`
}

// MarshalJSON writes the known fields followed by Extra keys in sorted order.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	base, err := json.Marshal(plain(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		if isKnownField(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1]) // drop closing brace
	for _, k := range keys {
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.Extra[k])
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}
		buf.WriteByte(',')
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON fills the known fields from their exact-case keys and
// collects every other top-level key into Extra. Extra numbers are kept as
// json.Number so they are written back digit for digit.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	known := make(map[string]json.RawMessage, len(knownFields))
	for _, k := range knownFields {
		if v, ok := fields[k]; ok {
			known[k] = v
			delete(fields, k)
		}
	}
	knownData, err := json.Marshal(known)
	if err != nil {
		return err
	}
	type plain Record
	var p plain
	if err := json.Unmarshal(knownData, &p); err != nil {
		return err
	}

	*r = Record(p)
	r.Extra = nil
	if len(fields) == 0 {
		return nil
	}
	r.Extra = make(map[string]any, len(fields))
	for k, raw := range fields {
		v, err := decodeExtra(raw)
		if err != nil {
			return fmt.Errorf("decoding field %q: %w", k, err)
		}
		r.Extra[k] = v
	}
	return nil
}

func decodeExtra(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Clone returns a copy that shares no slices or maps with r.
func (r *Record) Clone() *Record {
	c := *r
	if r.Tools != nil {
		c.Tools = append([]string(nil), r.Tools...)
	}
	if r.Extra != nil {
		c.Extra = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// ValidateName rejects names that are empty or would escape the directory
// they are joined onto.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

func isKnownField(k string) bool {
	for _, f := range knownFields {
		if f == k {
			return true
		}
	}
	return false
}
