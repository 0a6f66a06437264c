package agent

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ParseMarkdown parses an agent file made of a header block delimited by
// "---" lines holding flat "key: value" pairs, followed by the prompt body.
// Only name, description, tools, and model are read from the header; the
// body becomes the prompt. The source parameter is used only for errors.
func ParseMarkdown(raw []byte, source string) (*Record, error) {
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	if !strings.HasPrefix(content, delimiter+"\n") {
		return nil, fmt.Errorf("%w: missing header block in %s", ErrMalformedAgent, source)
	}
	rest := content[len(delimiter)+1:]

	var header, body string
	switch {
	case rest == delimiter:
		// Empty header, no body.
	case strings.HasPrefix(rest, delimiter+"\n"):
		body = rest[len(delimiter)+1:]
	default:
		end := strings.Index(rest, "\n"+delimiter+"\n")
		switch {
		case end >= 0:
			header = rest[:end]
			body = rest[end+len(delimiter)+2:]
		case strings.HasSuffix(rest, "\n"+delimiter):
			header = rest[:len(rest)-len(delimiter)-1]
		default:
			return nil, fmt.Errorf("%w: no closing header delimiter in %s", ErrMalformedAgent, source)
		}
	}

	fields := parseHeader(header)
	return &Record{
		Name:        fields["name"],
		Description: fields["description"],
		Prompt:      strings.TrimSpace(body),
		Tools:       SplitTools(fields["tools"]),
		Model:       fields["model"],
	}, nil
}

// parseHeader reads "key: value" lines. Lines without a colon are ignored;
// the value is everything after the first colon.
func parseHeader(header string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(header, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.HasPrefix(key, "#") {
			continue
		}
		fields[key] = decodeValue(strings.TrimSpace(value))
	}
	return fields
}

// decodeValue unquotes YAML single- or double-quoted scalars, which is how
// hand-written agent files commonly carry descriptions containing colons.
// Anything else is returned as-is.
func decodeValue(v string) string {
	if len(v) < 2 {
		return v
	}
	quoted := (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'')
	if !quoted {
		return v
	}
	var s string
	if err := yaml.Unmarshal([]byte(v), &s); err != nil {
		return v
	}
	return s
}

// SplitTools splits a comma-separated tool list into trimmed, non-empty
// tokens, preserving order. An empty list yields nil.
func SplitTools(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tools []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tools = append(tools, t)
		}
	}
	return tools
}

// RenderMarkdown renders r as a Markdown agent file stored under name.
// The header holds name, description, tools, and model (defaulting to
// DefaultModel); absent fields are omitted. The body is the prompt, or
// DefaultPrompt when empty. Extra fields have no place in this format and
// are dropped.
func RenderMarkdown(name string, r *Record) []byte {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	writeField(&buf, "name", name)
	if r.Description != "" {
		writeField(&buf, "description", r.Description)
	}
	if len(r.Tools) > 0 {
		writeField(&buf, "tools", strings.Join(r.Tools, ", "))
	}
	model := r.Model
	if model == "" {
		model = DefaultModel
	}
	writeField(&buf, "model", model)
	buf.WriteString(delimiter + "\n\n")

	prompt := r.Prompt
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}
	buf.WriteString(prompt)
	if !strings.HasSuffix(prompt, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// writeField writes one header line. Values that would not survive a plain
// "key: value" line are written as double-quoted scalars. Invalid UTF-8 is
// replaced first: for valid text the escapes strconv.Quote emits mean the
// same code points under YAML rules, which is how decodeValue reads them.
func writeField(buf *bytes.Buffer, key, value string) {
	if needsQuoting(value) {
		value = strconv.Quote(strings.ToValidUTF8(value, "\uFFFD"))
	}
	fmt.Fprintf(buf, "%s: %s\n", key, value)
}

func needsQuoting(v string) bool {
	if v == "" {
		return false
	}
	if strings.ContainsAny(v, "\n\r") || strings.TrimSpace(v) != v {
		return true
	}
	return v[0] == '"' || v[0] == '\''
}
