package fs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/quietpress/quill/pkg/core"
)

// Codec defines how to read and write one front-matter dialect.
type Codec interface {
	// Opens reports whether data starts with this dialect's fence.
	Opens(data []byte) bool
	// Parse splits data into front-matter metadata and the markdown body.
	Parse(data []byte) (core.Metadata, string, error)
	// Format renders metadata and body back into a document.
	Format(meta core.Metadata, body string) ([]byte, error)
}

// DefaultCodecs returns the supported dialects in detection order.
func DefaultCodecs() []Codec {
	return []Codec{
		&YAMLCodec{},
		&TOMLCodec{},
	}
}

// splitFences extracts the block between an opening and closing fence.
// The opening fence must be the first line of the document.
func splitFences(data []byte, fence string) (block []byte, body string, err error) {
	rest := data[len(fence):]
	parts := bytes.SplitN(rest, []byte("\n"+fence), 2)
	if len(parts) == 1 {
		return nil, "", core.ErrUnclosedFences
	}

	// Drop the fence line terminator plus the conventional blank line
	// separating front-matter from prose.
	body = strings.TrimLeft(string(parts[1]), "\r\n")
	return parts[0], body, nil
}

func opensWith(data []byte, fence string) bool {
	return bytes.HasPrefix(data, []byte(fence+"\n")) || bytes.HasPrefix(data, []byte(fence+"\r\n"))
}

// --- YAML (---) ---

// YAMLCodec handles the Jekyll-style `---` front-matter fence.
type YAMLCodec struct{}

func (c *YAMLCodec) Opens(data []byte) bool { return opensWith(data, "---") }

func (c *YAMLCodec) Parse(data []byte) (core.Metadata, string, error) {
	block, body, err := splitFences(data, "---")
	if err != nil {
		return nil, "", err
	}

	meta := make(core.Metadata)
	if err := yaml.Unmarshal(block, &meta); err != nil {
		return nil, "", fmt.Errorf("invalid yaml front-matter: %w", err)
	}
	return meta, body, nil
}

func (c *YAMLCodec) Format(meta core.Metadata, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, err
	}
	enc.Close()
	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
	}
	return buf.Bytes(), nil
}

// --- TOML (+++) ---

// TOMLCodec handles the Hugo-style `+++` front-matter fence.
type TOMLCodec struct{}

func (c *TOMLCodec) Opens(data []byte) bool { return opensWith(data, "+++") }

func (c *TOMLCodec) Parse(data []byte) (core.Metadata, string, error) {
	block, body, err := splitFences(data, "+++")
	if err != nil {
		return nil, "", err
	}

	meta := make(core.Metadata)
	if err := toml.Unmarshal(block, &meta); err != nil {
		return nil, "", fmt.Errorf("invalid toml front-matter: %w", err)
	}
	return meta, body, nil
}

func (c *TOMLCodec) Format(meta core.Metadata, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("+++\n")
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(meta); err != nil {
		return nil, err
	}
	buf.WriteString("+++\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
	}
	return buf.Bytes(), nil
}

// parseDocument detects the dialect and parses data into metadata and body.
// A document without any front-matter fence is rejected: article collections
// cannot satisfy the required schema fields without one.
func parseDocument(data []byte, codecs []Codec) (core.Metadata, string, error) {
	for _, c := range codecs {
		if c.Opens(data) {
			return c.Parse(data)
		}
	}
	return nil, "", core.ErrNoFrontMatter
}
