package apispec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for documents whose extension is neither
// JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported spec document format")

// Format identifies the encoding of a specification document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat infers the document format from a file name.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads and parses the specification document at path. Every call reads
// the file again; nothing is cached.
func Load(path string) (*Document, error) {
	data, err := ReadJSON(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing spec document %s: %w", path, err)
	}

	slog.Debug("loaded spec document",
		slog.String("path", path),
		slog.Int("rest", mapLen(doc.GitHub.REST)),
		slog.Int("graphql", mapLen(doc.GitHub.GraphQL)),
		slog.Int("commands", mapLen(doc.GHCLI.Commands)),
	)
	return &doc, nil
}

// Parse decodes a specification document from raw bytes.
func Parse(data []byte, format Format) (*Document, error) {
	data, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing spec document: %w", err)
	}
	return &doc, nil
}

// ReadJSON reads the document at path and returns it as JSON text, converting
// YAML documents while keeping mapping order.
func ReadJSON(path string) ([]byte, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec document: %w", err)
	}
	data, err = toJSON(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		return yamlToJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	var buf bytes.Buffer
	if err := writeYAMLNode(&buf, &root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeYAMLNode emits n as JSON. Mapping keys keep their source order, which a
// round trip through map[string]any would lose.
func writeYAMLNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case 0:
		buf.WriteString("null")
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeYAMLNode(buf, n.Content[0])
	case yaml.AliasNode:
		return writeYAMLNode(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeYAMLNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeYAMLNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float":
			// Keep the literal so 1.0 stays a float, as in a JSON document.
			if isJSONNumber(n.Value) {
				buf.WriteString(n.Value)
				return nil
			}
		case "!!timestamp":
			b, err := json.Marshal(n.Value)
			if err != nil {
				return err
			}
			buf.Write(b)
			return nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(b)
	default:
		return fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
	return nil
}

// isJSONNumber reports whether s is a number literal in JSON syntax. YAML
// forms such as 0x1F, 1_000 or .inf are not.
func isJSONNumber(s string) bool {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return false
	}
	_, ok := v.(json.Number)
	return ok
}

func mapLen[V any](m *orderedmap.OrderedMap[string, V]) int {
	if m == nil {
		return 0
	}
	return m.Len()
}
