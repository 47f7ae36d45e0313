package encoding

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/playdash/internal/common"
)

// DocumentVersion is the current persisted table format.
const DocumentVersion = 1

// Output formats accepted by Write.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Document is the persisted form of a Table.
type Document struct {
	Fields  map[string]map[string]int `yaml:"fields" json:"fields"`
	Version int                       `yaml:"version" json:"version"`
}

// Export converts the table to its persisted form.
func (t *Table) Export() Document {
	doc := Document{
		Version: DocumentVersion,
		Fields:  make(map[string]map[string]int, len(t.codes)),
	}
	for _, f := range t.Fields() {
		mapping := make(map[string]int, len(t.codes[f]))
		for v, c := range t.codes[f] {
			mapping[v] = c
		}
		doc.Fields[string(f)] = mapping
	}
	return doc
}

// Write serializes the table as YAML or JSON.
func (t *Table) Write(w io.Writer, format string) error {
	doc := t.Export()

	switch strings.ToLower(format) {
	case FormatYAML, "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode table: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode table: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", common.ErrInvalidInput, format)
	}
}

// Parse reads a persisted table. JSON is accepted as well since it is valid YAML.
func Parse(data []byte, source string) (*Table, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse encoding table: %v", common.ErrInvalidConfig, err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: unsupported encoding table version %d", common.ErrInvalidConfig, doc.Version)
	}
	return FromMap(source, doc.Fields)
}

// Load reads a persisted table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoding table: %w", err)
	}

	t, err := Parse(data, SourceFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Save writes the table to path, choosing the format from the extension.
func (t *Table) Save(path string) error {
	format := FormatYAML
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		format = FormatJSON
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := t.Write(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
