package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// Output formats accepted by Write.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatTable, FormatYAML, FormatJSON}

// Write renders doc to w in the given format. color only affects tables.
func Write(w io.Writer, format string, doc *Document, color bool) error {
	switch format {
	case FormatTable, "":
		return RenderTable(w, doc, color)
	case FormatYAML:
		return WriteYAML(w, doc)
	case FormatJSON:
		return WriteJSON(w, doc)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteYAML encodes doc as YAML.
func WriteYAML(w io.Writer, doc *Document) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
