package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// JSONReporter writes the wire record as indented JSON.
type JSONReporter struct {
	writer io.Writer
}

func NewJSONReporter(writer io.Writer) *JSONReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONReporter{writer: writer}
}

func (j *JSONReporter) Handle(out Output) error {
	if out.Record == nil {
		return fmt.Errorf("nothing to report")
	}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out.Record); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// YAMLReporter writes the wire record as YAML.
type YAMLReporter struct {
	writer io.Writer
}

func NewYAMLReporter(writer io.Writer) *YAMLReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &YAMLReporter{writer: writer}
}

func (y *YAMLReporter) Handle(out Output) error {
	if out.Record == nil {
		return fmt.Errorf("nothing to report")
	}
	enc := yaml.NewEncoder(y.writer)
	enc.SetIndent(2)
	if err := enc.Encode(out.Record); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
