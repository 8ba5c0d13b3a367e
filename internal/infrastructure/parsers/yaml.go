package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses datasets from YAML format.
type YAMLParser struct{}

// Parse reads a YAML document with one sequence per collection.
func (p *YAMLParser) Parse(r io.Reader) (*Dataset, error) {
	var ds Dataset

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &ds, nil
}
