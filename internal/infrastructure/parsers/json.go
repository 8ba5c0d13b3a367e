package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses datasets from JSON format.
type JSONParser struct{}

// Parse reads a JSON object with one array per collection.
func (p *JSONParser) Parse(r io.Reader) (*Dataset, error) {
	var ds Dataset

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&ds); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return &ds, nil
}
