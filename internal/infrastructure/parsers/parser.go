// Package parsers provides parsers for importing narrative datasets from
// various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawEntity is a character, place or object before validation.
type RawEntity struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// RawGeneration is a generation before validation.
type RawGeneration struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// RawEvent is an event before validation. Characters, Place and Generation
// reference records of the same dataset (or already stored) by id or name.
type RawEvent struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Characters  []string `json:"characters,omitempty" yaml:"characters,omitempty"`
	Place       string   `json:"place,omitempty" yaml:"place,omitempty"`
	Generation  string   `json:"generation,omitempty" yaml:"generation,omitempty"`
}

// RawChapter lists the events of a chapter by id or name.
type RawChapter struct {
	Number int      `json:"number" yaml:"number"`
	Events []string `json:"events,omitempty" yaml:"events,omitempty"`
}

// Dataset is a whole narrative dataset as read from a file.
type Dataset struct {
	Characters  []RawEntity     `json:"characters,omitempty" yaml:"characters,omitempty"`
	Places      []RawEntity     `json:"places,omitempty" yaml:"places,omitempty"`
	Objects     []RawEntity     `json:"objects,omitempty" yaml:"objects,omitempty"`
	Generations []RawGeneration `json:"generations,omitempty" yaml:"generations,omitempty"`
	Events      []RawEvent      `json:"events,omitempty" yaml:"events,omitempty"`
	Chapters    []RawChapter    `json:"chapters,omitempty" yaml:"chapters,omitempty"`
}

// Size returns the number of records in the dataset.
func (d *Dataset) Size() int {
	return len(d.Characters) + len(d.Places) + len(d.Objects) +
		len(d.Generations) + len(d.Events) + len(d.Chapters)
}

// Parser defines the interface for parsing datasets from various formats.
type Parser interface {
	Parse(r io.Reader) (*Dataset, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "yaml", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ForFormat(ext)
}
