package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser parses catalog entities from CSV format. Events and chapters
// need nested references and are only supported in JSON and YAML.
type CSVParser struct{}

// Parse reads CSV from the reader and returns a dataset holding entities.
// Expected columns: kind, name, and optionally id, description.
// kind is one of character, place, object.
func (p *CSVParser) Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(strings.ToLower(col))] = i
	}

	requiredCols := []string{"kind", "name"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows and sorts them into the dataset.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) (*Dataset, error) {
	ds := &Dataset{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		entity := RawEntity{
			ID:          getColumn(record, colIndex, "id"),
			Name:        getColumn(record, colIndex, "name"),
			Description: getColumn(record, colIndex, "description"),
		}

		kind := strings.ToLower(getColumn(record, colIndex, "kind"))
		switch kind {
		case "character":
			ds.Characters = append(ds.Characters, entity)
		case "place":
			ds.Places = append(ds.Places, entity)
		case "object":
			ds.Objects = append(ds.Objects, entity)
		default:
			return nil, fmt.Errorf("line %d: invalid kind %q", lineNum, kind)
		}
	}

	return ds, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
