package ingest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/pageza/recipe-explorer/backend/internal/model"
)

// ErrUnsupportedFormat is returned when the input is neither a JSON array, an
// object of recipe objects, nor NDJSON with more than one record.
var ErrUnsupportedFormat = errors.New("unsupported JSON structure: expected array, object of objects, or NDJSON")

// Parse decodes a whole source file into recipes, preserving source order.
func Parse(data []byte) ([]model.Recipe, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	recipes := make([]model.Recipe, len(records))
	for i, r := range records {
		recipes[i] = r.toRecipe()
	}
	return recipes, nil
}

func decodeRecords(data []byte) ([]rawRecord, error) {
	trimmed := bytes.TrimSpace(data)

	if json.Valid(trimmed) {
		switch trimmed[0] {
		case '[':
			var records []rawRecord
			if err := json.Unmarshal(trimmed, &records); err != nil {
				return nil, fmt.Errorf("failed to decode recipe array: %w", err)
			}
			return records, nil
		case '{':
			records, ok, err := decodeObjectValues(trimmed)
			if err != nil {
				return nil, err
			}
			if ok {
				return records, nil
			}
		}
	}

	return decodeLines(trimmed)
}

// decodeObjectValues reads {"id": {...}, ...} in document order. ok is false
// when the first value is not an object, in which case the input may still be
// a single NDJSON line.
func decodeObjectValues(data []byte) (records []rawRecord, ok bool, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, false, fmt.Errorf("failed to read object: %w", err)
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, false, fmt.Errorf("failed to read object key: %w", err)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false, fmt.Errorf("failed to read object value: %w", err)
		}
		if len(records) == 0 && !isObject(raw) {
			return nil, false, nil
		}

		var r rawRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, false, fmt.Errorf("failed to decode recipe %d: %w", len(records)+1, err)
		}
		records = append(records, r)
	}

	return records, len(records) > 0, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeLines(data []byte) ([]rawRecord, error) {
	var lines [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to split lines: %w", err)
	}
	if len(lines) < 2 {
		return nil, ErrUnsupportedFormat
	}

	records := make([]rawRecord, len(lines))
	for i, line := range lines {
		if err := json.Unmarshal(line, &records[i]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrUnsupportedFormat, i+1, err)
		}
	}
	return records, nil
}
