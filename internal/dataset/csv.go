package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadCSV parses CSV bytes into a dataset. The reader is deliberately
// lenient: variable field counts, bare quotes, and a semicolon fallback
// for exports that use ';' as the separator.
func ReadCSV(data []byte) (*Dataset, error) {
	headers, records, err := readCSVRecords(data, ',')
	if err != nil || looksSemicolonSeparated(headers) {
		var semiErr error
		headers, records, semiErr = readCSVRecords(data, ';')
		if semiErr != nil {
			if err != nil {
				return nil, fmt.Errorf("failed to read headers: %w", err)
			}
			return nil, fmt.Errorf("failed to read headers: %w", semiErr)
		}
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	return FromRecords(headers, records), nil
}

func readCSVRecords(data []byte, comma rune) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}

	records := [][]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows rather than failing the whole load.
			continue
		}
		records = append(records, record)
	}
	return headers, records, nil
}

// A comma parse of a semicolon-separated file yields one wide header
// field with embedded ';'.
func looksSemicolonSeparated(headers []string) bool {
	return len(headers) == 1 && strings.Contains(headers[0], ";")
}
