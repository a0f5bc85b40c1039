// Package loader retrieves raw catalog records from files and HTTP endpoints.
package loader

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
	"go.yaml.in/yaml/v3"

	"github.com/franz/songbook/internal/catalog"
)

// DecodeRecords parses a JSON array of raw records.
func DecodeRecords(data []byte) ([]catalog.RawRecord, error) {
	var records []catalog.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if records == nil {
		records = []catalog.RawRecord{}
	}
	return records, nil
}

// DecodeYAMLRecords parses a YAML sequence of raw records. Scalar values are
// stringified the same way as in JSON input.
func DecodeYAMLRecords(data []byte) ([]catalog.RawRecord, error) {
	var docs []map[string]interface{}
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	records := make([]catalog.RawRecord, 0, len(docs))
	for i, doc := range docs {
		raw := make(catalog.RawRecord, len(doc))
		for label, value := range doc {
			if value == nil {
				continue
			}
			s, err := cast.ToStringE(value)
			if err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", i, label, err)
			}
			raw[label] = s
		}
		records = append(records, raw)
	}
	return records, nil
}
