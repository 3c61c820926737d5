// Package records loads the flat key/value rows that backtests archive as
// CSV or JSON and gives the rest of the pipeline permissive, typed access to
// their fields. Upstream loggers are sloppy: columns come and go, numbers
// arrive as strings, and some rows are only half written. Loading tolerates
// all of that; interpretation happens downstream.
package records

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Row is one flat record. CSV rows hold string values, JSON rows hold
// whatever the decoder produced; Float and String smooth the difference.
type Row map[string]any

// Load reads rows from <base>.csv, falling back to <base>.json.
func Load(base string) ([]Row, error) {
	csvPath := base + ".csv"
	if _, err := os.Stat(csvPath); err == nil {
		return loadCSV(csvPath)
	}

	jsonPath := base + ".json"
	if _, err := os.Stat(jsonPath); err == nil {
		return loadJSON(jsonPath)
	}

	return nil, fmt.Errorf("no csv/json file found for %s", base)
}

func loadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	header := recs[0]
	rows := make([]Row, 0, len(recs)-1)
	for _, rec := range recs[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func loadJSON(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	switch v := payload.(type) {
	case []any:
		return rowsFromList(path, v)
	case map[string]any:
		// Accept { "rows": [...] } style payloads.
		if list, ok := v["rows"].([]any); ok {
			return rowsFromList(path, list)
		}
		return nil, fmt.Errorf("JSON file %s must contain a list of rows, got an object", path)
	default:
		return nil, fmt.Errorf("unsupported JSON payload type in %s", path)
	}
}

func rowsFromList(path string, list []any) ([]Row, error) {
	rows := make([]Row, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: row %d is not an object", path, i)
		}
		rows = append(rows, Row(obj))
	}
	return rows, nil
}

// String returns the field rendered as a trimmed string, or "" when absent.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Float returns the field as a number when it looks like one. Absent, empty
// and non-numeric values all come back nil rather than as errors.
func (r Row) Float(key string) *float64 {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		f := n
		return &f
	case int:
		f := float64(n)
		return &f
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		text := strings.TrimSpace(n)
		if text == "" {
			return nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// timestamp layouts accepted in archived logs, most specific first
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTime parses an ISO-8601 instant. A trailing "Z" or explicit offset is
// honored; offset-less timestamps are taken as UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", value)
}
