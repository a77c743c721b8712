package ringstore

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/buoy-capture/internal/reading"
)

// timeFormat is the pandas rendering of a zone-aware timestamp.
const timeFormat = "2006-01-02 15:04:05.999999999-07:00"

// Zone-aware layouts. Fractional seconds are accepted by time.Parse even
// when the layout does not name them.
var zonedLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
}

// Layouts without an offset; read as wall-clock time in the store location.
var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp format: %q", s)
}

func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(timeFormat)
}

// parseCell reads a data cell: empty is absent, then number, then timestamp.
func parseCell(s string, loc *time.Location) (reading.Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return reading.Value{}, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return reading.NumberValue(v), nil
	}
	if t, err := parseTime(s, loc); err == nil {
		return reading.TimeValue(t), nil
	}
	return reading.Value{}, fmt.Errorf("invalid cell value: %q", s)
}

func formatCell(v reading.Value, loc *time.Location) string {
	switch v.Kind() {
	case reading.Number:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reading.Timestamp:
		t, _ := v.Time()
		return formatTime(t, loc)
	default:
		return ""
	}
}

// decodeResult is what decodeCSV recovered from a file.
type decodeResult struct {
	columns []string
	records []reading.Record
	errors  []string
}

// decodeCSV reads a store file. The first column is the index whatever its
// header says. Rows with an unreadable index are skipped and reported; bad
// cells become absent values and are reported.
func decodeCSV(r io.Reader, loc *time.Location) (*decodeResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	result := &decodeResult{}

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(headers) > 0 {
		result.columns = append(result.columns, headers[1:]...)
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.errors = append(result.errors, fmt.Sprintf("csv read error at line %d: %v", line, err))
			continue
		}
		if len(row) == 0 {
			continue
		}

		ts, err := parseTime(row[0], loc)
		if err != nil {
			result.errors = append(result.errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		rec := reading.Record{Time: ts, Values: make(map[string]reading.Value, len(result.columns))}
		for i, col := range result.columns {
			if i+1 >= len(row) {
				break
			}
			v, err := parseCell(row[i+1], loc)
			if err != nil {
				result.errors = append(result.errors, fmt.Sprintf("line %d column %q: %v", line, col, err))
			}
			if !v.IsAbsent() {
				rec.Values[col] = v
			}
		}
		result.records = append(result.records, rec)
	}

	return result, nil
}

// encodeCSV renders records under the index column plus columns.
func encodeCSV(columns []string, records []reading.Record, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(columns)+1)
	header = append(header, reading.IndexColumn)
	header = append(header, columns...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(header))
	for _, rec := range records {
		row[0] = formatTime(rec.Time, loc)
		for i, col := range columns {
			row[i+1] = formatCell(rec.Values[col], loc)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
