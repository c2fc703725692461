package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/selimdilsadercan/foritu-data/pkg/psv"
)

// ExamRow is one exam record keyed by the file's header row. It marshals as
// a JSON object whose keys appear in header order, not sorted, because the
// export's column order is meaningful to consumers.
type ExamRow struct {
	headers []string
	values  []string
}

// Get returns the value under a header.
func (r ExamRow) Get(header string) (string, bool) {
	for i, h := range r.headers {
		if h == header {
			return r.values[i], true
		}
	}
	return "", false
}

// MarshalJSON writes the row as an object with keys in header order.
func (r ExamRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, header := range r.headers {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(header)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExamTable is a parsed exam export: the header row plus every data row.
type ExamTable struct {
	Headers []string
	Rows    []ExamRow
}

// ExamConverter converts final-exam PSV records.
type ExamConverter struct {
	observe Observer
}

// NewExamConverter creates an exam converter.
func NewExamConverter(observe Observer) *ExamConverter {
	return &ExamConverter{observe: observe}
}

// Convert converts PSV records into an exam table. The first record is the
// header row; data rows with a different arity are padded with empty
// strings or truncated, with a diagnostic either way.
func (c *ExamConverter) Convert(records []psv.Record) (*ExamTable, *ConvertReport, error) {
	report := NewConvertReport()
	if len(records) == 0 {
		return nil, report, fmt.Errorf("exam file has no header row")
	}

	headers := records[0].Fields()
	table := &ExamTable{Headers: headers, Rows: make([]ExamRow, 0, len(records)-1)}

	for _, record := range records[1:] {
		values := record.Fields()
		if len(values) != len(headers) {
			c.observe.notify(record.Line, fmt.Sprintf("expected %d values, got %d", len(headers), len(values)))
		}
		for len(values) < len(headers) {
			values = append(values, "")
		}
		values = values[:len(headers)]

		table.Rows = append(table.Rows, ExamRow{headers: headers, values: values})
		report.Converted++
	}

	return table, report, nil
}

// ConvertFile decodes a PSV file and converts its records.
func (c *ExamConverter) ConvertFile(path string) (*ExamTable, *ConvertReport, error) {
	text, encoding, err := psv.DecodeFile(path)
	if err != nil {
		return nil, nil, err
	}
	table, report, err := c.Convert(psv.Records(text))
	if err != nil {
		return nil, report, err
	}
	report.SourceFile = path
	report.Encoding = encoding
	return table, report, nil
}
