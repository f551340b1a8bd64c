package calendar

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Well-known column names produced by the calendar data pipeline.
const (
	ColDate      = "date"
	ColDay       = "day"
	ColMonthCN   = "month_cn"
	ColMonthEN   = "month_en"
	ColWeekdayCN = "weekday_cn"
	ColWeekdayEN = "weekday_en"
	ColLunar     = "lunar"
	ColSolarTerm = "solar_term"
	ColMainText  = "main_text"
	ColFooter    = "footer"
)

// Record is one data row keyed by header name.
type Record map[string]string

// Get returns the trimmed value of a column, or "" when the column is
// absent from the table.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Read parses CSV records from r. A leading UTF-8 byte-order mark is
// stripped. Rows shorter than the header leave the missing columns empty;
// extra cells are ignored.
func Read(r io.Reader) ([]Record, error) {
	decoded := transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty table: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Load reads the CSV table at path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
