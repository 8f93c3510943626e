package csv

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/record"
)

// Serialize writes records as CSV.
func (f *Format) Serialize(w io.Writer, records []*record.Record, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	sep := opts.MultiValueSeparator
	if sep == "" && opts.Profile != nil {
		sep = opts.Profile.GetMultiValueSeparator()
	}
	if sep == "" {
		sep = "|"
	}

	columns := opts.Columns
	if len(columns) == 0 {
		columns = mapping.DefaultCSVColumns()
	}

	writer := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		writer.Comma = opts.Delimiter
	} else if opts.Profile != nil {
		if d := []rune(opts.Profile.GetCSVDelimiter()); len(d) == 1 {
			writer.Comma = d[0]
		}
	}
	defer writer.Flush()

	// Write header
	if opts.IncludeHeader {
		if err := writer.Write(columns); err != nil {
			return err
		}
	}

	// Write records
	for _, r := range records {
		if err := writer.Write(recordToRow(r, columns, sep)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func recordToRow(r *record.Record, columns []string, sep string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = strings.Join(r.Strings(col), sep)
	}
	return row
}
