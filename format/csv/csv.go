// Package csv provides a format plugin for tabular CSV output of mapped records.
package csv

import (
	"github.com/lehigh-university-libraries/findingaid/format"
)

// Format implements the CSV format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "csv"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Comma-separated values, one row per record"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"csv", "tsv"}
}

// CanParse always returns false; the format is output only.
func (f *Format) CanParse(peek []byte) bool {
	return false
}

// ContentType is the media type of the output.
func (f *Format) ContentType() string {
	return "text/csv"
}

func init() {
	format.Register(&Format{})
}
