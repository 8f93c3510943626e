// Package jsonl provides a format plugin writing one JSON document per line.
package jsonl

import (
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/record"
)

// Format implements newline-delimited JSON output.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "jsonl"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Newline-delimited JSON, one Solr document per line"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"jsonl", "ndjson"}
}

// CanParse always returns false; the format is output only.
func (f *Format) CanParse(peek []byte) bool {
	return false
}

// ContentType is the media type of the output.
func (f *Format) ContentType() string {
	return "application/x-ndjson"
}

// Serialize writes each record on its own line. Pretty printing is ignored.
func (f *Format) Serialize(w io.Writer, records []*record.Record, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	for i, r := range records {
		doc, err := r.JSON(opts.GetVocabulary(), false)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := w.Write(append(doc, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	format.Register(&Format{})
}
