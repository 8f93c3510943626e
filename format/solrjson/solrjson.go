// Package solrjson provides a format plugin writing Solr JSON update documents.
package solrjson

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/record"
)

// Format implements the Solr JSON update format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "solrjson"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Solr JSON update document (array of documents)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// CanParse always returns false; the format is output only.
func (f *Format) CanParse(peek []byte) bool {
	return false
}

// ContentType is the media type of the output.
func (f *Format) ContentType() string {
	return "application/json"
}

// Serialize writes records as a JSON array.
func (f *Format) Serialize(w io.Writer, records []*record.Record, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range records {
		doc, err := r.JSON(opts.GetVocabulary(), opts.Pretty)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if opts.Pretty {
			buf.WriteByte('\n')
		}
		buf.Write(doc)
	}
	if opts.Pretty && len(records) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func init() {
	format.Register(&Format{})
}
