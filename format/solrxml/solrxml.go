// Package solrxml provides a format plugin writing Solr XML update messages.
package solrxml

import (
	"encoding/xml"
	"io"

	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/record"
)

// Format implements the Solr XML update format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "solrxml"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Solr XML update message (<add><doc>...)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse always returns false; the format is output only.
func (f *Format) CanParse(peek []byte) bool {
	return false
}

// ContentType is the media type of the output.
func (f *Format) ContentType() string {
	return "application/xml"
}

type xmlAdd struct {
	XMLName xml.Name `xml:"add"`
	Docs    []xmlDoc `xml:"doc"`
}

type xmlDoc struct {
	Fields []xmlField `xml:"field"`
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Serialize writes records as one <add> message. Multi-valued fields repeat
// the field element; field order follows the record.
func (f *Format) Serialize(w io.Writer, records []*record.Record, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	add := xmlAdd{Docs: make([]xmlDoc, 0, len(records))}
	for _, r := range records {
		add.Docs = append(add.Docs, toDoc(r))
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	if opts.Pretty {
		encoder.Indent("", "  ")
	}
	if err := encoder.Encode(add); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}

func toDoc(r *record.Record) xmlDoc {
	var doc xmlDoc
	for _, name := range r.Names() {
		for _, v := range r.Strings(name) {
			doc.Fields = append(doc.Fields, xmlField{Name: name, Value: v})
		}
	}
	return doc
}

func init() {
	format.Register(&Format{})
}
