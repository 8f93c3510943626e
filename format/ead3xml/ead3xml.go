// Package ead3xml provides the input format plugin for EAD3 XML documents.
package ead3xml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/format"
)

// Format implements the EAD3 XML input format.
type Format struct{}

var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "ead3"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "EAD3 finding aid XML (archdesc or component records)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml", "ead"}
}

// CanParse returns true if the input looks like EAD3 XML.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}
	return bytes.Contains(peek, []byte("<ead")) ||
		bytes.Contains(peek, []byte("<archdesc")) ||
		bytes.Contains(peek, []byte("<c ")) ||
		bytes.Contains(peek, []byte("<c>"))
}

// Parse splits the document into record elements.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*document.Node, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}
	records, err := document.ParseRecords(r, opts.RecordElements...)
	if err != nil {
		if opts.SourceName != "" {
			return nil, fmt.Errorf("%s: %w", opts.SourceName, err)
		}
		return nil, err
	}
	return records, nil
}

func init() {
	format.Register(&Format{})
}
