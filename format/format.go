// Package format defines the interface for input and output format plugins.
package format

import (
	"io"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "solrjson", "csv")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can split input into record elements.
type Parser interface {
	Format

	// Parse reads input and returns the record elements to map.
	Parse(r io.Reader, opts *ParseOptions) ([]*document.Node, error)
}

// Serializer is a format that can write mapped records to output.
type Serializer interface {
	Format

	// Serialize writes records to the output.
	Serialize(w io.Writer, records []*record.Record, opts *SerializeOptions) error

	// ContentType is the media type of the serialized output.
	ContentType() string
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// RecordElements are the element names treated as records
	RecordElements []string

	// SourceName is an identifier for the source (for error messages)
	SourceName string
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Profile is the mapping profile in use
	Profile *mapping.Profile

	// Vocabulary decides which fields are multi-valued
	Vocabulary *schema.Vocabulary

	// Columns specifies which columns to include (for tabular formats)
	Columns []string

	// MultiValueSeparator is the delimiter for multi-value fields
	MultiValueSeparator string

	// Delimiter is the field delimiter (for tabular formats)
	Delimiter rune

	// IncludeHeader includes a header row (for tabular formats)
	IncludeHeader bool

	// Pretty enables pretty-printing (for JSON/XML formats)
	Pretty bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{
		RecordElements: mapping.DefaultRecordElements(),
	}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{
		Vocabulary:          schema.Default(),
		MultiValueSeparator: "|",
		Delimiter:           ',',
		IncludeHeader:       true,
	}
}

// GetVocabulary returns the vocabulary with a default.
func (o *SerializeOptions) GetVocabulary() *schema.Vocabulary {
	if o != nil && o.Vocabulary != nil {
		return o.Vocabulary
	}
	return schema.Default()
}
