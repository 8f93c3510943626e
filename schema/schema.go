// Package schema describes the fixed vocabulary of output fields the
// finding-aid mapper may emit, as declared in the search index schema.
package schema

import (
	"fmt"
)

// FieldType identifies the index field type.
type FieldType string

const (
	TypeString    FieldType = "string"
	TypeText      FieldType = "text"
	TypeBool      FieldType = "boolean"
	TypeDate      FieldType = "date"
	TypeDateRange FieldType = "daterange"
)

// Cardinality defines how many values a field can have.
type Cardinality int

const (
	Single    Cardinality = 1
	Unlimited Cardinality = -1
)

// Field describes one output field.
type Field struct {
	// Name is the index field name (e.g., "title_short")
	Name string `yaml:"name" json:"name"`

	// Type is the index field type
	Type FieldType `yaml:"type" json:"type"`

	// Cardinality: 1 = single, -1 = unlimited
	Cardinality Cardinality `yaml:"cardinality,omitempty" json:"cardinality,omitempty"`

	// Required fields are present in every mapped record
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`

	// Description documents where the value comes from
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// IsMultiValue returns true if the field can have multiple values.
func (f Field) IsMultiValue() bool {
	return f.Cardinality != Single
}

// Field names used by the mapper.
const (
	ID                   = "id"
	CtrlNum              = "ctrlnum"
	FullRecord           = "fullrecord"
	AllFields            = "allfields"
	Identifier           = "identifier"
	Format               = "format"
	Title                = "title"
	TitleShort           = "title_short"
	TitleFull            = "title_full"
	TitleSort            = "title_sort"
	TitleSub             = "title_sub"
	Series               = "series"
	Description          = "description"
	UnitDateRange        = "unit_daterange"
	SearchDateRange      = "search_daterange_mv"
	MainDate             = "main_date"
	MainDateStr          = "main_date_str"
	Author               = "author"
	AuthorVariant        = "author_variant"
	AuthorRole           = "author_role"
	AuthorSort           = "author_sort"
	Author2              = "author2"
	AuthorCorporate      = "author_corporate"
	Institution          = "institution"
	Geographic           = "geographic"
	GeographicFacet      = "geographic_facet"
	Topic                = "topic"
	TopicFacet           = "topic_facet"
	Contents             = "contents"
	Language             = "language"
	Physical             = "physical"
	Measurements         = "measurements"
	Material             = "material"
	Rights               = "rights"
	UsageRights          = "usage_rights_str_mv"
	Thumbnail            = "thumbnail"
	Online               = "online_boolean"
	OnlineSource         = "online_str_mv"
	Source               = "source_str_mv"
	DataSource           = "datasource_str_mv"
	HierarchyType        = "hierarchytype"
	HierarchyTopID       = "hierarchy_top_id"
	HierarchyTopTitle    = "hierarchy_top_title"
	HierarchyParentID    = "hierarchy_parent_id"
	HierarchyParentTitle = "hierarchy_parent_title"
	HierarchySequence    = "hierarchy_sequence"
	HierarchySequenceStr = "hierarchy_sequence_str"
	IsHierarchyID        = "is_hierarchy_id"
	IsHierarchyTitle     = "is_hierarchy_title"
)

// Validate checks a set of present field names and their value counts against
// the vocabulary. Returns a list of problems, or nil if valid.
func (v *Vocabulary) Validate(counts map[string]int) []string {
	var problems []string
	for _, f := range v.Fields() {
		if f.Required && counts[f.Name] == 0 {
			problems = append(problems, fmt.Sprintf("missing required field %q", f.Name))
		}
	}
	for _, name := range sortedKeys(counts) {
		f, ok := v.Get(name)
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown field %q", name))
			continue
		}
		if !f.IsMultiValue() && counts[name] > 1 {
			problems = append(problems, fmt.Sprintf("field %q is single-valued but has %d values", name, counts[name]))
		}
	}
	return problems
}
