// Package mapping provides configuration profiles for mapping EAD3 finding
// aids to index fields.
package mapping

import (
	"slices"

	"github.com/lehigh-university-libraries/findingaid/rules"
)

// Profile represents a complete mapping configuration for one archive source.
type Profile struct {
	// Name is the profile identifier
	Name string `yaml:"name" json:"name"`

	// Extends names an embedded profile this one is merged over
	Extends string `yaml:"extends,omitempty" json:"extends,omitempty"`

	// Version is the profile revision
	Version string `yaml:"version,omitempty" json:"version,omitempty"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Source is the default source label used when a record names no institution
	Source string `yaml:"source,omitempty" json:"source,omitempty"`

	// RecordElements are the element names treated as records when splitting input
	RecordElements []string `yaml:"record_elements,omitempty" json:"record_elements,omitempty"`

	// Markers are the attribute values the mapper looks for
	Markers Markers `yaml:"markers,omitempty" json:"markers,omitempty"`

	// Options contains mapping behavior switches
	Options ProfileOptions `yaml:"options,omitempty" json:"options,omitempty"`

	// UsageRights decides usage_rights_str_mv
	UsageRights *rules.RuleSet `yaml:"usage_rights,omitempty" json:"usage_rights,omitempty"`
}

// VersionedName returns the profile name with version (e.g., "finna@1")
func (p *Profile) VersionedName() string {
	if p.Version != "" {
		return p.Name + "@" + p.Version
	}
	return p.Name
}

// Markers are the literal label and role values found in the source archive's
// EAD3 records.
type Markers struct {
	// TechnicalLabel marks the unitid holding the record identifier
	TechnicalLabel string `yaml:"technical_label,omitempty" json:"technical_label,omitempty"`

	// AnalogLabel marks the unitid holding the analog reference code
	AnalogLabel string `yaml:"analog_label,omitempty" json:"analog_label,omitempty"`

	// PrimaryName, AlternativeName and DeprecatedName are part@localtype values
	PrimaryName     string `yaml:"primary_name,omitempty" json:"primary_name,omitempty"`
	AlternativeName string `yaml:"alternative_name,omitempty" json:"alternative_name,omitempty"`
	DeprecatedName  string `yaml:"deprecated_name,omitempty" json:"deprecated_name,omitempty"`

	// ThumbnailRole is the daoloc@role of thumbnail images
	ThumbnailRole string `yaml:"thumbnail_role,omitempty" json:"thumbnail_role,omitempty"`

	// Placeholder is the value entered where a term is unknown
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`

	// DigitizedFormats are the formats promoted to digitized_<format>
	DigitizedFormats []string `yaml:"digitized_formats,omitempty" json:"digitized_formats,omitempty"`
}

// ProfileOptions contains mapping behavior switches.
type ProfileOptions struct {
	// PrependTitleWithSubtitle puts title_sub in front of title (default true)
	PrependTitleWithSubtitle *bool `yaml:"prepend_title_with_subtitle,omitempty" json:"prepend_title_with_subtitle,omitempty"`

	// AuthorVariantFallthrough records primary names as variants too (default true)
	AuthorVariantFallthrough *bool `yaml:"author_variant_fallthrough,omitempty" json:"author_variant_fallthrough,omitempty"`

	// AssignTitleSub derives title_sub from the analog identifier
	AssignTitleSub bool `yaml:"assign_title_sub,omitempty" json:"assign_title_sub,omitempty"`

	// CSVDelimiter is the CSV field delimiter
	CSVDelimiter string `yaml:"csv_delimiter,omitempty" json:"csv_delimiter,omitempty"`

	// MultiValueSeparator is the delimiter for multi-value fields in CSV
	MultiValueSeparator string `yaml:"multi_value_separator,omitempty" json:"multi_value_separator,omitempty"`
}

// Default marker values of the Finnish national archive EAD3 exports.
const (
	DefaultTechnicalLabel  = "Tekninen"
	DefaultAnalogLabel     = "Analoginen"
	DefaultPrimaryName     = "Ensisijainen nimi"
	DefaultAlternativeName = "Vaihtoehtoinen nimi"
	DefaultDeprecatedName  = "Vanhentunut nimi"
	DefaultThumbnailRole   = "image_thumbnail"
	DefaultPlaceholder     = "-"
)

// DefaultDigitizedFormats returns the formats promoted when digital objects exist.
func DefaultDigitizedFormats() []string {
	return []string{"collection", "series", "fonds", "item"}
}

// DefaultRecordElements returns the element names split into records.
func DefaultRecordElements() []string {
	return []string{"archdesc", "c"}
}

// WithDefaults returns a copy of the markers with empty values filled in.
func (m Markers) WithDefaults() Markers {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&m.TechnicalLabel, DefaultTechnicalLabel)
	fill(&m.AnalogLabel, DefaultAnalogLabel)
	fill(&m.PrimaryName, DefaultPrimaryName)
	fill(&m.AlternativeName, DefaultAlternativeName)
	fill(&m.DeprecatedName, DefaultDeprecatedName)
	fill(&m.ThumbnailRole, DefaultThumbnailRole)
	fill(&m.Placeholder, DefaultPlaceholder)
	if len(m.DigitizedFormats) == 0 {
		m.DigitizedFormats = DefaultDigitizedFormats()
	} else {
		m.DigitizedFormats = slices.Clone(m.DigitizedFormats)
	}
	return m
}

// GetRecordElements returns the record element names with a default.
func (p *Profile) GetRecordElements() []string {
	if p != nil && len(p.RecordElements) > 0 {
		return p.RecordElements
	}
	return DefaultRecordElements()
}

// PrependTitleWithSubtitle reports the option with its default.
func (p *Profile) PrependTitleWithSubtitle() bool {
	if p.Options.PrependTitleWithSubtitle == nil {
		return true
	}
	return *p.Options.PrependTitleWithSubtitle
}

// AuthorVariantFallthrough reports the option with its default.
func (p *Profile) AuthorVariantFallthrough() bool {
	if p.Options.AuthorVariantFallthrough == nil {
		return true
	}
	return *p.Options.AuthorVariantFallthrough
}

// GetMultiValueSeparator returns the multi-value separator with a default.
func (p *Profile) GetMultiValueSeparator() string {
	if p.Options.MultiValueSeparator != "" {
		return p.Options.MultiValueSeparator
	}
	return "|"
}

// GetCSVDelimiter returns the CSV delimiter with a default.
func (p *Profile) GetCSVDelimiter() string {
	if p.Options.CSVDelimiter != "" {
		return p.Options.CSVDelimiter
	}
	return ","
}

// DefaultCSVColumns returns the default column set for CSV output.
func DefaultCSVColumns() []string {
	return []string{
		"id",
		"ctrlnum",
		"format",
		"title",
		"title_short",
		"identifier",
		"unit_daterange",
		"main_date_str",
		"author",
		"author_corporate",
		"institution",
		"topic",
		"geographic",
		"language",
		"physical",
		"rights",
		"usage_rights_str_mv",
		"hierarchy_top_id",
		"hierarchy_parent_id",
		"online_boolean",
		"source_str_mv",
	}
}
