// Package ead3 maps EAD3 archival description records to flat search index
// fields.
//
// A Mapper is built once from a mapping profile and is safe for concurrent
// use: Map reads the document, never mutates it, and returns a fresh record.
// Only identifier resolution can fail; every other derivation degrades to an
// omitted field.
package ead3

import (
	"log/slog"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/helpers"
	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/rules"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

// HierarchyType is the only hierarchy scheme records belong to.
const HierarchyType = "Default"

// Options is the configuration surface of a mapping call.
type Options struct {
	// PrependTitleWithSubtitle puts title_sub in front of title.
	PrependTitleWithSubtitle bool

	// Source is the label used for datasource_str_mv and, when the record
	// names no institution, source_str_mv.
	Source string
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{PrependTitleWithSubtitle: true}
}

// DateRangeParser turns free-form unit dates into a normalized range.
type DateRangeParser interface {
	ParseDateRange(input string) (helpers.DateRange, error)
}

// TextNormalizer builds sort keys.
type TextNormalizer interface {
	SortKey(s string) string
}

// UsageRightsResolver decides the usage rights of a record from facts about
// its restrictions.
type UsageRightsResolver interface {
	UsageRights(facts rules.Facts) []string
}

// RulesUsageRights resolves usage rights with a rule set.
type RulesUsageRights struct {
	Rules *rules.RuleSet
}

// UsageRights evaluates the rule set.
func (u RulesUsageRights) UsageRights(facts rules.Facts) []string {
	if u.Rules == nil {
		return nil
	}
	result := u.Rules.Evaluate(facts)
	if result.Skip {
		return nil
	}
	return result.Values
}

// Mapper converts EAD3 record elements into index records.
type Mapper struct {
	opts               Options
	markers            mapping.Markers
	variantFallthrough bool
	assignTitleSub     bool

	dates  DateRangeParser
	text   TextNormalizer
	rights UsageRightsResolver
	logger *slog.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithOptions replaces the mapping options.
func WithOptions(opts Options) Option {
	return func(m *Mapper) {
		m.opts = opts
	}
}

// WithSource sets the default source label.
func WithSource(source string) Option {
	return func(m *Mapper) {
		m.opts.Source = source
	}
}

// WithProfile applies a mapping profile: its markers, options, source label
// and usage rights rules.
func WithProfile(p *mapping.Profile) Option {
	return func(m *Mapper) {
		if p == nil {
			return
		}
		m.markers = p.Markers.WithDefaults()
		m.opts.PrependTitleWithSubtitle = p.PrependTitleWithSubtitle()
		if p.Source != "" {
			m.opts.Source = p.Source
		}
		m.variantFallthrough = p.AuthorVariantFallthrough()
		m.assignTitleSub = p.Options.AssignTitleSub
		if p.UsageRights != nil {
			m.rights = RulesUsageRights{Rules: p.UsageRights}
		}
	}
}

// WithDateRangeParser replaces the date range parser.
func WithDateRangeParser(p DateRangeParser) Option {
	return func(m *Mapper) {
		m.dates = p
	}
}

// WithTextNormalizer replaces the sort key normalizer.
func WithTextNormalizer(t TextNormalizer) Option {
	return func(m *Mapper) {
		m.text = t
	}
}

// WithUsageRights replaces the usage rights resolver.
func WithUsageRights(u UsageRightsResolver) Option {
	return func(m *Mapper) {
		m.rights = u
	}
}

// WithLogger sets the logger for recovered problems.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) {
		m.logger = l
	}
}

// NewMapper returns a Mapper with default markers and collaborators, modified
// by opts in order.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		opts:               DefaultOptions(),
		markers:            mapping.Markers{}.WithDefaults(),
		variantFallthrough: true,
		text:               helpers.TextNormalizer{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.dates == nil {
		m.dates = &helpers.DateRangeParser{Logger: m.logger}
	}
	return m
}

// Options returns the effective options.
func (m *Mapper) Options() Options {
	return m.opts
}

// Map converts one record element. It returns either a complete record or an
// *IdentifierError; there are no partial records.
func (m *Mapper) Map(doc *document.Node) (*record.Record, error) {
	id, err := ResolveID(doc, m.markers.TechnicalLabel)
	if err != nil {
		return nil, err
	}

	r := record.New()
	r.Set(schema.ID, id)
	r.Set(schema.CtrlNum, doc.AttrValue("id"))
	r.Set(schema.FullRecord, doc.TrimmedXML())
	r.SetList(schema.AllFields, allFields(doc))

	analog := m.analogID(doc)
	r.Set(schema.Identifier, analog)

	format := formatOf(doc)
	titleSub, series := m.subtitle(doc, format, analog)
	r.Set(schema.TitleSub, titleSub)
	r.Set(schema.Series, series)

	// Dates are derived before titles, which carry the year range.
	dates := m.deriveDates(doc)
	titles := m.composeTitles(doc, titleSub, dates.YearRange)
	titles.write(r)
	r.Set(schema.Description, description(doc))
	dates.write(r)

	v := m.extractVocabulary(doc)
	v.write(r)

	m.aggregateSources(doc, r, format, v.Institution)
	m.resolveUsageRights(doc, r, v.Rights)
	m.resolveHierarchy(doc, r, id, titles.Undecorated)

	m.logger.Debug("mapped record", "id", id, "format", r.String(schema.Format), "fields", r.Len())
	return r, nil
}
