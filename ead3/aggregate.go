package ead3

import (
	"slices"
	"strings"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/helpers"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/rules"
	"github.com/lehigh-university-libraries/findingaid/schema"
	"github.com/lehigh-university-libraries/findingaid/value"
)

// formatOf is the first genre/form term, or the record's level.
func formatOf(doc *document.Node) string {
	if genre := value.First(doc.Query("controlaccess/genreform/part"), value.FullText); genre != "" {
		return genre
	}
	return strings.TrimSpace(doc.AttrValue("level"))
}

// subtitle picks title_sub and series by format. Existing Finna indexes
// never received title_sub, so it stays empty unless the profile asks for the
// analog id to be assigned.
func (m *Mapper) subtitle(doc *document.Node, format, analog string) (titleSub, series string) {
	switch format {
	case "fonds", "collection":
	case "series", "subseries":
		if m.assignTitleSub {
			titleSub = analog
		}
	default:
		if m.assignTitleSub {
			titleSub = analog
		}
		if parent := doc.Path("add-data", "parent"); parent != nil {
			series = parent.AttrValue("unittitle")
			if series == "" {
				series = parent.AttrValue("title")
			}
		}
	}
	return titleSub, series
}

// aggregateSources writes the format, source labels and digitization status.
func (m *Mapper) aggregateSources(doc *document.Node, r *record.Record, format, institution string) {
	source := institution
	if source == "" {
		source = m.opts.Source
	}
	r.Set(schema.Source, source)
	r.Set(schema.DataSource, m.opts.Source)

	daogrp := doc.Path("did", "daogrp")
	if daogrp != nil {
		if slices.Contains(m.markers.DigitizedFormats, format) {
			format = "digitized_" + format
		}
		for _, loc := range daogrp.ChildrenNamed("daoloc") {
			if loc.HasAttr("href") {
				r.SetBool(schema.Online, true)
				r.Set(schema.OnlineSource, source)
				break
			}
		}
	}
	r.Set(schema.Format, format)
}

// resolveUsageRights hands the restriction facts to the usage rights resolver.
func (m *Mapper) resolveUsageRights(doc *document.Node, r *record.Record, rightsText string) {
	if m.rights == nil {
		return
	}
	facts := rules.Facts{}
	facts.Add("rights", rightsText)
	facts.Add("userestrict", value.Collect(doc.Query("did/userestrict/p | userestrict/p"), value.FullText)...)
	facts.Add("accessrestrict", value.Collect(doc.Query("did/accessrestrict/p | accessrestrict/p"), value.FullText)...)
	facts.Add("userestrict_type", value.Collect(doc.Query("did/userestrict | userestrict"), value.Attr("localtype"))...)
	facts.Add("format", r.String(schema.Format))

	r.SetList(schema.UsageRights, m.rights.UsageRights(facts))
}

// allFields collects every non-empty text run of the record, whitespace
// collapsed, in document order.
func allFields(doc *document.Node) []string {
	var out []string
	for _, n := range append([]*document.Node{doc}, doc.Descendants()...) {
		if s := helpers.NormalizeWhitespace(n.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
