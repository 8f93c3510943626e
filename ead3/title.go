package ead3

import (
	"strings"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

// Titles are the title variants of a record.
type Titles struct {
	Short string
	Title string
	Full  string
	Sort  string

	// Undecorated is title_short before the year range was appended.
	Undecorated string
}

// composeTitles builds the title variants from did/unittitle@label, the
// subtitle and the year range.
func (m *Mapper) composeTitles(doc *document.Node, titleSub, yearRange string) Titles {
	short := doc.Path("did", "unittitle").AttrValue("label")

	title := short
	if m.opts.PrependTitleWithSubtitle && titleSub != "" && titleSub != short {
		title = titleSub + " " + short
	}

	t := Titles{
		Short:       short,
		Title:       title,
		Full:        title,
		Sort:        m.text.SortKey(title),
		Undecorated: short,
	}

	t.Full = decorateYearRange(t.Full, yearRange)
	t.Sort = decorateYearRange(t.Sort, yearRange)
	t.Title = decorateYearRange(t.Title, yearRange)
	t.Short = decorateYearRange(t.Short, yearRange)
	return t
}

func (t Titles) write(r *record.Record) {
	r.Set(schema.TitleShort, t.Short)
	r.Set(schema.Title, t.Title)
	r.Set(schema.TitleFull, t.Full)
	r.Set(schema.TitleSort, t.Sort)
}

// decorateYearRange appends " (yr)" unless s already ends with yr or "(yr)".
// Applying it twice gives the same result as applying it once.
func decorateYearRange(s, yr string) string {
	if yr == "" || strings.HasSuffix(s, yr) || strings.HasSuffix(s, "("+yr+")") {
		return s
	}
	return s + " (" + yr + ")"
}
