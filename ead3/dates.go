package ead3

import (
	"strings"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/helpers"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

// Dates are the fields derived from did/unitdate.
type Dates struct {
	Range     helpers.DateRange
	Display   string
	StartYear string
	MainDate  string
	YearRange string
}

// deriveDates parses did/unitdate, falling back to its normal attribute. An
// unparseable date yields zero Dates.
func (m *Mapper) deriveDates(doc *document.Node) Dates {
	unitdate := doc.Path("did", "unitdate")
	if unitdate == nil {
		return Dates{}
	}

	var (
		dr  helpers.DateRange
		err error
	)
	candidates := []string{strings.TrimSpace(unitdate.InnerText()), unitdate.AttrValue("normal")}
	for _, raw := range candidates {
		if raw == "" {
			continue
		}
		dr, err = m.dates.ParseDateRange(raw)
		if err == nil {
			break
		}
		m.logger.Debug("unparseable unit date", "value", raw, "err", err)
	}
	if err != nil || dr.IsZero() {
		return Dates{}
	}

	d := Dates{
		Range:     dr,
		Display:   helpers.DateRangeToStr(dr),
		StartYear: helpers.ExtractYear(dr.Start),
		YearRange: YearRange(dr),
	}
	if main, err := helpers.ValidateDate(dr.Start); err == nil {
		d.MainDate = main
	} else {
		m.logger.Debug("invalid main date", "value", dr.Start, "err", err)
	}
	return d
}

func (d Dates) write(r *record.Record) {
	r.Set(schema.UnitDateRange, d.Display)
	r.Append(schema.SearchDateRange, d.Display)
	r.Set(schema.MainDateStr, d.StartYear)
	r.Set(schema.MainDate, d.MainDate)
}

// YearRange renders the years of a range for title decoration: "1920-1930",
// "1920" for a single year, "1920-" when open-ended and "-1930" when the start
// is open.
func YearRange(dr helpers.DateRange) string {
	if dr.IsZero() {
		return ""
	}
	startYear := helpers.ExtractYear(dr.Start)
	endYear := helpers.ExtractYear(dr.End)

	var yr string
	if startYear != helpers.OpenStartYear {
		yr = startYear
	}
	if endYear != startYear {
		yr += "-"
		if endYear != helpers.OpenEndYear {
			yr += endYear
		}
	}
	return yr
}
