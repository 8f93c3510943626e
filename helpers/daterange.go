// Package helpers provides the parsing and normalization collaborators used by
// the finding-aid mapper: free-form date ranges, year extraction and sort keys.
package helpers

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel boundaries of an unbounded range.
const (
	OpenStartYear = "-9999"
	OpenEndYear   = "9999"

	OpenStart = "-9999-01-01T00:00:00Z"
	OpenEnd   = "9999-12-31T23:59:59Z"
)

// ErrUnparseableDate is returned when no date pattern matches the input.
var ErrUnparseableDate = errors.New("unparseable date range")

// DateRange is a normalized (start, end) pair of ISO-8601 UTC timestamps.
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// DateRangeParser parses the free-form unit dates archivists write
// ("1920-1930", "12.3.1920 - 1.5.1921", "1920-", "uuuu-1930") as well as ISO
// intervals ("1920/1930", "../1930").
type DateRangeParser struct {
	// Logger receives warnings about inverted ranges. Defaults to slog.Default().
	Logger *slog.Logger
}

var (
	// 1.2.1920-3.4.1930
	dayRangeRegex = regexp.MustCompile(`(\d\d?)\.(\d\d?)\.(\d{4}) ?- ?(\d\d?)\.(\d\d?)\.(\d{4})`)

	// 2.1920-4.1930
	monthRangeRegex = regexp.MustCompile(`(\d\d?)\.(\d{4}) ?- ?(\d\d?)\.(\d{4})`)

	// 1920-03-15 or 1920-03
	isoPointRegex = regexp.MustCompile(`^(\d{4})-(\d{2})(?:-(\d{2}))?$`)

	// 1920-1930, uuuu-1930
	yearRangeRegex = regexp.MustCompile(`(\d{4}|uuuu) ?- ?(\d{4}|uuuu)`)

	// 1920-
	openEndRegex = regexp.MustCompile(`^(\d{4}) ?-$`)

	// -1930
	openStartRegex = regexp.MustCompile(`^- ?(\d{4})$`)

	// 15.3.1920
	dayRegex = regexp.MustCompile(`(\d\d?)\.(\d\d?)\.(\d{4})`)

	// 3.1920
	monthRegex = regexp.MustCompile(`(\d\d?)\.(\d{4})`)

	// 1920
	yearRegex = regexp.MustCompile(`(\d{4})`)

	// Leading year of an ISO timestamp, sign included.
	leadingYearRegex = regexp.MustCompile(`^(-?\d+)`)
)

// dashes folds the en dash, em dash and minus sign into the ASCII range separator.
var dashes = strings.NewReplacer("\u2013", "-", "\u2014", "-", "\u2212", "-")

// ParseDateRange parses input into a DateRange.
func (p *DateRangeParser) ParseDateRange(input string) (DateRange, error) {
	s := dashes.Replace(strings.TrimSpace(input))
	if s == "" || s == "-" {
		return DateRange{}, ErrUnparseableDate
	}

	r, err := parseRange(s)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", err, input)
	}

	if r.Start != OpenStart && r.End != OpenEnd && r.Start > r.End {
		p.logger().Warn("inverted date range", "input", input, "start", r.Start, "end", r.End)
		r.End = r.Start[:4] + "-12-31T23:59:59Z"
	}
	return r, nil
}

func (p *DateRangeParser) logger() *slog.Logger {
	if p != nil && p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func parseRange(s string) (DateRange, error) {
	if strings.Contains(s, "/") {
		return parseInterval(s)
	}

	if m := dayRangeRegex.FindStringSubmatch(s); m != nil {
		start, err := dayStart(m[3], m[2], m[1])
		if err != nil {
			return DateRange{}, err
		}
		end, err := dayEnd(m[6], m[5], m[4])
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{Start: start, End: end}, nil
	}

	if m := monthRangeRegex.FindStringSubmatch(s); m != nil {
		start, err := monthStart(m[2], m[1])
		if err != nil {
			return DateRange{}, err
		}
		end, err := monthEnd(m[4], m[3])
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{Start: start, End: end}, nil
	}

	if m := isoPointRegex.FindStringSubmatch(s); m != nil {
		return isoPoint(m)
	}

	if m := yearRangeRegex.FindStringSubmatch(s); m != nil {
		if m[1] == "uuuu" && m[2] == "uuuu" {
			return DateRange{}, ErrUnparseableDate
		}
		r := DateRange{Start: OpenStart, End: OpenEnd}
		if m[1] != "uuuu" {
			r.Start = m[1] + "-01-01T00:00:00Z"
		}
		if m[2] != "uuuu" {
			r.End = m[2] + "-12-31T23:59:59Z"
		}
		return r, nil
	}

	if m := openEndRegex.FindStringSubmatch(s); m != nil {
		return DateRange{Start: m[1] + "-01-01T00:00:00Z", End: OpenEnd}, nil
	}

	if m := openStartRegex.FindStringSubmatch(s); m != nil {
		return DateRange{Start: OpenStart, End: m[1] + "-12-31T23:59:59Z"}, nil
	}

	if m := dayRegex.FindStringSubmatch(s); m != nil {
		start, err := dayStart(m[3], m[2], m[1])
		if err != nil {
			return DateRange{}, err
		}
		end, _ := dayEnd(m[3], m[2], m[1])
		return DateRange{Start: start, End: end}, nil
	}

	if m := monthRegex.FindStringSubmatch(s); m != nil {
		start, err := monthStart(m[2], m[1])
		if err != nil {
			return DateRange{}, err
		}
		end, _ := monthEnd(m[2], m[1])
		return DateRange{Start: start, End: end}, nil
	}

	if m := yearRegex.FindStringSubmatch(s); m != nil {
		return DateRange{Start: m[1] + "-01-01T00:00:00Z", End: m[1] + "-12-31T23:59:59Z"}, nil
	}

	return DateRange{}, ErrUnparseableDate
}

// parseInterval handles ISO-8601 intervals as used in EAD3 normal attributes.
// Either side may be ".." or empty for an open boundary.
func parseInterval(s string) (DateRange, error) {
	left, right, _ := strings.Cut(s, "/")
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)

	open := func(v string) bool { return v == "" || v == ".." }
	if open(left) && open(right) {
		return DateRange{}, ErrUnparseableDate
	}

	r := DateRange{Start: OpenStart, End: OpenEnd}
	if !open(left) {
		start, err := parsePoint(left)
		if err != nil {
			return DateRange{}, err
		}
		r.Start = start.Start
	}
	if !open(right) {
		end, err := parsePoint(right)
		if err != nil {
			return DateRange{}, err
		}
		r.End = end.End
	}
	return r, nil
}

func parsePoint(s string) (DateRange, error) {
	if m := isoPointRegex.FindStringSubmatch(s); m != nil {
		return isoPoint(m)
	}
	if len(s) == 4 {
		if _, err := strconv.Atoi(s); err == nil {
			return DateRange{Start: s + "-01-01T00:00:00Z", End: s + "-12-31T23:59:59Z"}, nil
		}
	}
	return DateRange{}, ErrUnparseableDate
}

func isoPoint(m []string) (DateRange, error) {
	if m[3] == "" {
		start, err := monthStart(m[1], m[2])
		if err != nil {
			return DateRange{}, err
		}
		end, _ := monthEnd(m[1], m[2])
		return DateRange{Start: start, End: end}, nil
	}
	start, err := dayStart(m[1], m[2], m[3])
	if err != nil {
		return DateRange{}, err
	}
	end, _ := dayEnd(m[1], m[2], m[3])
	return DateRange{Start: start, End: end}, nil
}

func civil(year, month, day string) (time.Time, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, fmt.Errorf("%w: invalid date %s-%s-%s", ErrUnparseableDate, year, month, day)
	}
	return t, nil
}

func dayStart(year, month, day string) (string, error) {
	t, err := civil(year, month, day)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02") + "T00:00:00Z", nil
}

func dayEnd(year, month, day string) (string, error) {
	t, err := civil(year, month, day)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02") + "T23:59:59Z", nil
}

func monthStart(year, month string) (string, error) {
	return dayStart(year, month, "1")
}

func monthEnd(year, month string) (string, error) {
	t, err := civil(year, month, "1")
	if err != nil {
		return "", err
	}
	last := t.AddDate(0, 1, -1)
	return last.Format("2006-01-02") + "T23:59:59Z", nil
}

// DateRangeToStr formats a range for a Solr DateRangeField: a single day when
// both ends fall on the same date, "[start TO end]" otherwise.
func DateRangeToStr(r DateRange) string {
	if r.IsZero() {
		return ""
	}
	start, _, _ := strings.Cut(r.Start, "T")
	end, _, _ := strings.Cut(r.End, "T")
	if start == end {
		return start
	}
	return "[" + start + " TO " + end + "]"
}

// ExtractYear returns the year of an ISO timestamp, keeping a leading minus
// sign so the open-start sentinel reads as "-9999".
func ExtractYear(date string) string {
	if m := leadingYearRegex.FindStringSubmatch(strings.TrimSpace(date)); m != nil {
		return m[1]
	}
	return ""
}

// ValidateDate checks that date is a usable ISO-8601 timestamp and returns it
// normalized to UTC. Sentinel boundaries are rejected.
func ValidateDate(date string) (string, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(date))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	if t.Year() < 1 || t.Year() >= 9999 {
		return "", fmt.Errorf("date %q out of range", date)
	}
	return t.UTC().Format("2006-01-02T15:04:05Z"), nil
}
