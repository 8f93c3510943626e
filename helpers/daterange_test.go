package helpers

import (
	"errors"
	"testing"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		input     string
		wantStart string
		wantEnd   string
	}{
		{"1920-1930", "1920-01-01T00:00:00Z", "1930-12-31T23:59:59Z"},
		{"1920 - 1930", "1920-01-01T00:00:00Z", "1930-12-31T23:59:59Z"},
		{"1920", "1920-01-01T00:00:00Z", "1920-12-31T23:59:59Z"},
		{"ca. 1920", "1920-01-01T00:00:00Z", "1920-12-31T23:59:59Z"},
		{"1.2.1920-3.4.1930", "1920-02-01T00:00:00Z", "1930-04-03T23:59:59Z"},
		{"2.1920-4.1930", "1920-02-01T00:00:00Z", "1930-04-30T23:59:59Z"},
		{"15.3.1920", "1920-03-15T00:00:00Z", "1920-03-15T23:59:59Z"},
		{"2.1920", "1920-02-01T00:00:00Z", "1920-02-29T23:59:59Z"},
		{"1920-03-15", "1920-03-15T00:00:00Z", "1920-03-15T23:59:59Z"},
		{"1920-", "1920-01-01T00:00:00Z", OpenEnd},
		{"1920–1930", "1920-01-01T00:00:00Z", "1930-12-31T23:59:59Z"},
		{"1920 — 1930", "1920-01-01T00:00:00Z", "1930-12-31T23:59:59Z"},
		{"1.2.1920–3.4.1930", "1920-02-01T00:00:00Z", "1930-04-03T23:59:59Z"},
		{"1920–", "1920-01-01T00:00:00Z", OpenEnd},
		{"–1930", OpenStart, "1930-12-31T23:59:59Z"},
		{"-1930", OpenStart, "1930-12-31T23:59:59Z"},
		{"uuuu-1930", OpenStart, "1930-12-31T23:59:59Z"},
		{"1920-uuuu", "1920-01-01T00:00:00Z", OpenEnd},
		{"1920/1930", "1920-01-01T00:00:00Z", "1930-12-31T23:59:59Z"},
		{"1920-03-01/1930-06", "1920-03-01T00:00:00Z", "1930-06-30T23:59:59Z"},
		{"../1930", OpenStart, "1930-12-31T23:59:59Z"},
		{"1920/..", "1920-01-01T00:00:00Z", OpenEnd},
		// Inverted range is clamped to the start year.
		{"1930-1920", "1930-01-01T00:00:00Z", "1930-12-31T23:59:59Z"},
	}

	p := &DateRangeParser{}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.ParseDateRange(tt.input)
			if err != nil {
				t.Fatalf("ParseDateRange(%q) error: %v", tt.input, err)
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("ParseDateRange(%q) = (%s, %s), want (%s, %s)",
					tt.input, got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParseDateRangeFailures(t *testing.T) {
	p := &DateRangeParser{}
	for _, input := range []string{"", "-", "–", "undated", "uuuu-uuuu", "../..", "31.2.1920"} {
		t.Run(input, func(t *testing.T) {
			_, err := p.ParseDateRange(input)
			if !errors.Is(err, ErrUnparseableDate) {
				t.Errorf("ParseDateRange(%q): got %v, want ErrUnparseableDate", input, err)
			}
		})
	}
}

func TestDateRangeToStr(t *testing.T) {
	tests := []struct {
		r    DateRange
		want string
	}{
		{DateRange{}, ""},
		{DateRange{"1920-01-01T00:00:00Z", "1930-12-31T23:59:59Z"}, "[1920-01-01 TO 1930-12-31]"},
		{DateRange{"1920-03-15T00:00:00Z", "1920-03-15T23:59:59Z"}, "1920-03-15"},
		{DateRange{OpenStart, "1930-12-31T23:59:59Z"}, "[-9999-01-01 TO 1930-12-31]"},
	}
	for _, tt := range tests {
		if got := DateRangeToStr(tt.r); got != tt.want {
			t.Errorf("DateRangeToStr(%v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestExtractYear(t *testing.T) {
	tests := map[string]string{
		"1920-01-01T00:00:00Z": "1920",
		OpenStart:              "-9999",
		OpenEnd:                "9999",
		"":                     "",
	}
	for in, want := range tests {
		if got := ExtractYear(in); got != want {
			t.Errorf("ExtractYear(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if got, err := ValidateDate("1920-01-01T00:00:00Z"); err != nil || got != "1920-01-01T00:00:00Z" {
		t.Errorf("ValidateDate: got %q, %v", got, err)
	}
	for _, bad := range []string{OpenStart, OpenEnd, "1920", "junk"} {
		if _, err := ValidateDate(bad); err == nil {
			t.Errorf("ValidateDate(%q): expected error", bad)
		}
	}
}
