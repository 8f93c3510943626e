package csv

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

func sample() []*record.Record {
	r := record.New()
	r.Set(schema.ID, "FI-NA.1")
	r.Set(schema.Title, "Kirjeet, sähkeet")
	r.SetList(schema.Topic, []string{"sota", "rauha"})
	return []*record.Record{r}
}

func TestSerializeColumns(t *testing.T) {
	var buf bytes.Buffer
	opts := format.NewSerializeOptions()
	opts.Columns = []string{"id", "title", "topic", "language"}
	if err := (&Format{}).Serialize(&buf, sample(), opts); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	want := []string{"FI-NA.1", "Kirjeet, sähkeet", "sota|rauha", ""}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("column %s: got %q, want %q", rows[0][i], rows[1][i], v)
		}
	}
}

func TestSerializeDefaults(t *testing.T) {
	var buf bytes.Buffer
	opts := &format.SerializeOptions{
		Profile: &mapping.Profile{Options: mapping.ProfileOptions{CSVDelimiter: ";", MultiValueSeparator: " ; "}},
	}
	if err := (&Format{}).Serialize(&buf, sample(), opts); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("header disabled, expected 1 row, got %d", len(rows))
	}
	if len(rows[0]) != len(mapping.DefaultCSVColumns()) {
		t.Errorf("expected default columns, got %d", len(rows[0]))
	}

	topicCol := -1
	for i, c := range mapping.DefaultCSVColumns() {
		if c == schema.Topic {
			topicCol = i
		}
	}
	if rows[0][topicCol] != "sota ; rauha" {
		t.Errorf("topic with profile separator: got %q", rows[0][topicCol])
	}
}
