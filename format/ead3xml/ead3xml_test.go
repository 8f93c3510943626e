package ead3xml

import (
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/findingaid/format"
)

const stream = `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH><ListRecords>
  <record><metadata><c level="file"><did><unitid label="Tekninen" identifier="a"/></did></c></metadata></record>
  <record><metadata><c level="file"><did><unitid label="Tekninen" identifier="b"/></did>
    <c level="item"><did><unitid label="Tekninen" identifier="nested"/></did></c>
  </c></metadata></record>
</ListRecords></OAI-PMH>`

func TestParseSplitsOutermostRecords(t *testing.T) {
	f := &Format{}
	records, err := f.Parse(strings.NewReader(stream), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got := records[1].QueryOne("did/unitid").AttrValue("identifier"); got != "b" {
		t.Errorf("second record id: got %q", got)
	}
}

func TestParseCustomElements(t *testing.T) {
	f := &Format{}
	records, err := f.Parse(strings.NewReader(stream), &format.ParseOptions{RecordElements: []string{"metadata"}})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 2 || records[0].Name() != "metadata" {
		t.Errorf("unexpected records: %d", len(records))
	}
}

func TestParseInvalid(t *testing.T) {
	f := &Format{}
	_, err := f.Parse(strings.NewReader("<c><did>"), &format.ParseOptions{SourceName: "broken.xml"})
	if err == nil || !strings.Contains(err.Error(), "broken.xml") {
		t.Errorf("expected error naming the source, got %v", err)
	}
}

func TestCanParse(t *testing.T) {
	f := &Format{}
	tests := []struct {
		input string
		want  bool
	}{
		{`<archdesc level="fonds">`, true},
		{`  <c level="item">`, true},
		{`<ead xmlns="http://ead3.archivists.org/schema/">`, true},
		{`{"id": 1}`, false},
		{`<mods>`, false},
	}
	for _, tt := range tests {
		if got := f.CanParse([]byte(tt.input)); got != tt.want {
			t.Errorf("CanParse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRegistered(t *testing.T) {
	if _, err := format.GetParser("ead3"); err != nil {
		t.Errorf("ead3 not registered: %v", err)
	}
}
