package document

import (
	"strings"
	"testing"
)

const sampleRecord = `<?xml version="1.0" encoding="UTF-8"?>
<c id="c-1" level="series" xmlns:xlink="http://www.w3.org/1999/xlink">
  <add-data identifier="FI-1_abc">
    <parent id="p-1" title="Parent"/>
  </add-data>
  <did>
    <unitid label="Tekninen" identifier="tech-1">T1</unitid>
    <unitid label="Analoginen">A/123</unitid>
    <unittitle label="Letters">ignored text</unittitle>
    <daogrp>
      <daoloc role="image_thumbnail" href="http://example.com/t.jpg"/>
      <daoloc xlink:href="http://example.com/full.jpg"/>
    </daogrp>
  </did>
  <scopecontent>
    <p>First <emph>para</emph></p>
    <p>Second</p>
  </scopecontent>
</c>`

func mustParse(t *testing.T, s string) *Node {
	t.Helper()
	root, err := ParseString(s)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	return root
}

func TestParseRoot(t *testing.T) {
	root := mustParse(t, sampleRecord)
	if root.Name() != "c" {
		t.Errorf("Name: got %q, want c", root.Name())
	}
	if root.AttrValue("level") != "series" {
		t.Errorf("level: got %q", root.AttrValue("level"))
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := ParseString("<c><did></c>"); err == nil {
		t.Error("expected error for malformed XML")
	}
}

func TestHyphenatedChild(t *testing.T) {
	root := mustParse(t, sampleRecord)
	addData := root.Child("add-data")
	if addData == nil {
		t.Fatal("add-data not found")
	}
	if got := addData.AttrValue("identifier"); got != "FI-1_abc" {
		t.Errorf("identifier: got %q", got)
	}
	if got := root.Path("add-data", "parent").AttrValue("title"); got != "Parent" {
		t.Errorf("parent title: got %q", got)
	}
}

func TestNilSafety(t *testing.T) {
	root := mustParse(t, sampleRecord)
	missing := root.Path("did", "nothing", "deeper")
	if missing != nil {
		t.Fatal("expected nil for missing path")
	}
	if missing.Text() != "" || missing.InnerText() != "" || missing.Name() != "" {
		t.Error("nil node should read as empty")
	}
	if got := missing.Query("p"); got == nil || len(got) != 0 {
		t.Errorf("nil node query: got %v, want empty slice", got)
	}
	if _, ok := missing.Attr("x"); ok {
		t.Error("nil node should have no attributes")
	}
}

func TestQueryDocumentOrder(t *testing.T) {
	root := mustParse(t, sampleRecord)
	ids := root.Query("did/unitid")
	if len(ids) != 2 {
		t.Fatalf("expected 2 unitid, got %d", len(ids))
	}
	if ids[0].AttrValue("label") != "Tekninen" || ids[1].AttrValue("label") != "Analoginen" {
		t.Errorf("unexpected order: %q, %q", ids[0].AttrValue("label"), ids[1].AttrValue("label"))
	}
}

func TestQueryAttributePredicate(t *testing.T) {
	root := mustParse(t, sampleRecord)
	thumbs := root.Query(`did/daogrp/daoloc[@role="image_thumbnail"]`)
	if len(thumbs) != 1 {
		t.Fatalf("expected 1 thumbnail, got %d", len(thumbs))
	}
	if got := thumbs[0].AttrValue("href"); got != "http://example.com/t.jpg" {
		t.Errorf("href: got %q", got)
	}
}

func TestQueryNoMatch(t *testing.T) {
	root := mustParse(t, sampleRecord)
	got := root.Query("controlaccess/subject")
	if got == nil {
		t.Fatal("Query returned nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
	if root.QueryOne("controlaccess") != nil {
		t.Error("QueryOne should return nil")
	}
}

func TestQueryInvalidPath(t *testing.T) {
	root := mustParse(t, sampleRecord)
	if got := root.Query("did[["); len(got) != 0 {
		t.Errorf("invalid path should match nothing, got %d", len(got))
	}
}

func TestPrefixedAttribute(t *testing.T) {
	root := mustParse(t, sampleRecord)
	locs := root.Query("did/daogrp/daoloc")
	if len(locs) != 2 {
		t.Fatalf("expected 2 daoloc, got %d", len(locs))
	}
	if got := locs[1].AttrValue("xlink:href"); got != "http://example.com/full.jpg" {
		t.Errorf("xlink:href: got %q", got)
	}
	if got := locs[1].AttrValue("href"); got != "http://example.com/full.jpg" {
		t.Errorf("bare href should fall back to local name, got %q", got)
	}
	if _, ok := locs[0].Attr("xlink:href"); ok {
		t.Error("unprefixed href should not match xlink:href")
	}
}

func TestTextVersusInnerText(t *testing.T) {
	root := mustParse(t, sampleRecord)
	p := root.Path("scopecontent", "p")
	if got := p.Text(); got != "First " {
		t.Errorf("Text: got %q", got)
	}
	if got := p.InnerText(); got != "First para" {
		t.Errorf("InnerText: got %q", got)
	}
}

func TestRecordsOutermost(t *testing.T) {
	input := `<records>
  <header/>
  <archdesc level="fonds"><dsc><c id="nested"/></dsc></archdesc>
  <c id="a"><c id="a.1"/></c>
  <c id="b"/>
</records>`
	recs, err := ParseRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].Name() != "archdesc" || recs[1].AttrValue("id") != "a" || recs[2].AttrValue("id") != "b" {
		t.Errorf("unexpected records: %s %s %s", recs[0].Name(), recs[1].AttrValue("id"), recs[2].AttrValue("id"))
	}

	only, err := ParseRecords(strings.NewReader(input), "c")
	if err != nil {
		t.Fatalf("ParseRecords failed: %v", err)
	}
	if len(only) != 3 {
		t.Errorf("expected 3 outermost c records, got %d", len(only))
	}
}

func TestTrimXMLWhitespace(t *testing.T) {
	in := "\n<c>\n  <did>\n    <unitid>X 1</unitid>\n  </did>\n</c>\n"
	want := "<c><did><unitid>X 1</unitid></did></c>"
	if got := TrimXMLWhitespace(in); got != want {
		t.Errorf("TrimXMLWhitespace: got %q, want %q", got, want)
	}
}

func TestDescendants(t *testing.T) {
	root := mustParse(t, `<c><did><unitid>1</unitid></did><note/></c>`)
	var names []string
	for _, d := range root.Descendants() {
		names = append(names, d.Name())
	}
	if strings.Join(names, ",") != "did,unitid,note" {
		t.Errorf("Descendants: got %v", names)
	}
}

func TestAttrsSkipsNamespaceDeclarations(t *testing.T) {
	root := mustParse(t, sampleRecord)
	attrs := root.Attrs()
	if _, ok := attrs["xmlns:xlink"]; ok {
		t.Error("namespace declaration should be skipped")
	}
	if attrs["id"] != "c-1" {
		t.Errorf("id: got %q", attrs["id"])
	}
}
