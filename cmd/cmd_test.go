package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/findingaid/ead3"
	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

const findingAid = `<ead>
  <c level="item" id="a">
    <did>
      <unitid label="Tekninen" identifier="FI-1"/>
      <unittitle label="Kirje"/>
      <unitdate>1920</unitdate>
    </did>
  </c>
  <c level="item"><did><unittitle label="Nimetön"/></did></c>
  <c level="item" id="b">
    <did>
      <unitid label="Tekninen" identifier="FI-2"/>
      <unittitle label="Sähke"/>
    </did>
  </c>
</ead>`

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// isolateProfiles keeps tests away from the user's profile directory.
func isolateProfiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FINDINGAID_PROFILE_DIR", dir)
	return dir
}

func defaultProfile(t *testing.T) *mapping.Profile {
	t.Helper()
	isolateProfiles(t)
	p, err := loadProfile("", "")
	if err != nil {
		t.Fatalf("loadProfile: %v", err)
	}
	return p
}

func convertConfigFor(t *testing.T, to string) convertConfig {
	t.Helper()
	serializer, err := format.GetSerializer(to)
	if err != nil {
		t.Fatalf("GetSerializer(%s): %v", to, err)
	}
	profile := defaultProfile(t)
	return convertConfig{
		Profile:    profile,
		Serializer: serializer,
		Serialize:  &format.SerializeOptions{Profile: profile, IncludeHeader: true},
	}
}

func TestConvertSkipsUnidentified(t *testing.T) {
	cfg := convertConfigFor(t, "solrjson")

	var out bytes.Buffer
	stats, err := convert(strings.NewReader(findingAid), "test.xml", &out, cfg, quiet)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if stats.mapped != 2 || stats.skipped != 1 {
		t.Errorf("stats = %+v, want 2 mapped, 1 skipped", stats)
	}

	var docs []map[string]any
	if err := json.Unmarshal(out.Bytes(), &docs); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0]["id"] != "FI-1" || docs[1]["id"] != "FI-2" {
		t.Errorf("ids = %v, %v", docs[0]["id"], docs[1]["id"])
	}
	if docs[0]["title_short"] != "Kirje (1920)" {
		t.Errorf("title_short = %v", docs[0]["title_short"])
	}
}

func TestConvertFailFast(t *testing.T) {
	cfg := convertConfigFor(t, "jsonl")
	cfg.FailFast = true

	var out bytes.Buffer
	_, err := convert(strings.NewReader(findingAid), "test.xml", &out, cfg, quiet)
	if !errors.Is(err, ead3.ErrNoIdentifier) {
		t.Fatalf("err = %v, want ErrNoIdentifier", err)
	}
	if !strings.Contains(err.Error(), "record 2") {
		t.Errorf("error %q does not name the record", err)
	}
	if out.Len() != 0 {
		t.Errorf("wrote output on failure: %q", out.String())
	}
}

func TestConvertCSVColumns(t *testing.T) {
	cfg := convertConfigFor(t, "csv")
	cfg.Serialize.Columns = []string{"id", "title_short"}

	var out bytes.Buffer
	if _, err := convert(strings.NewReader(findingAid), "test.xml", &out, cfg, quiet); err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := "id,title_short\nFI-1,Kirje (1920)\nFI-2,Sähke\n"
	if out.String() != want {
		t.Errorf("csv output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestConvertBadInput(t *testing.T) {
	cfg := convertConfigFor(t, "solrjson")
	_, err := convert(strings.NewReader("<ead><c>"), "broken.xml", io.Discard, cfg, quiet)
	if err == nil {
		t.Fatal("expected an error for malformed XML")
	}
	if !strings.Contains(err.Error(), "broken.xml") {
		t.Errorf("error %q does not name the input", err)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := isolateProfiles(t)

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(custom, []byte("source: Testiarkisto\nmarkers:\n  technical_label: Technical\n"), 0644); err != nil {
		t.Fatal(err)
	}
	extending := filepath.Join(t.TempDir(), "strict.yaml")
	if err := os.WriteFile(extending, []byte("extends: finna-corrected\noptions:\n  prepend_title_with_subtitle: false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "local.yaml"), []byte("extends: finna\nsource: Paikallisarkisto\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		profileName string
		file        string
		wantErr     bool
		check       func(t *testing.T, p *mapping.Profile)
	}{
		{
			name: "default",
			check: func(t *testing.T, p *mapping.Profile) {
				if p.Name != mapping.DefaultProfileName {
					t.Errorf("name = %q", p.Name)
				}
			},
		},
		{
			name:        "unknown",
			profileName: "nope",
			wantErr:     true,
		},
		{
			name:        "user directory",
			profileName: "local",
			check: func(t *testing.T, p *mapping.Profile) {
				if p.Source != "Paikallisarkisto" {
					t.Errorf("source = %q", p.Source)
				}
				if p.UsageRights == nil {
					t.Error("usage rights not inherited from finna")
				}
			},
		},
		{
			name: "file merged over base",
			file: custom,
			check: func(t *testing.T, p *mapping.Profile) {
				if p.Source != "Testiarkisto" {
					t.Errorf("source = %q", p.Source)
				}
				if p.Markers.TechnicalLabel != "Technical" {
					t.Errorf("technical label = %q", p.Markers.TechnicalLabel)
				}
				if p.Markers.AnalogLabel != mapping.DefaultAnalogLabel {
					t.Errorf("analog label = %q", p.Markers.AnalogLabel)
				}
			},
		},
		{
			name: "file with extends",
			file: extending,
			check: func(t *testing.T, p *mapping.Profile) {
				if p.PrependTitleWithSubtitle() {
					t.Error("prepend option not applied")
				}
				if p.AuthorVariantFallthrough() {
					t.Error("finna-corrected option not inherited")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := loadProfile(tt.profileName, tt.file)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadProfile: %v", err)
			}
			tt.check(t, p)
		})
	}
}

func TestNewMapperSettings(t *testing.T) {
	profile := defaultProfile(t)

	tests := []struct {
		name        string
		settings    mapperSettings
		wantPrepend bool
		wantSource  string
	}{
		{"profile defaults", mapperSettings{}, true, profile.Source},
		{"no subtitle prefix", mapperSettings{NoSubtitlePrefix: true}, false, profile.Source},
		{"source override", mapperSettings{Source: "Muu"}, true, "Muu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := newMapper(profile, tt.settings, quiet).Options()
			if opts.PrependTitleWithSubtitle != tt.wantPrepend {
				t.Errorf("PrependTitleWithSubtitle = %v, want %v", opts.PrependTitleWithSubtitle, tt.wantPrepend)
			}
			if opts.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", opts.Source, tt.wantSource)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	report, err := validate(strings.NewReader(findingAid), "test.xml", defaultProfile(t), quiet)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if report.Total != 3 {
		t.Errorf("Total = %d, want 3", report.Total)
	}
	if len(report.Records) != 2 {
		t.Errorf("got %d record reports, want 2", len(report.Records))
	}
	if n := report.invalid(); n != 1 {
		t.Errorf("invalid() = %d, want 1", n)
	}

	var out bytes.Buffer
	report.print(&out, true)
	for _, want := range []string{"1 of 3 records", "FI-1", "FI-2", "no unitid"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report missing %q:\n%s", want, out.String())
		}
	}
}

func TestAuditFields(t *testing.T) {
	docs, err := parseDocuments(strings.NewReader(findingAid), "test.xml", mapping.DefaultRecordElements(), quiet)
	if err != nil {
		t.Fatalf("parseDocuments: %v", err)
	}
	result, err := mapDocuments(newMapper(defaultProfile(t), mapperSettings{}, quiet), docs, false, quiet)
	if err != nil {
		t.Fatalf("mapDocuments: %v", err)
	}

	report := auditFields(result.Records, schema.Default(), 75, 2)
	if report.TotalRecords != 2 {
		t.Errorf("TotalRecords = %d", report.TotalRecords)
	}
	if got := report.Coverage[schema.ID]; got.Count != 2 || got.Percentage != 100 {
		t.Errorf("id coverage = %+v", got)
	}
	if got := report.Coverage[schema.UnitDateRange]; got.Count != 1 {
		t.Errorf("unit_daterange coverage = %+v", got)
	}

	sparse := strings.Join(report.Sparse, ",")
	if !strings.Contains(sparse, schema.UnitDateRange) {
		t.Errorf("unit_daterange not sparse: %v", report.Sparse)
	}
	unfilled := strings.Join(report.Unfilled, ",")
	if !strings.Contains(unfilled, schema.Thumbnail) {
		t.Errorf("thumbnail not unfilled: %v", report.Unfilled)
	}

	text := formatFieldReport(report)
	if !strings.Contains(text, "Total records: 2") {
		t.Errorf("report text:\n%s", text)
	}
}

func TestPrintFields(t *testing.T) {
	var table bytes.Buffer
	if err := printFields(&table, schema.Default(), false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(table.String(), "single, required") {
		t.Errorf("table missing required marker:\n%s", table.String())
	}

	var js bytes.Buffer
	if err := printFields(&js, schema.Default(), true); err != nil {
		t.Fatal(err)
	}
	var fields []schema.Field
	if err := json.Unmarshal(js.Bytes(), &fields); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(fields) != len(schema.Default().Names()) {
		t.Errorf("got %d fields, want %d", len(fields), len(schema.Default().Names()))
	}
}

func TestListProfiles(t *testing.T) {
	isolateProfiles(t)
	registry, err := profileRegistry()
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := listProfiles(&out, registry); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"finna@1", "finna-corrected@1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("listing missing %q:\n%s", want, out.String())
		}
	}
}
