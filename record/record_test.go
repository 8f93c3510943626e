package record

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/lehigh-university-libraries/findingaid/schema"
)

func TestSetDropsEmpty(t *testing.T) {
	r := New()
	r.Set(schema.Title, "")
	r.SetList(schema.Topic, []string{"", ""})
	r.Append(schema.Language)
	if r.Len() != 0 {
		t.Errorf("expected empty record, got %v", r.Names())
	}

	r.Set(schema.Title, "Kirjeet")
	if !r.Has(schema.Title) || r.String(schema.Title) != "Kirjeet" {
		t.Errorf("Set: got %q", r.String(schema.Title))
	}
}

func TestAppendPromotesScalar(t *testing.T) {
	r := New()
	r.Set(schema.AllFields, "first")
	r.Append(schema.AllFields, "second", "", "third")

	v, ok := r.Get(schema.AllFields)
	if !ok || v.Kind != KindList {
		t.Fatalf("expected list value, got %+v", v)
	}
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(r.Strings(schema.AllFields), want) {
		t.Errorf("Append: got %q, want %q", r.Strings(schema.AllFields), want)
	}
}

func TestOrderAndDelete(t *testing.T) {
	r := New()
	r.Set(schema.ID, "a")
	r.Set(schema.Format, "fonds")
	r.SetBool(schema.Online, true)
	r.Set(schema.Format, "digitized_fonds")

	if got := r.Names(); !reflect.DeepEqual(got, []string{schema.ID, schema.Format, schema.Online}) {
		t.Errorf("Names: got %v", got)
	}
	if r.String(schema.Format) != "digitized_fonds" {
		t.Errorf("overwrite: got %q", r.String(schema.Format))
	}
	if r.String(schema.Online) != "true" {
		t.Errorf("bool as string: got %q", r.String(schema.Online))
	}

	r.Delete(schema.Format)
	r.Delete("missing")
	if r.Has(schema.Format) || r.Len() != 2 {
		t.Errorf("Delete: got %v", r.Names())
	}
}

func TestValidate(t *testing.T) {
	r := New()
	r.Set(schema.ID, "x")
	r.Set(schema.FullRecord, "<c/>")
	r.Set(schema.HierarchyType, "Default")
	r.SetList(schema.Topic, []string{"a", "b"})
	if problems := r.Validate(schema.Default()); problems != nil {
		t.Errorf("unexpected problems: %v", problems)
	}

	r.Append(schema.Title, "a", "b")
	if problems := r.Validate(schema.Default()); len(problems) != 1 {
		t.Errorf("expected one cardinality problem, got %v", problems)
	}
}

func TestMarshalJSON(t *testing.T) {
	r := New()
	r.Set(schema.ID, "FI-NA.123")
	r.Set(schema.Language, "fin")
	r.SetList(schema.Topic, []string{"sota", "kirjeet"})
	r.SetBool(schema.Online, true)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, data)
	}

	want := map[string]any{
		"id":             "FI-NA.123",
		"language":       []any{"fin"},
		"topic":          []any{"sota", "kirjeet"},
		"online_boolean": true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("JSON: got %v, want %v", got, want)
	}
}

func TestToStructWithoutVocabulary(t *testing.T) {
	r := New()
	r.Set("custom_s", "one")
	r.SetList("custom_mv", []string{"a"})

	s, err := r.ToStruct(nil)
	if err != nil {
		t.Fatalf("ToStruct failed: %v", err)
	}
	if s.Fields["custom_s"].GetStringValue() != "one" {
		t.Errorf("scalar: got %v", s.Fields["custom_s"])
	}
	if len(s.Fields["custom_mv"].GetListValue().GetValues()) != 1 {
		t.Errorf("list: got %v", s.Fields["custom_mv"])
	}
}
