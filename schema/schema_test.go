package schema

import (
	"strings"
	"testing"
)

func TestDefaultVocabulary(t *testing.T) {
	v := Default()

	for _, name := range []string{
		ID, CtrlNum, FullRecord, AllFields, Identifier, Format, Title, TitleShort, TitleFull,
		TitleSort, TitleSub, Series, Description, UnitDateRange, SearchDateRange, MainDate,
		MainDateStr, Author, AuthorVariant, AuthorRole, AuthorSort, Author2, AuthorCorporate,
		Institution, Geographic, GeographicFacet, Topic, TopicFacet, Contents, Language,
		Physical, Measurements, Material, Rights, UsageRights, Thumbnail, Online, OnlineSource,
		Source, DataSource, HierarchyType, HierarchyTopID, HierarchyTopTitle, HierarchyParentID,
		HierarchyParentTitle, HierarchySequence, HierarchySequenceStr, IsHierarchyID, IsHierarchyTitle,
	} {
		if !v.Has(name) {
			t.Errorf("vocabulary is missing %q", name)
		}
	}

	if len(v.Names()) != len(v.Fields()) {
		t.Errorf("Names and Fields disagree: %d vs %d", len(v.Names()), len(v.Fields()))
	}
	if v.Names()[0] != ID {
		t.Errorf("first field: got %q, want id", v.Names()[0])
	}
}

func TestFieldCardinality(t *testing.T) {
	v := Default()
	tests := []struct {
		name  string
		multi bool
		typ   FieldType
	}{
		{ID, false, TypeString},
		{Topic, true, TypeText},
		{Online, false, TypeBool},
		{SearchDateRange, true, TypeDateRange},
		{HierarchySequenceStr, false, TypeString},
	}
	for _, tt := range tests {
		f, ok := v.Get(tt.name)
		if !ok {
			t.Fatalf("field %q not found", tt.name)
		}
		if f.IsMultiValue() != tt.multi {
			t.Errorf("%s: IsMultiValue = %v, want %v", tt.name, f.IsMultiValue(), tt.multi)
		}
		if f.Type != tt.typ {
			t.Errorf("%s: Type = %q, want %q", tt.name, f.Type, tt.typ)
		}
	}
}

func TestLoadFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"duplicate", "fields:\n  - name: a\n  - name: a\n", "duplicate"},
		{"unnamed", "fields:\n  - type: string\n", "no name"},
		{"invalid", "fields: [", "parsing YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromYAML([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFromYAML: got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadDefaultsCardinality(t *testing.T) {
	v, err := LoadFromYAML([]byte("fields:\n  - name: x\n    type: string\n"))
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	f, _ := v.Get("x")
	if f.Cardinality != Single {
		t.Errorf("default cardinality: got %d, want %d", f.Cardinality, Single)
	}
}

func TestValidate(t *testing.T) {
	v := Default()
	problems := v.Validate(map[string]int{
		ID:            1,
		FullRecord:    1,
		HierarchyType: 1,
		Topic:         3,
	})
	if len(problems) != 0 {
		t.Errorf("expected no problems, got %v", problems)
	}

	problems = v.Validate(map[string]int{
		ID:        2,
		"bogus_s": 1,
	})
	joined := strings.Join(problems, "\n")
	for _, want := range []string{`missing required field "fullrecord"`, `unknown field "bogus_s"`, `field "id" is single-valued`} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected problem %q in %v", want, problems)
		}
	}
}
