// Package record holds the flat output of mapping one finding-aid record:
// index field names to scalar, multi-valued or boolean values.
package record

import (
	"fmt"
	"slices"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lehigh-university-libraries/findingaid/schema"
)

// Kind distinguishes the value shapes a field can hold.
type Kind int

const (
	KindScalar Kind = iota
	KindList
	KindBool
)

// Value is one field value.
type Value struct {
	Kind  Kind
	Str   string
	Items []string
	Bool  bool
}

// Strings returns the value as a list of strings.
func (v Value) Strings() []string {
	switch v.Kind {
	case KindList:
		return v.Items
	case KindBool:
		if v.Bool {
			return []string{"true"}
		}
		return []string{"false"}
	default:
		return []string{v.Str}
	}
}

// Len is the number of values the field holds.
func (v Value) Len() int {
	if v.Kind == KindList {
		return len(v.Items)
	}
	return 1
}

// Record is an ordered mapping of field name to value. Fields keep the order
// in which they were first set.
type Record struct {
	order  []string
	fields map[string]Value
}

// New returns an empty record.
func New() *Record {
	return &Record{fields: make(map[string]Value)}
}

func (r *Record) put(name string, v Value) {
	if _, ok := r.fields[name]; !ok {
		r.order = append(r.order, name)
	}
	r.fields[name] = v
}

// Set stores a scalar. Empty strings are not stored.
func (r *Record) Set(name, s string) {
	if s == "" {
		return
	}
	r.put(name, Value{Kind: KindScalar, Str: s})
}

// SetList stores a list, replacing any previous value. Empty strings are
// dropped and an empty list is not stored.
func (r *Record) SetList(name string, values []string) {
	list := nonEmpty(values)
	if len(list) == 0 {
		return
	}
	r.put(name, Value{Kind: KindList, Items: list})
}

// Append adds values to a field, turning a scalar into a list.
func (r *Record) Append(name string, values ...string) {
	add := nonEmpty(values)
	if len(add) == 0 {
		return
	}
	cur, ok := r.fields[name]
	if !ok {
		r.put(name, Value{Kind: KindList, Items: add})
		return
	}
	list := slices.Clone(cur.Strings())
	r.put(name, Value{Kind: KindList, Items: append(list, add...)})
}

// SetBool stores a boolean.
func (r *Record) SetBool(name string, b bool) {
	r.put(name, Value{Kind: KindBool, Bool: b})
}

// Get returns a field value.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Has reports whether a field is present.
func (r *Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// String returns a scalar value, or the first value of a list.
func (r *Record) String(name string) string {
	v, ok := r.fields[name]
	if !ok {
		return ""
	}
	if v.Kind == KindList {
		if len(v.Items) == 0 {
			return ""
		}
		return v.Items[0]
	}
	return v.Strings()[0]
}

// Strings returns all values of a field, or nil.
func (r *Record) Strings(name string) []string {
	v, ok := r.fields[name]
	if !ok {
		return nil
	}
	return v.Strings()
}

// Delete removes a field.
func (r *Record) Delete(name string) {
	if _, ok := r.fields[name]; !ok {
		return
	}
	delete(r.fields, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
}

// Names returns field names in insertion order.
func (r *Record) Names() []string {
	return slices.Clone(r.order)
}

// Len is the number of fields.
func (r *Record) Len() int {
	return len(r.order)
}

// Counts maps each field to its number of values.
func (r *Record) Counts() map[string]int {
	counts := make(map[string]int, len(r.fields))
	for name, v := range r.fields {
		counts[name] = v.Len()
	}
	return counts
}

// Validate checks the record against a field vocabulary.
func (r *Record) Validate(vocab *schema.Vocabulary) []string {
	return vocab.Validate(r.Counts())
}

// ToStruct converts the record to a protobuf Struct. Fields declared
// multi-valued in the vocabulary are always emitted as lists.
func (r *Record) ToStruct(vocab *schema.Vocabulary) (*structpb.Struct, error) {
	fields := make(map[string]*structpb.Value, len(r.fields))
	for _, name := range r.order {
		v := r.fields[name]
		multi := v.Kind == KindList
		if vocab != nil {
			if f, ok := vocab.Get(name); ok {
				multi = f.IsMultiValue() && v.Kind != KindBool
			}
		}

		switch {
		case v.Kind == KindBool:
			fields[name] = structpb.NewBoolValue(v.Bool)
		case multi:
			items := v.Strings()
			list := make([]*structpb.Value, len(items))
			for i, s := range items {
				list[i] = structpb.NewStringValue(s)
			}
			fields[name] = structpb.NewListValue(&structpb.ListValue{Values: list})
		default:
			fields[name] = structpb.NewStringValue(strings.Join(v.Strings(), " "))
		}
	}
	return &structpb.Struct{Fields: fields}, nil
}

// MarshalJSON renders the record as a Solr document using the default
// vocabulary.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.JSON(schema.Default(), false)
}

// JSON renders the record through protojson, optionally indented.
func (r *Record) JSON(vocab *schema.Vocabulary, pretty bool) ([]byte, error) {
	s, err := r.ToStruct(vocab)
	if err != nil {
		return nil, err
	}
	opts := protojson.MarshalOptions{}
	if pretty {
		opts.Multiline = true
		opts.Indent = "  "
	}
	data, err := opts.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}
	return data, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
