package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fields.yaml
var embeddedFields []byte

// Vocabulary holds the output field definitions in declaration order.
type Vocabulary struct {
	fields []*Field
	index  map[string]*Field
}

// vocabularyConfig is the YAML file layout.
type vocabularyConfig struct {
	Version string  `yaml:"version"`
	Fields  []Field `yaml:"fields"`
}

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
)

// Default returns the embedded vocabulary. It panics if the embedded file is
// broken, which the package tests guard against.
func Default() *Vocabulary {
	defaultOnce.Do(func() {
		v, err := LoadFromYAML(embeddedFields)
		if err != nil {
			panic(fmt.Sprintf("schema: embedded fields.yaml: %v", err))
		}
		defaultVocab = v
	})
	return defaultVocab
}

// LoadFromYAML builds a vocabulary from YAML bytes.
func LoadFromYAML(data []byte) (*Vocabulary, error) {
	var config vocabularyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	v := &Vocabulary{index: make(map[string]*Field, len(config.Fields))}
	for i := range config.Fields {
		f := &config.Fields[i]
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		if _, dup := v.index[f.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", f.Name)
		}
		if f.Cardinality == 0 {
			f.Cardinality = Single
		}
		v.fields = append(v.fields, f)
		v.index[f.Name] = f
	}
	return v, nil
}

// LoadFromPath loads a vocabulary from a YAML file.
func LoadFromPath(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	v, err := LoadFromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return v, nil
}

// Get retrieves a field definition.
func (v *Vocabulary) Get(name string) (*Field, bool) {
	f, ok := v.index[name]
	return f, ok
}

// Has checks if a field exists.
func (v *Vocabulary) Has(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Fields returns the definitions in declaration order.
func (v *Vocabulary) Fields() []*Field {
	return v.fields
}

// Names returns all field names in declaration order.
func (v *Vocabulary) Names() []string {
	names := make([]string, len(v.fields))
	for i, f := range v.fields {
		names[i] = f.Name
	}
	return names
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
