package format

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry holds registered formats by lowercase name.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// DefaultRegistry is the global format registry plugins register with.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
	}
}

// Register adds a format, replacing any format of the same name.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[strings.ToLower(f.Name())] = f
}

// Get retrieves a format by name.
func (r *Registry) Get(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formats[strings.ToLower(name)]
	return f, ok
}

func lookup[T Format](r *Registry, name, capability string) (T, error) {
	var zero T
	f, ok := r.Get(name)
	if !ok {
		return zero, fmt.Errorf("unknown format: %s", name)
	}
	t, ok := f.(T)
	if !ok {
		return zero, fmt.Errorf("format %s does not support %s", name, capability)
	}
	return t, nil
}

// GetParser retrieves an input format by name.
func (r *Registry) GetParser(name string) (Parser, error) {
	return lookup[Parser](r, name, "parsing")
}

// GetSerializer retrieves an output format by name.
func (r *Registry) GetSerializer(name string) (Serializer, error) {
	return lookup[Serializer](r, name, "serialization")
}

// List returns all registered format names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Serializers returns the sorted names of formats that can write records.
func (r *Registry) Serializers() []string {
	var names []string
	for _, name := range r.List() {
		if _, err := r.GetSerializer(name); err == nil {
			names = append(names, name)
		}
	}
	return names
}

// SerializerFor picks the output format whose extensions include the
// extension of filename.
func (r *Registry) SerializerFor(filename string) (Serializer, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return nil, fmt.Errorf("no extension in %q", filename)
	}
	for _, name := range r.Serializers() {
		s, _ := r.GetSerializer(name)
		if slices.Contains(s.Extensions(), ext) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no output format for .%s files", ext)
}

// Register adds a format to the default registry.
func Register(f Format) {
	DefaultRegistry.Register(f)
}

// Get retrieves a format from the default registry.
func Get(name string) (Format, bool) {
	return DefaultRegistry.Get(name)
}

// GetParser retrieves a parser from the default registry.
func GetParser(name string) (Parser, error) {
	return DefaultRegistry.GetParser(name)
}

// GetSerializer retrieves a serializer from the default registry.
func GetSerializer(name string) (Serializer, error) {
	return DefaultRegistry.GetSerializer(name)
}

// SerializerFor picks an output format by file extension from the default
// registry.
func SerializerFor(filename string) (Serializer, error) {
	return DefaultRegistry.SerializerFor(filename)
}
