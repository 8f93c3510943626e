package mapping

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var embeddedProfiles embed.FS

// DefaultProfileName is the profile used when none is requested.
const DefaultProfileName = "finna"

// ProfileRegistry holds loaded profiles.
type ProfileRegistry struct {
	profiles map[string]*Profile
}

// NewProfileRegistry creates a new profile registry with embedded profiles loaded.
func NewProfileRegistry() (*ProfileRegistry, error) {
	r := &ProfileRegistry{
		profiles: make(map[string]*Profile),
	}

	entries, err := embeddedProfiles.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("reading embedded profiles: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := embeddedProfiles.ReadFile("profiles/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded profile %s: %w", entry.Name(), err)
		}

		profile, err := parseProfile(data)
		if err != nil {
			return nil, fmt.Errorf("embedded profile %s: %w", entry.Name(), err)
		}

		// Use filename without extension as profile name if not set
		if profile.Name == "" {
			profile.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		r.profiles[profile.Name] = profile
	}

	return r, nil
}

// LoadProfile loads a profile from a file path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	profile, err := parseProfile(data)
	if err != nil {
		return nil, err
	}
	if profile.Name == "" {
		profile.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return profile, nil
}

// LoadProfileFromString loads a profile from YAML content.
func LoadProfileFromString(content string) (*Profile, error) {
	return parseProfile([]byte(content))
}

func parseProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile YAML: %w", err)
	}
	if profile.UsageRights != nil {
		if err := profile.UsageRights.Validate(); err != nil {
			return nil, fmt.Errorf("usage rights: %w", err)
		}
	}
	return &profile, nil
}

// Get retrieves a profile by name with any Extends chain merged in.
func (r *ProfileRegistry) Get(name string) (*Profile, bool) {
	p, ok := r.profiles[name]
	if !ok {
		return nil, false
	}
	resolved, err := r.Resolve(p)
	if err != nil {
		return nil, false
	}
	return resolved, true
}

// Raw returns a profile as registered, without resolving Extends.
func (r *ProfileRegistry) Raw(name string) (*Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// Resolve merges a profile over the profile it extends.
func (r *ProfileRegistry) Resolve(p *Profile) (*Profile, error) {
	seen := map[string]bool{p.Name: true}
	result := p
	for result.Extends != "" {
		if seen[result.Extends] {
			return nil, fmt.Errorf("profile %q: extends cycle at %q", p.Name, result.Extends)
		}
		seen[result.Extends] = true
		base, ok := r.profiles[result.Extends]
		if !ok {
			return nil, fmt.Errorf("profile %q extends unknown profile %q", p.Name, result.Extends)
		}
		merged := MergeProfiles(base, result)
		merged.Extends = base.Extends
		result = merged
	}
	return result, nil
}

// Register adds a profile to the registry.
func (r *ProfileRegistry) Register(profile *Profile) {
	r.profiles[profile.Name] = profile
}

// List returns all registered profile names, sorted.
func (r *ProfileRegistry) List() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFromDirectory loads all profiles from a directory.
func (r *ProfileRegistry) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading profile directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		profile, err := LoadProfile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		r.profiles[profile.Name] = profile
	}

	return nil
}

// MergeProfiles merges a custom profile over a base profile.
// Custom values override base values; unset custom values inherit.
func MergeProfiles(base, custom *Profile) *Profile {
	merged := &Profile{
		Name:           custom.Name,
		Extends:        custom.Extends,
		Version:        custom.Version,
		Description:    custom.Description,
		Source:         custom.Source,
		RecordElements: custom.RecordElements,
		Markers:        base.Markers,
		Options:        base.Options,
		UsageRights:    base.UsageRights,
	}

	if merged.Name == "" {
		merged.Name = base.Name
	}
	if merged.Version == "" {
		merged.Version = base.Version
	}
	if merged.Description == "" {
		merged.Description = base.Description
	}
	if merged.Source == "" {
		merged.Source = base.Source
	}
	if len(merged.RecordElements) == 0 {
		merged.RecordElements = base.RecordElements
	}
	if custom.UsageRights != nil {
		merged.UsageRights = custom.UsageRights
	}

	// Merge markers
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&merged.Markers.TechnicalLabel, custom.Markers.TechnicalLabel)
	override(&merged.Markers.AnalogLabel, custom.Markers.AnalogLabel)
	override(&merged.Markers.PrimaryName, custom.Markers.PrimaryName)
	override(&merged.Markers.AlternativeName, custom.Markers.AlternativeName)
	override(&merged.Markers.DeprecatedName, custom.Markers.DeprecatedName)
	override(&merged.Markers.ThumbnailRole, custom.Markers.ThumbnailRole)
	override(&merged.Markers.Placeholder, custom.Markers.Placeholder)
	if len(custom.Markers.DigitizedFormats) > 0 {
		merged.Markers.DigitizedFormats = custom.Markers.DigitizedFormats
	}

	// Merge options
	if custom.Options.PrependTitleWithSubtitle != nil {
		merged.Options.PrependTitleWithSubtitle = custom.Options.PrependTitleWithSubtitle
	}
	if custom.Options.AuthorVariantFallthrough != nil {
		merged.Options.AuthorVariantFallthrough = custom.Options.AuthorVariantFallthrough
	}
	if custom.Options.AssignTitleSub {
		merged.Options.AssignTitleSub = true
	}
	override(&merged.Options.CSVDelimiter, custom.Options.CSVDelimiter)
	override(&merged.Options.MultiValueSeparator, custom.Options.MultiValueSeparator)

	return merged
}
