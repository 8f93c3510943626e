package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/findingaid/document"
	"github.com/lehigh-university-libraries/findingaid/ead3"
	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/record"
)

const sniffLen = 4096

// openInput opens path, or stdin when path is empty. The returned close
// function is never nil.
func openInput(path string) (io.Reader, string, func() error, error) {
	if path == "" {
		return os.Stdin, "stdin", func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("opening input file: %w", err)
	}
	return f, path, f.Close, nil
}

// openOutput creates path, or returns stdout when path is empty.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

// userProfileDir is where profiles outside the binary are looked up.
func userProfileDir() string {
	if dir := os.Getenv("FINDINGAID_PROFILE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".findingaid", "profiles")
}

// profileRegistry returns the embedded profiles plus any in the user
// profile directory.
func profileRegistry() (*mapping.ProfileRegistry, error) {
	registry, err := mapping.NewProfileRegistry()
	if err != nil {
		return nil, err
	}
	dir := userProfileDir()
	if dir == "" {
		return registry, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return registry, nil
	}
	if err := registry.LoadFromDirectory(dir); err != nil {
		return nil, err
	}
	return registry, nil
}

// loadProfile resolves the profile named by name (default finna), with the
// profile in file merged over it. A file profile that extends another
// profile is resolved against the registry instead.
func loadProfile(name, file string) (*mapping.Profile, error) {
	registry, err := profileRegistry()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = mapping.DefaultProfileName
	}
	base, ok := registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s (not found in embedded profiles or %s)", name, userProfileDir())
	}
	if file == "" {
		return base, nil
	}

	custom, err := mapping.LoadProfile(file)
	if err != nil {
		return nil, err
	}
	if custom.Extends != "" {
		return registry.Resolve(custom)
	}
	return mapping.MergeProfiles(base, custom), nil
}

// mapperSettings are the command-line overrides of a profile.
type mapperSettings struct {
	Source           string
	NoSubtitlePrefix bool
}

func newMapper(profile *mapping.Profile, settings mapperSettings, log *slog.Logger) *ead3.Mapper {
	opts := ead3.DefaultOptions()
	opts.PrependTitleWithSubtitle = profile.PrependTitleWithSubtitle() && !settings.NoSubtitlePrefix
	opts.Source = profile.Source
	if settings.Source != "" {
		opts.Source = settings.Source
	}
	return ead3.NewMapper(ead3.WithProfile(profile), ead3.WithOptions(opts), ead3.WithLogger(log))
}

// parseDocuments splits the input into record elements. Input that does not
// look like EAD3 is still parsed, with a warning.
func parseDocuments(r io.Reader, name string, elements []string, log *slog.Logger) ([]*document.Node, error) {
	parser, err := format.GetParser("ead3")
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(r, sniffLen)
	if peek, _ := br.Peek(sniffLen); !parser.CanParse(peek) {
		log.Warn("input does not look like EAD3 XML", "source", name)
	}

	docs, err := parser.Parse(br, &format.ParseOptions{
		RecordElements: elements,
		SourceName:     name,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}
	return docs, nil
}

// mapResult is the outcome of mapping a batch of record elements.
type mapResult struct {
	Records []*record.Record
	Skipped []*ead3.IdentifierError
}

// mapDocuments maps docs in order. Records that cannot be identified are
// logged and skipped, or end the run when failFast is set.
func mapDocuments(m *ead3.Mapper, docs []*document.Node, failFast bool, log *slog.Logger) (*mapResult, error) {
	result := &mapResult{Records: make([]*record.Record, 0, len(docs))}
	for i, doc := range docs {
		rec, err := m.Map(doc)
		if err != nil {
			var idErr *ead3.IdentifierError
			if !errors.As(err, &idErr) {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}
			if failFast {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}
			log.Warn("skipping record", "index", i+1, "reason", idErr.Reason, "record", idErr.Raw)
			result.Skipped = append(result.Skipped, idErr)
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}
