package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

var (
	validateInput       string
	validateProfileName string
	validateVerbose     bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Map records and check them against the field vocabulary",
	Long: `Map every record of an EAD3 document without writing output and
report records that cannot be identified or that break the field
vocabulary (unknown fields, missing required fields, repeated single-valued
fields).

Input defaults to stdin.

Examples:
  findingaid validate -i finding-aid.xml
  findingaid validate -i finding-aid.xml --verbose`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Input file (default: stdin)")
	validateCmd.Flags().StringVarP(&validateProfileName, "profile", "p", mapping.DefaultProfileName, "Mapping profile name")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Show every record")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	input, inputName, closeInput, err := openInput(validateInput)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeInput(); cerr != nil && err == nil {
			err = fmt.Errorf("closing input file: %w", cerr)
		}
	}()

	profile, err := loadProfile(validateProfileName, "")
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	report, err := validate(input, inputName, profile, slog.Default())
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	report.print(cmd.OutOrStdout(), validateVerbose)

	if n := report.invalid(); n > 0 {
		return fmt.Errorf("validation failed: %d of %d records invalid", n, report.Total)
	}
	return nil
}

type recordReport struct {
	ID       string
	Fields   int
	Problems []string
}

type validationReport struct {
	Source       string
	Total        int
	Records      []recordReport
	Unidentified []string
}

func (r *validationReport) invalid() int {
	n := len(r.Unidentified)
	for _, rec := range r.Records {
		if len(rec.Problems) > 0 {
			n++
		}
	}
	return n
}

func (r *validationReport) print(w io.Writer, verbose bool) {
	if r.invalid() == 0 {
		fmt.Fprintf(w, "✓ Valid: mapped %d records from %s\n", r.Total, r.Source)
	} else {
		fmt.Fprintf(w, "✗ %d of %d records from %s are invalid\n", r.invalid(), r.Total, r.Source)
	}

	for _, rec := range r.Records {
		if !verbose && len(rec.Problems) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n  %s: %d fields\n", rec.ID, rec.Fields)
		for _, p := range rec.Problems {
			fmt.Fprintf(w, "    - %s\n", p)
		}
	}
	for _, reason := range r.Unidentified {
		fmt.Fprintf(w, "\n  (no identifier): %s\n", reason)
	}
}

// validate maps every record of input and checks it against the default
// vocabulary.
func validate(input io.Reader, inputName string, profile *mapping.Profile, log *slog.Logger) (*validationReport, error) {
	docs, err := parseDocuments(input, inputName, profile.GetRecordElements(), log)
	if err != nil {
		return nil, err
	}

	result, err := mapDocuments(newMapper(profile, mapperSettings{}, log), docs, false, log)
	if err != nil {
		return nil, err
	}

	report := &validationReport{Source: inputName, Total: len(docs)}
	vocab := schema.Default()
	for _, rec := range result.Records {
		report.Records = append(report.Records, checkRecord(rec, vocab))
	}
	for _, idErr := range result.Skipped {
		report.Unidentified = append(report.Unidentified, idErr.Reason)
	}
	return report, nil
}

func checkRecord(rec *record.Record, vocab *schema.Vocabulary) recordReport {
	return recordReport{
		ID:       rec.String(schema.ID),
		Fields:   rec.Len(),
		Problems: rec.Validate(vocab),
	}
}
