package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/record"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit mapped records for coverage",
	Long:  `Audit commands report how well a finding aid fills the output vocabulary.`,
}

// auditFieldsCmd reports field coverage across records
var auditFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Report how many records fill each output field",
	Long: `Maps every record and reports, for each output field:
- how many records carry it, with example values
- fields that are never filled (often a wrong profile marker)
- fields filled by fewer records than the threshold

Example:
  findingaid audit fields -i finding-aid.xml
  findingaid audit fields -i finding-aid.xml --threshold 25 --json`,
	Args: cobra.NoArgs,
	RunE: runAuditFields,
}

// FieldAuditReport contains the results of a field coverage audit.
type FieldAuditReport struct {
	TotalRecords int                   `json:"total_records"`
	Unidentified int                   `json:"unidentified"`
	Coverage     map[string]FieldStats `json:"coverage"`
	Unfilled     []string              `json:"unfilled"`
	Sparse       []string              `json:"sparse"`
}

// FieldStats tracks statistics for a single output field.
type FieldStats struct {
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	Values     int      `json:"values"`
	Examples   []string `json:"examples,omitempty"`
}

func init() {
	auditCmd.AddCommand(auditFieldsCmd)

	auditFieldsCmd.Flags().StringP("input", "i", "", "Input file (default: stdin)")
	auditFieldsCmd.Flags().StringP("profile", "p", mapping.DefaultProfileName, "Mapping profile name")
	auditFieldsCmd.Flags().Float64("threshold", 50.0, "Percentage below which a filled field is reported as sparse")
	auditFieldsCmd.Flags().IntP("examples", "e", 3, "Number of example values to include")
	auditFieldsCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	auditFieldsCmd.Flags().Bool("json", false, "Output as JSON")
}

func runAuditFields(cmd *cobra.Command, args []string) (err error) {
	inputPath, _ := cmd.Flags().GetString("input")
	profileName, _ := cmd.Flags().GetString("profile")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	maxExamples, _ := cmd.Flags().GetInt("examples")
	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	input, inputName, closeInput, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeInput(); cerr != nil && err == nil {
			err = fmt.Errorf("closing input file: %w", cerr)
		}
	}()

	profile, err := loadProfile(profileName, "")
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	docs, err := parseDocuments(input, inputName, profile.GetRecordElements(), slog.Default())
	if err != nil {
		return err
	}
	result, err := mapDocuments(newMapper(profile, mapperSettings{}, slog.Default()), docs, false, slog.Default())
	if err != nil {
		return err
	}

	report := auditFields(result.Records, schema.Default(), threshold, maxExamples)
	report.Unidentified = len(result.Skipped)

	var output []byte
	if jsonOutput {
		output, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
	} else {
		output = []byte(formatFieldReport(report))
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, output, 0644)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), string(output)+"\n")
	return err
}

func auditFields(records []*record.Record, vocab *schema.Vocabulary, threshold float64, maxExamples int) *FieldAuditReport {
	report := &FieldAuditReport{
		TotalRecords: len(records),
		Coverage:     make(map[string]FieldStats),
	}

	for _, rec := range records {
		for _, name := range rec.Names() {
			stats := report.Coverage[name]
			values := rec.Strings(name)
			stats.Count++
			stats.Values += len(values)
			for _, v := range values {
				if len(stats.Examples) >= maxExamples {
					break
				}
				if len(v) < 100 && !slices.Contains(stats.Examples, v) {
					stats.Examples = append(stats.Examples, v)
				}
			}
			report.Coverage[name] = stats
		}
	}

	for name, stats := range report.Coverage {
		if report.TotalRecords > 0 {
			stats.Percentage = float64(stats.Count) / float64(report.TotalRecords) * 100
		}
		report.Coverage[name] = stats
		if stats.Percentage < threshold {
			report.Sparse = append(report.Sparse, name)
		}
	}
	sort.Strings(report.Sparse)

	for _, name := range vocab.Names() {
		if _, ok := report.Coverage[name]; !ok {
			report.Unfilled = append(report.Unfilled, name)
		}
	}

	return report
}

func formatFieldReport(report *FieldAuditReport) string {
	var sb strings.Builder

	sb.WriteString("=== Field Coverage Report ===\n\n")
	sb.WriteString(fmt.Sprintf("Total records: %d\n", report.TotalRecords))
	sb.WriteString(fmt.Sprintf("Unidentified records: %d\n\n", report.Unidentified))

	if len(report.Unfilled) > 0 {
		sb.WriteString("UNFILLED FIELDS (no record carries them):\n")
		for _, name := range report.Unfilled {
			sb.WriteString(fmt.Sprintf("  - %s\n", name))
		}
		sb.WriteString("\n")
	}

	if len(report.Sparse) > 0 {
		sb.WriteString("SPARSE FIELDS:\n")
		for _, name := range report.Sparse {
			stats := report.Coverage[name]
			sb.WriteString(fmt.Sprintf("  - %s: %d records (%.1f%%)\n", name, stats.Count, stats.Percentage))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("ALL FIELDS BY FREQUENCY:\n")

	type kv struct {
		key   string
		stats FieldStats
	}
	var sorted []kv
	for k, v := range report.Coverage {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].stats.Count != sorted[j].stats.Count {
			return sorted[i].stats.Count > sorted[j].stats.Count
		}
		return sorted[i].key < sorted[j].key
	})

	for _, item := range sorted {
		sb.WriteString(fmt.Sprintf("  %s: %d (%.1f%%)\n", item.key, item.stats.Count, item.stats.Percentage))
		if len(item.stats.Examples) > 0 {
			sb.WriteString(fmt.Sprintf("    examples: %s\n", strings.Join(item.stats.Examples, ", ")))
		}
	}

	return sb.String()
}
