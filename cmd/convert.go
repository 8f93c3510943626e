package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/mapping"
)

var (
	inputFile        string
	outputFile       string
	outputFormat     string
	profileName      string
	profileFile      string
	sourceLabel      string
	noSubtitlePrefix bool
	recordElements   []string
	columns          []string
	multiValueSep    string
	pretty           bool
	failFast         bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Map EAD3 records to search index documents",
	Long: `Map the archdesc and component records of an EAD3 document to
search index documents.

Input defaults to stdin, output defaults to stdout. Records without a
technical identifier are logged and skipped unless --fail-fast is set.

Examples:
  # EAD3 to Solr JSON (stdin to stdout)
  cat finding-aid.xml | findingaid convert

  # Input and output files
  findingaid convert -i finding-aid.xml -o docs.json --source Kansallisarkisto

  # Spreadsheet of selected fields
  findingaid convert -i finding-aid.xml -t csv --columns id,title,unit_daterange`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().StringVarP(&outputFormat, "to", "t", "solrjson", "Output format (solrjson, jsonl, solrxml, csv; default: by --output extension, then solrjson)")
	convertCmd.Flags().StringVarP(&profileName, "profile", "p", mapping.DefaultProfileName, "Mapping profile name")
	convertCmd.Flags().StringVar(&profileFile, "profile-file", "", "Custom profile YAML file merged over --profile")
	convertCmd.Flags().StringVar(&sourceLabel, "source", os.Getenv("FINDINGAID_SOURCE"), "Source label (env FINDINGAID_SOURCE)")
	convertCmd.Flags().BoolVar(&noSubtitlePrefix, "no-subtitle-prefix", false, "Do not prepend title_sub to title")
	convertCmd.Flags().StringSliceVar(&recordElements, "record-element", nil, "Element names treated as records (default: archdesc, c)")
	convertCmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "CSV columns to output")
	convertCmd.Flags().StringVar(&multiValueSep, "separator", "", "Multi-value separator for CSV (default: profile, then \"|\")")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON and XML output")
	convertCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first record that cannot be identified")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	serializer, err := format.GetSerializer(outputFormat)
	if err != nil {
		return fmt.Errorf("unknown target format %q: %w", outputFormat, err)
	}
	if outputFile != "" && !cmd.Flags().Changed("to") {
		if s, err := format.SerializerFor(outputFile); err == nil {
			serializer = s
		}
	}

	profile, err := loadProfile(profileName, profileFile)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	if len(recordElements) > 0 {
		profile.RecordElements = recordElements
	}

	input, inputName, closeInput, err := openInput(inputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeInput(); cerr != nil && err == nil {
			err = fmt.Errorf("closing input file: %w", cerr)
		}
	}()

	output, closeOutput, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	cfg := convertConfig{
		Profile:    profile,
		Settings:   mapperSettings{Source: sourceLabel, NoSubtitlePrefix: noSubtitlePrefix},
		Serializer: serializer,
		Serialize: &format.SerializeOptions{
			Profile:             profile,
			Columns:             columns,
			MultiValueSeparator: multiValueSep,
			IncludeHeader:       true,
			Pretty:              pretty,
		},
		FailFast: failFast,
	}
	stats, err := convert(input, inputName, output, cfg, slog.Default())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Mapped %d records (%d skipped)\n", stats.mapped, stats.skipped)
	return nil
}

type convertConfig struct {
	Profile    *mapping.Profile
	Settings   mapperSettings
	Serializer format.Serializer
	Serialize  *format.SerializeOptions
	FailFast   bool
}

type convertStats struct {
	mapped  int
	skipped int
}

// convert maps every record element of input and writes the records to
// output.
func convert(input io.Reader, inputName string, output io.Writer, cfg convertConfig, log *slog.Logger) (convertStats, error) {
	docs, err := parseDocuments(input, inputName, cfg.Profile.GetRecordElements(), log)
	if err != nil {
		return convertStats{}, err
	}
	log.Debug("parsed input", "source", inputName, "records", len(docs))

	mapper := newMapper(cfg.Profile, cfg.Settings, log)
	result, err := mapDocuments(mapper, docs, cfg.FailFast, log)
	if err != nil {
		return convertStats{}, err
	}

	if err := cfg.Serializer.Serialize(output, result.Records, cfg.Serialize); err != nil {
		return convertStats{}, fmt.Errorf("serializing output: %w", err)
	}
	return convertStats{mapped: len(result.Records), skipped: len(result.Skipped)}, nil
}
