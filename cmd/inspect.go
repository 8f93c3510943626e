package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/record"
)

var (
	inspectInput       string
	inspectProfileName string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump mapped records for debugging",
	Long: `Map every record of an EAD3 document and dump the resulting
fields, in the order the mapper set them, with their value kinds.

Examples:
  findingaid inspect -i finding-aid.xml
  LOG_LEVEL=debug findingaid inspect -i finding-aid.xml`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "Input file (default: stdin)")
	inspectCmd.Flags().StringVarP(&inspectProfileName, "profile", "p", mapping.DefaultProfileName, "Mapping profile name")
}

// inspectedField is one field of a dumped record.
type inspectedField struct {
	Name  string
	Value record.Value
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func runInspect(cmd *cobra.Command, args []string) (err error) {
	input, inputName, closeInput, err := openInput(inspectInput)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeInput(); cerr != nil && err == nil {
			err = fmt.Errorf("closing input file: %w", cerr)
		}
	}()

	profile, err := loadProfile(inspectProfileName, "")
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

	for i, rec := range result.Records {
		dumpRecord(cmd.OutOrStdout(), i+1, rec)
	}
	return nil
}

func dumpRecord(w io.Writer, n int, rec *record.Record) {
	fields := make([]inspectedField, 0, rec.Len())
	for _, name := range rec.Names() {
		v, _ := rec.Get(name)
		fields = append(fields, inspectedField{Name: name, Value: v})
	}
	fmt.Fprintf(w, "=== Record %d ===\n", n)
	dumper.Fdump(w, fields)
}
