package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/findingaid/schema"
)

var fieldsJSON bool

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the output fields the mapper can emit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFields(cmd.OutOrStdout(), schema.Default(), fieldsJSON)
	},
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "Output as JSON")
}

func printFields(w io.Writer, vocab *schema.Vocabulary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(vocab.Fields())
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tVALUES\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t----\t------\t-----------")
	for _, f := range vocab.Fields() {
		values := "single"
		if f.IsMultiValue() {
			values = "multi"
		}
		if f.Required {
			values += ", required"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, f.Type, values, f.Description)
	}
	return tw.Flush()
}
