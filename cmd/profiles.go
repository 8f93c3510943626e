package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/findingaid/mapping"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage mapping profiles",
	Long: `List and inspect mapping profiles.

Profiles set the localtype and label markers, title and author options,
record elements and usage rights rules of a mapping run. Embedded profiles
can be extended by YAML files in ~/.findingaid/profiles/ (or
$FINDINGAID_PROFILE_DIR).`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := profileRegistry()
		if err != nil {
			return err
		}
		return listProfiles(cmd.OutOrStdout(), registry)
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Show a resolved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := profileRegistry()
		if err != nil {
			return err
		}
		profile, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown profile: %s", args[0])
		}

		out, err := yaml.Marshal(profile)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func listProfiles(w io.Writer, registry *mapping.ProfileRegistry) error {
	names := registry.List()
	if len(names) == 0 {
		fmt.Fprintln(w, "No profiles found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEXTENDS\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t-------\t-----------")
	for _, name := range names {
		profile, ok := registry.Get(name)
		if !ok {
			fmt.Fprintf(tw, "%s\t?\terror resolving\n", name)
			continue
		}
		extends := "-"
		if raw, ok := registry.Raw(name); ok && raw.Extends != "" {
			extends = raw.Extends
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", profile.VersionedName(), extends, profile.Description)
	}
	return tw.Flush()
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
}
