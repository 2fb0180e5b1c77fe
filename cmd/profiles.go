package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/marc2bib/mapping"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage mapping profiles",
	Long: `List and inspect mapping profiles used for conversions.

Embedded profiles ship with marc2bib. Profiles in ~/.config/marc2bib/profiles
(or --profiles-dir) are loaded on top and replace embedded profiles of the
same name.`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		profiles := registry.List()
		if len(profiles) == 0 {
			fmt.Fprintln(out, "No profiles found")
			return nil
		}

		fmt.Fprintln(out, "Available profiles:")
		for _, name := range profiles {
			profile, _ := registry.Get(name)
			desc := ""
			if profile.Description != "" {
				desc = " - " + profile.Description
			}
			fmt.Fprintf(out, "  %s%s\n", name, desc)
		}

		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := lookupProfile(args[0])
		if err != nil {
			return err
		}

		// Print as YAML
		out, err := yaml.Marshal(profile)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var profilesFieldsCmd = &cobra.Command{
	Use:   "fields [profile]",
	Short: "List fields in a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := lookupProfile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Fields in %s profile:\n\n", profile.Name)
		fmt.Fprintf(out, "%-12s -> %-20s %s\n", "BibTeX Field", "MARC Source", "Options")
		fmt.Fprintf(out, "%-12s    %-20s %s\n", "------------", "-----------", "-------")

		for _, name := range sortedKeys(profile.Fields) {
			m := profile.Fields[name]
			fmt.Fprintf(out, "%-12s -> %-20s %s\n", name, describeSource(m), describeOptions(m))
		}

		return nil
	},
}

func lookupProfile(name string) (*mapping.Profile, error) {
	registry, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	profile, ok := registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}
	return profile, nil
}

// sortedKeys returns map keys in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func describeSource(m mapping.FieldMapping) string {
	switch {
	case m.Skip:
		return "(skipped)"
	case len(m.Tags) == 0:
		return "(built-in)"
	}
	return strings.Join(m.Tags, "/") + " $" + m.GetSubfield()
}

func describeOptions(m mapping.FieldMapping) string {
	var opts []string
	if m.Ind1 != "" || m.Ind2 != "" {
		opts = append(opts, fmt.Sprintf("ind=%q/%q", m.Ind1, m.Ind2))
	}
	if m.All {
		opts = append(opts, fmt.Sprintf("all join=%q", m.GetJoin()))
	}
	if m.Pattern != "" {
		opts = append(opts, "pattern="+m.Pattern)
	}
	if m.Remove != "" {
		opts = append(opts, fmt.Sprintf("remove=%q", m.Remove))
	}
	if m.TrimLeft != "" {
		opts = append(opts, fmt.Sprintf("trim_left=%q", m.TrimLeft))
	}
	if m.TrimRight != "" {
		opts = append(opts, fmt.Sprintf("trim_right=%q", m.TrimRight))
	}
	return strings.Join(opts, ", ")
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesFieldsCmd)
}
