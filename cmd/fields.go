package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/marc2bib/tagfunc"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List built-in tag functions",
	Long: `List the built-in tag functions and the MARC data they read.

Fields marked "default" are part of every entry. Others can be requested
with convert --field or a profile mapping without tags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults := tagfunc.Defaults()
		sources := tagfunc.Sources()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-10s %-8s %s\n", "Field", "Default", "Source")
		fmt.Fprintf(out, "%-10s %-8s %s\n", "-----", "-------", "------")
		for _, name := range tagfunc.Known().Names() {
			def := ""
			if _, ok := defaults[name]; ok {
				def = "yes"
			}
			fmt.Fprintf(out, "%-10s %-8s %s\n", name, def, sources[name])
		}
		return nil
	},
}
