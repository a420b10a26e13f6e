package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/dice-duel/manifest"
)

// listCmd prints the characters and stages of the catalog
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List characters and stages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		return printCatalog(cmd, cat)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func printCatalog(cmd *cobra.Command, cat *manifest.Catalog) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "CHARACTER\tIMPORT\tANIMATIONS\tSOUNDS\tPARTICLES")
	for _, name := range cat.Names() {
		ch, err := cat.Character(name)
		if err != nil {
			return err
		}
		keys := make([]string, len(ch.Animations))
		for i, a := range ch.Animations {
			keys[i] = a.Key
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			manifest.DisplayName(ch.Name), ch.ImportMethod, strings.Join(keys, ","), len(ch.Sounds), len(ch.Particles))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "STAGE\tTYPE\tBGM\tCOMPONENTS")
	for _, st := range cat.Stages() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", manifest.DisplayName(st.Name), st.Type, st.BGM, len(st.Components))
	}
	return w.Flush()
}
