package cmd

import (
	"sort"

	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Affiche la table des alias d'applications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}

		table, err := d.store.Apps()
		if err != nil {
			return err
		}

		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			cmd.Printf("%-12s %s\n", name, table[name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(appsCmd)
}
