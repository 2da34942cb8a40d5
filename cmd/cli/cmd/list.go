package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Liste les scenarios configures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}

		set, err := d.store.Scenarios()
		if err != nil {
			return err
		}

		if len(set) == 0 {
			cmd.Println("Aucun scenario configure")
			return nil
		}

		for _, name := range set.Names() {
			sc := set[name]
			if sc.Description != "" {
				cmd.Printf("%s - %s (%d etapes)\n", name, sc.Description, len(sc.Steps))
			} else {
				cmd.Printf("%s (%d etapes)\n", name, len(sc.Steps))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
