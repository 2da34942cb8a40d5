package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Execute un scenario sur l'appareil cible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		d, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		if err := d.runner.RunScenario(ctx, viper.GetString("device"), name); err != nil {
			return err
		}

		cmd.Printf("Scenario '%s' execute avec succes\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
