package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"telepilot/internal/apps"
	"telepilot/internal/device"
)

var launchCmd = &cobra.Command{
	Use:   "launch [app]",
	Short: "Lance une application sur l'appareil cible",
	Long: `Lance une application sur l'appareil cible.

L'argument est un alias connu (netflix, youtube, ...) ou directement un
identifiant de bundle (com.netflix.Netflix).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		d, err := buildDeps()
		if err != nil {
			return err
		}
		bundleID := apps.NewResolver(d.store).Bundle(name)

		return withDevice(func(ctx context.Context, dev device.Controller) error {
			if err := device.RequireFeature(dev, device.FeatureLaunchApp); err != nil {
				return err
			}
			if err := dev.LaunchApp(ctx, bundleID); err != nil {
				return err
			}
			cmd.Printf("Application '%s' lancee (%s)\n", name, bundleID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
}
