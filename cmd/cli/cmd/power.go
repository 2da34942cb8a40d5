package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"telepilot/internal/device"
)

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Allume l'appareil cible",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(ctx context.Context, dev device.Controller) error {
			if err := device.RequireFeature(dev, device.FeatureTurnOn); err != nil {
				return err
			}
			if err := dev.TurnOn(ctx); err != nil {
				return err
			}
			cmd.Println("Appareil allume")
			return nil
		})
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Eteint l'appareil cible",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(ctx context.Context, dev device.Controller) error {
			if err := device.RequireFeature(dev, device.FeatureTurnOff); err != nil {
				return err
			}
			if err := dev.TurnOff(ctx); err != nil {
				return err
			}
			cmd.Println("Appareil eteint")
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Affiche l'etat d'alimentation de l'appareil cible",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(ctx context.Context, dev device.Controller) error {
			state, err := powerStateOnDevice(ctx, dev)
			if err != nil {
				return err
			}
			cmd.Printf("Etat: %s\n", state)
			return nil
		})
	},
}

// powerStateOnDevice gates the power-state query behind its feature.
func powerStateOnDevice(ctx context.Context, dev device.Controller) (string, error) {
	if err := device.RequireFeature(dev, device.FeaturePowerState); err != nil {
		return "", err
	}
	return dev.PowerState(ctx)
}

func init() {
	rootCmd.AddCommand(onCmd)
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(statusCmd)
}
