package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"telepilot/internal/device"
)

var volumeCmd = &cobra.Command{
	Use:   "volume [up|down|set N]",
	Short: "Regle le volume de l'appareil cible",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(ctx context.Context, dev device.Controller) error {
			return volumeOnDevice(ctx, dev, args)
		})
	},
}

// volumeOnDevice gates each volume primitive behind its feature before
// invoking it.
func volumeOnDevice(ctx context.Context, dev device.Controller, args []string) error {
	switch args[0] {
	case "up":
		if err := device.RequireFeature(dev, device.FeatureVolumeUp); err != nil {
			return err
		}
		return dev.VolumeUp(ctx)
	case "down":
		if err := device.RequireFeature(dev, device.FeatureVolumeDown); err != nil {
			return err
		}
		return dev.VolumeDown(ctx)
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("volume set requiert un niveau (0-100)")
		}
		level, err := strconv.Atoi(args[1])
		if err != nil || level < 0 || level > 100 {
			return fmt.Errorf("niveau de volume invalide '%s' (attendu: 0-100)", args[1])
		}
		if err := device.RequireFeature(dev, device.FeatureSetVolume); err != nil {
			return err
		}
		return dev.SetVolume(ctx, level)
	default:
		return fmt.Errorf("sous-commande volume inconnue '%s' (attendu: up, down, set)", args[0])
	}
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}
