package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"telepilot/internal/device"
)

// pressButtons is the vocabulary accepted by the press command, in help
// order. home_double is the app-switcher gesture, not a real button.
var pressButtons = []string{
	"up", "down", "left", "right", "select", "menu", "home", "home_double",
	"play", "pause", "play_pause", "stop", "next", "previous",
}

var pressCmd = &cobra.Command{
	Use:   "press [touche]",
	Short: "Appuie sur une touche de la telecommande",
	Long: fmt.Sprintf(`Appuie sur une touche de la telecommande de l'appareil cible.

Touches disponibles: %v`, pressButtons),
	Args:      cobra.ExactArgs(1),
	ValidArgs: pressButtons,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		known := false
		for _, b := range pressButtons {
			if b == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("touche inconnue '%s' (touches valides: %v)", name, pressButtons)
		}

		return withDevice(func(ctx context.Context, dev device.Controller) error {
			return pressOnDevice(ctx, dev, name)
		})
	},
}

// pressOnDevice gates the button behind its feature, then presses it.
// home_double is two Home presses 150ms apart.
func pressOnDevice(ctx context.Context, dev device.Controller, name string) error {
	if name == "home_double" {
		if err := device.RequireFeature(dev, device.FeatureHome); err != nil {
			return err
		}
		if err := dev.PressButton(ctx, device.ButtonHome); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(150 * time.Millisecond):
		}
		return dev.PressButton(ctx, device.ButtonHome)
	}

	button := device.Button(name)
	if err := device.RequireFeature(dev, device.ButtonFeature(button)); err != nil {
		return err
	}
	return dev.PressButton(ctx, button)
}

func init() {
	rootCmd.AddCommand(pressCmd)
}
