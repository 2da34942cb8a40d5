package cmd

import (
	"github.com/spf13/cobra"

	"telepilot/internal/device"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Recherche les appareils sur le reseau local",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		scanner := device.NewRemoteScanner(d.cfg.RemoteBin, d.cfg.ScanTimeout)
		devices, err := scanner.Scan(ctx)
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			cmd.Println("Aucun appareil trouve sur le reseau")
			return nil
		}

		for _, info := range devices {
			cmd.Printf("%s  %s  %s\n", info.Name, info.Address, info.Identifier)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
