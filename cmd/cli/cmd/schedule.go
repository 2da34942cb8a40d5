package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"telepilot/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Gere les planifications de scenarios",
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Liste les planifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}

		entries, err := d.store.Schedules()
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			cmd.Println("Aucune planification configuree")
			return nil
		}

		for i, e := range entries {
			state := "active"
			if !e.Enabled {
				state = "inactive"
			}
			cmd.Printf("[%d] %s sur %s a %s (%s) - %s\n",
				i, e.Scenario, e.Device, e.TimeString(), e.WeekdaysString(), state)
		}
		return nil
	},
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Ajoute une planification",
	Long: `Ajoute une planification de scenario.

Les jours sont numerotes de 0 (dimanche) a 6 (samedi); sans --days la
planification se declenche tous les jours.

Exemple:
  telepilot schedule add --scenario netflix_profil1 --time 20:00 --days 2,6`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioName, _ := cmd.Flags().GetString("scenario")
		timeSpec, _ := cmd.Flags().GetString("time")
		daysSpec, _ := cmd.Flags().GetString("days")

		if scenarioName == "" {
			return fmt.Errorf("--scenario est requis")
		}

		hour, minute, err := parseTimeSpec(timeSpec)
		if err != nil {
			return err
		}
		days, err := parseDaysSpec(daysSpec)
		if err != nil {
			return err
		}

		d, err := buildDeps()
		if err != nil {
			return err
		}

		deviceName := viper.GetString("device")
		if deviceName == "" {
			deviceName = d.cfg.DefaultDevice
		}
		if deviceName == "" {
			return fmt.Errorf("appareil requis (--device ou TELEPILOT_DEVICE)")
		}

		set, err := d.store.Scenarios()
		if err != nil {
			return err
		}
		if _, ok := set[scenarioName]; !ok {
			return fmt.Errorf("scenario inconnu '%s' (scenarios: %v)", scenarioName, set.Names())
		}

		entries, err := d.store.Schedules()
		if err != nil {
			return err
		}
		entry := schedule.Entry{
			Scenario: scenarioName,
			Device:   deviceName,
			Hour:     hour,
			Minute:   minute,
			Weekdays: days,
			Enabled:  true,
		}
		entries = append(entries, entry)

		if err := d.store.SaveSchedules(entries); err != nil {
			return err
		}

		cmd.Printf("Planification ajoutee: %s a %s (%s)\n",
			scenarioName, entry.TimeString(), entry.WeekdaysString())
		return nil
	},
}

var scheduleRemoveCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Supprime une planification par son index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index invalide '%s'", args[0])
		}

		d, err := buildDeps()
		if err != nil {
			return err
		}

		entries, err := d.store.Schedules()
		if err != nil {
			return err
		}
		if index < 0 || index >= len(entries) {
			return fmt.Errorf("index %d hors limites (0-%d)", index, len(entries)-1)
		}

		removed := entries[index]
		entries = append(entries[:index], entries[index+1:]...)

		if err := d.store.SaveSchedules(entries); err != nil {
			return err
		}

		cmd.Printf("Planification supprimee: %s a %s\n", removed.Scenario, removed.TimeString())
		return nil
	},
}

// parseTimeSpec parses "HH:MM" or "HH".
func parseTimeSpec(spec string) (hour, minute int, err error) {
	if spec == "" {
		return 0, 0, fmt.Errorf("--time est requis (format HH:MM)")
	}

	parts := strings.SplitN(spec, ":", 2)
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("heure invalide '%s' (attendu: 0-23)", parts[0])
	}
	if len(parts) == 2 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return 0, 0, fmt.Errorf("minute invalide '%s' (attendu: 0-59)", parts[1])
		}
	}
	return hour, minute, nil
}

// parseDaysSpec parses "2,6" into weekday numbers. Empty means every day.
func parseDaysSpec(spec string) ([]int, error) {
	if spec == "" {
		return nil, nil
	}

	var days []int
	for _, part := range strings.Split(spec, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || day < 0 || day > 6 {
			return nil, fmt.Errorf("jour invalide '%s' (attendu: 0-6, dimanche=0)", part)
		}
		days = append(days, day)
	}
	return days, nil
}

func init() {
	scheduleAddCmd.Flags().String("scenario", "", "nom du scenario a planifier")
	scheduleAddCmd.Flags().String("time", "", "heure de declenchement (HH:MM)")
	scheduleAddCmd.Flags().String("days", "", "jours de declenchement (ex: 2,6; dimanche=0)")

	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleRemoveCmd)
	rootCmd.AddCommand(scheduleCmd)
}
