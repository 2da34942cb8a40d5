package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"telepilot/internal/apps"
	"telepilot/internal/config"
	"telepilot/internal/device"
	"telepilot/internal/logger"
	"telepilot/internal/runner"
	"telepilot/internal/scenario"
	"telepilot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "telepilot",
	Short: "Telepilot pilote un appareil multimedia depuis la ligne de commande",
	Long: `telepilot est l'outil en ligne de commande du projet telepilot.

Il decouvre les appareils sur le reseau local, execute des scenarios
(sequences d'actions de telecommande), et gere la configuration locale
(scenarios, planifications, alias d'applications).

Exemples:

  Executer un scenario:
    telepilot run netflix_profil1

  Lister les scenarios configures:
    telepilot list

  Appuyer sur une touche de la telecommande:
    telepilot press select

  Lancer une application:
    telepilot launch netflix

  Ajouter une planification:
    telepilot schedule add --scenario netflix_profil1 --time 20:00 --days 2,6

Configuration:
  Les variables d'environnement TELEPILOT_* pilotent le comportement:
    TELEPILOT_DATA_DIR    repertoire de configuration (defaut: ~/.config/telepilot)
    TELEPILOT_DEVICE      appareil par defaut (nom ou identifiant)
    TELEPILOT_ATVREMOTE   chemin du binaire atvremote (defaut: atvremote)`,

	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	// Read environment variables that match "TELEPILOT_VARNAME"
	viper.SetEnvPrefix("TELEPILOT")
	viper.AutomaticEnv()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("device", "d", "", "appareil cible (nom ou identifiant, sinon TELEPILOT_DEVICE)")
	viper.BindPFlag("device", rootCmd.PersistentFlags().Lookup("device"))
}

// deps bundles what every subcommand needs. Built per invocation so the
// persisted configuration is read fresh.
type deps struct {
	cfg    *config.Config
	store  *store.Store
	runner *runner.Runner
}

func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	log := logger.NewText(os.Stderr)
	engine := scenario.NewEngine(st, apps.NewResolver(st), log)
	return &deps{
		cfg:    cfg,
		store:  st,
		runner: runner.New(cfg, st, engine, log, nil),
	}, nil
}

// signalContext returns a context cancelled on Ctrl-C, so a running scenario
// or a hung atvremote call can be interrupted cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// withDevice connects to the selected device, runs fn against it and closes
// the session.
func withDevice(fn func(ctx context.Context, dev device.Controller) error) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	dev, err := d.runner.Connect(ctx, viper.GetString("device"))
	if err != nil {
		return err
	}
	defer dev.Close()

	return fn(ctx, dev)
}
