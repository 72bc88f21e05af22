package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/devlifthq/devlift/pkg/api"
	"github.com/devlifthq/devlift/pkg/config"
	"github.com/devlifthq/devlift/pkg/dashboard"
	"github.com/devlifthq/devlift/pkg/logging"
	"github.com/devlifthq/devlift/pkg/session"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "devlift",
	Short: "Command-line client for the DevLift career platform",
	Long: `devlift is a command-line client for the DevLift career-development platform.

Log in once, then pull your dashboard (XP, level, streak, projects, goals,
leaderboard), manage portfolio projects, take the career quiz, and choose a
career path roadmap.`,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.devlift/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// appContext bundles the pieces every command needs.
type appContext struct {
	cfg     config.Config
	store   *session.Store
	client  *api.Client
	service *dashboard.Service
	logger  *slog.Logger
}

// setupApp loads config, initializes logging, opens the session store, and
// wires the API client and dashboard service together.
func setupApp() (app *appContext, err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return app, err
	}

	logger := logging.Init(cfg.LogLevel, getVerbose())

	var store *session.Store
	store, err = session.Open(cfg.StateDir)
	if err != nil {
		return app, err
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.Timeout())

	app = &appContext{
		cfg:     cfg,
		store:   store,
		client:  client,
		service: dashboard.NewService(client, store, logger),
		logger:  logger,
	}
	return app, err
}

// ensureLoggedIn gates protected commands on the session guard. Being logged
// out is the normal anonymous state, so it prints a notice instead of
// returning an error trace.
func ensureLoggedIn(app *appContext) (ok bool) {
	ok = app.store.CanEnterProtected()
	if !ok {
		fmt.Println("Please log in first: devlift login")
	}
	return ok
}
