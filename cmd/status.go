package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session is active",
	Long: `Show whether a session is active.

Reports only on the locally stored credential; it does not call the server.
An expired token still shows as logged in until a protected command hits the
API and tears the session down.`,
	RunE: runStatus,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}

	if !app.store.CanEnterProtected() {
		fmt.Println("Not logged in.")
		return err
	}

	user := app.store.User()
	if user != nil && user.Name != "" {
		fmt.Printf("Logged in as %s\n", user.Name)
	} else {
		fmt.Println("Logged in.")
	}

	if roadmap := app.store.Roadmap(); roadmap != nil {
		fmt.Printf("Chosen career path: %s\n", roadmap.DisplayName())
	}

	return err
}
