package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	Long: `Log out and clear the local session.

Removes the stored token, the cached profile, the cached roadmap, and any
quiz recommendations. Safe to run when already logged out.`,
	RunE: runLogout,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}

	err = app.store.Clear()
	if err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return err
}
