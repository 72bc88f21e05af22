package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var registerUsername string

//nolint:gochecknoglobals // Cobra boilerplate
var registerEmail string

//nolint:gochecknoglobals // Cobra boilerplate
var registerPassword string

//nolint:gochecknoglobals // Cobra boilerplate
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a DevLift account",
	Long: `Create a DevLift account and log in with it.

Example:
  devlift register --username alice --email alice@example.com`,
	RunE: runRegister,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username (prompted if omitted)")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address (prompted if omitted)")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted if omitted)")
}

func runRegister(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}

	if !app.store.CanEnterPublic() {
		fmt.Println("Already logged in. Run 'devlift logout' first to create another account.")
		return err
	}

	username := registerUsername
	if username == "" {
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}
	email := registerEmail
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password := registerPassword
	if password == "" {
		password, err = promptLine("Password: ")
		if err != nil {
			return err
		}
	}

	ctx := context.Background()
	token, user, err := app.client.Register(ctx, username, email, password)
	if err != nil {
		return err
	}

	err = app.store.SetCredential(token, user)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome to DevLift, %s\n", user.Name)
	return err
}
