package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var loginUsername string

//nolint:gochecknoglobals // Cobra boilerplate
var loginPassword string

//nolint:gochecknoglobals // Cobra boilerplate
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to DevLift",
	Long: `Log in to DevLift with username and password.

On success the session token and your profile snapshot are stored locally,
and protected commands (dashboard, projects, quiz, path) become available.

Example:
  devlift login --username alice`,
	RunE: runLogin,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (prompted if omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted if omitted)")
}

func runLogin(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}

	// Already-authenticated users are steered away from login, the same way
	// the web client redirects them off the login page.
	if !app.store.CanEnterPublic() {
		fmt.Println("Already logged in. Run 'devlift logout' first to switch accounts.")
		return err
	}

	username := loginUsername
	if username == "" {
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		password, err = promptLine("Password: ")
		if err != nil {
			return err
		}
	}

	ctx := context.Background()
	token, user, err := app.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	err = app.store.SetCredential(token, user)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", user.Name)
	return err
}

// promptLine reads one line from stdin.
func promptLine(prompt string) (line string, err error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err = reader.ReadString('\n')
	if err != nil {
		return line, err
	}
	line = strings.TrimSpace(line)
	return line, err
}
