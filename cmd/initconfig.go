package cmd

import (
	"fmt"

	"github.com/devlifthq/devlift/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create a default configuration file.

Writes $HOME/.devlift/config.json (or the path given with --config) with the
production API endpoint and sensible defaults. Edit it afterwards to point at
a different DevLift deployment.`,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	err = config.InitConfig(getConfigFile())
	if err != nil {
		return err
	}

	path := getConfigFile()
	if path == "" {
		path, err = config.DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	fmt.Printf("Created config file: %s\n", path)
	return err
}
