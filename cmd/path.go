package cmd

import (
	"context"
	"fmt"

	"github.com/devlifthq/devlift/pkg/api"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Review and choose a career path",
}

//nolint:gochecknoglobals // Cobra boilerplate
var pathRecommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "List the recommended career paths",
	Long: `List the career paths recommended by your last quiz.

Once a path is chosen it is the only entry listed; retake the quiz to get a
fresh candidate set.`,
	RunE: runPathRecommendations,
}

//nolint:gochecknoglobals // Cobra boilerplate
var pathChooseCmd = &cobra.Command{
	Use:   "choose <career-path-id>",
	Short: "Choose a career path",
	Long: `Choose a career path from your recommendations.

Choosing is one-way: the chosen roadmap replaces the candidate set, and the
only way back to a candidate set is retaking the quiz.`,
	Args: cobra.ExactArgs(1),
	RunE: runPathChoose,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(pathCmd)
	pathCmd.AddCommand(pathRecommendationsCmd)
	pathCmd.AddCommand(pathChooseCmd)
}

func runPathRecommendations(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}
	if !ensureLoggedIn(app) {
		return err
	}

	paths := app.store.RecommendedPaths()
	if len(paths) == 0 {
		fmt.Println("No recommendations yet. Run 'devlift quiz' first.")
		return err
	}

	printRoadmaps(paths)
	return err
}

func runPathChoose(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}
	if !ensureLoggedIn(app) {
		return err
	}

	ctx := context.Background()
	var roadmap api.Roadmap
	roadmap, err = app.service.ChoosePath(ctx, args[0])
	if err != nil {
		err = describeMutationError(err)
		return err
	}

	fmt.Printf("Career path chosen: %s\n", roadmap.DisplayName())
	for _, milestone := range roadmap.Milestones {
		fmt.Printf("  %s (%d tasks)\n", milestone.Title, len(milestone.Tasks))
	}
	return err
}
