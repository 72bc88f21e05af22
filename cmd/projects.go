package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/devlifthq/devlift/pkg/api"
	"github.com/devlifthq/devlift/pkg/dashboard"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var projectTitle string

//nolint:gochecknoglobals // Cobra boilerplate
var projectDescription string

//nolint:gochecknoglobals // Cobra boilerplate
var projectTechnologies []string

//nolint:gochecknoglobals // Cobra boilerplate
var projectDemoURL string

//nolint:gochecknoglobals // Cobra boilerplate
var projectSourceURL string

//nolint:gochecknoglobals // Cobra boilerplate
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage your portfolio projects",
}

//nolint:gochecknoglobals // Cobra boilerplate
var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects",
	RunE:  runProjectsList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var projectsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project",
	Long: `Add a project to your portfolio.

Title and description are required; everything else is optional.

Example:
  devlift projects add --title "Chess engine" --description "UCI chess engine" --tech go,sqlite`,
	RunE: runProjectsAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsAddCmd.Flags().StringVar(&projectTitle, "title", "", "Project title (required)")
	projectsAddCmd.Flags().StringVar(&projectDescription, "description", "", "Project description (required)")
	projectsAddCmd.Flags().StringSliceVar(&projectTechnologies, "tech", nil, "Technologies used, comma-separated")
	projectsAddCmd.Flags().StringVar(&projectDemoURL, "demo-url", "", "Live demo URL")
	projectsAddCmd.Flags().StringVar(&projectSourceURL, "source-url", "", "Source code URL")
}

func runProjectsList(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}
	if !ensureLoggedIn(app) {
		return err
	}

	ctx := context.Background()
	app.client.SetToken(app.store.Token())

	var projects []api.Project
	projects, err = app.client.Projects(ctx)
	if err != nil {
		if api.IsNotFound(err) {
			projects = nil
			err = nil
		} else {
			return err
		}
	}

	printProjects(projects)
	return err
}

func runProjectsAdd(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}
	if !ensureLoggedIn(app) {
		return err
	}

	project := api.Project{
		Title:         projectTitle,
		Description:   projectDescription,
		Technologies:  projectTechnologies,
		LiveDemoURL:   projectDemoURL,
		SourceCodeURL: projectSourceURL,
	}

	ctx := context.Background()
	var projects []api.Project
	projects, err = app.service.AddProject(ctx, project)
	if err != nil {
		err = describeMutationError(err)
		return err
	}

	fmt.Printf("Added %q.\n", projectTitle)
	printProjects(projects)
	return err
}

func runProjectsDelete(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}
	if !ensureLoggedIn(app) {
		return err
	}

	ctx := context.Background()
	var projects []api.Project
	projects, err = app.service.DeleteProject(ctx, args[0])
	if err != nil {
		err = describeMutationError(err)
		return err
	}

	fmt.Printf("Deleted project %s.\n", args[0])
	printProjects(projects)
	return err
}

// printProjects renders the authoritative server collection.
func printProjects(projects []api.Project) {
	if len(projects) == 0 {
		fmt.Println("No projects yet.")
		return
	}
	for _, project := range projects {
		status := project.Status
		if status == "" {
			status = "-"
		}
		fmt.Printf("[%s] %-12s %s\n", project.ID, status, project.Title)
		if project.Description != "" {
			fmt.Printf("    %s\n", project.Description)
		}
		if len(project.Technologies) > 0 {
			fmt.Printf("    %s\n", strings.Join(project.Technologies, ", "))
		}
	}
}

// describeMutationError converts server failures into the message the server
// sent, verbatim when it provided one, with a generic fallback otherwise.
// Validation and in-flight errors pass through unchanged.
func describeMutationError(err error) (out error) {
	out = err

	var validationErr *dashboard.ValidationError
	if errors.As(err, &validationErr) {
		return out
	}
	if errors.Is(err, dashboard.ErrMutationInFlight) {
		return out
	}

	if apiErr, ok := api.IsAPIError(err); ok {
		if apiErr.Message != "" {
			out = errors.New(apiErr.Message)
			return out
		}
		out = errors.New("the request could not be completed, please try again")
		return out
	}

	return out
}
