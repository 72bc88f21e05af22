package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/devlifthq/devlift/pkg/dashboard"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your DevLift dashboard",
	Long: `Show your DevLift dashboard.

Fetches your profile plus the project, analytics, leaderboard, and goal
feeds. Feeds that are temporarily unavailable are skipped silently; only the
profile fetch is required to succeed.`,
	RunE: runDashboard,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}
	if !ensureLoggedIn(app) {
		return err
	}

	ctx := context.Background()
	var agg dashboard.Aggregate
	agg, err = app.service.Load(ctx)
	if err != nil {
		if errors.Is(err, dashboard.ErrAuthExpired) {
			fmt.Println("Session expired. Please log in again: devlift login")
			err = nil
			return err
		}
		return err
	}

	renderDashboard(agg)
	return err
}

// renderDashboard prints one section per present feed. Absent feeds produce
// no output at all, not an error line.
func renderDashboard(agg dashboard.Aggregate) {
	fmt.Printf("%s  —  level %d, %d XP, %d-day streak\n", agg.Profile.Name, agg.Level, agg.XP, agg.Streak)

	if len(agg.Skills) > 0 {
		fmt.Println("\nSkills:")
		for _, skill := range agg.Skills {
			fmt.Printf("  %-24s level %d\n", skill.Name, skill.Level)
		}
	}

	if agg.Profile.Roadmap != nil {
		roadmap := agg.Profile.Roadmap
		total, done := 0, 0
		for _, milestone := range roadmap.Milestones {
			for _, task := range milestone.Tasks {
				total++
				if task.Completed {
					done++
				}
			}
		}
		fmt.Printf("\nCareer path: %s", roadmap.DisplayName())
		if total > 0 {
			fmt.Printf(" (%d/%d tasks done)", done, total)
		}
		fmt.Println()
	}

	fmt.Printf("\nProjects (%d):\n", len(agg.Projects))
	for _, project := range agg.Projects {
		status := project.Status
		if status == "" {
			status = "-"
		}
		fmt.Printf("  [%s] %-12s %s\n", project.ID, status, project.Title)
		if len(project.Technologies) > 0 {
			fmt.Printf("      %s\n", strings.Join(project.Technologies, ", "))
		}
	}

	if agg.Analytics != nil {
		fmt.Println("\nThis week:")
		fmt.Printf("  %d XP earned, %d active days, %d tasks completed\n",
			agg.Analytics.WeeklyXP, agg.Analytics.ActiveDays, agg.Analytics.CompletedTasks)
	}

	if len(agg.Leaderboard) > 0 {
		fmt.Println("\nLeaderboard:")
		for _, entry := range agg.Leaderboard {
			fmt.Printf("  %2d. %-20s %d XP\n", entry.Rank, entry.Name, entry.XP)
		}
	}

	if len(agg.TodayGoals) > 0 {
		fmt.Println("\nToday:")
		for _, goal := range agg.TodayGoals {
			mark := " "
			if goal.Completed {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\n", mark, goal.Title)
		}
	}

	if len(agg.Deadlines) > 0 {
		fmt.Println("\nUpcoming deadlines:")
		for _, goal := range agg.Deadlines {
			fmt.Printf("  %s  %s\n", goal.DueDate, goal.Title)
		}
	}
}
