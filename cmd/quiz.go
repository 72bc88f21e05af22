package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/devlifthq/devlift/pkg/api"
	"github.com/devlifthq/devlift/pkg/dashboard"
	"github.com/devlifthq/devlift/pkg/quiz"
	"github.com/devlifthq/devlift/pkg/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the career quiz",
	Long: `Take the career quiz.

Answer one question at a time; answering the last question submits the quiz
and prints the recommended career paths. Choose one afterwards with
'devlift path choose'.`,
	RunE: runQuiz,
}

//nolint:gochecknoglobals // Cobra boilerplate
var quizRetakeCmd = &cobra.Command{
	Use:   "retake",
	Short: "Reset the quiz and discard recommendations",
	Long: `Reset the quiz and discard recommendations.

Any recommended career paths that were not chosen are discarded, and the
quiz can be taken again from the start.`,
	RunE: runQuizRetake,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.AddCommand(quizRetakeCmd)
}

func runQuiz(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}
	if !ensureLoggedIn(app) {
		return err
	}

	if app.store.QuizStatus() == session.QuizCompleted {
		fmt.Println("Quiz already completed. Run 'devlift quiz retake' to take it again,")
		fmt.Println("or 'devlift path recommendations' to review your recommendations.")
		return err
	}

	ctx := context.Background()
	app.client.SetToken(app.store.Token())

	var questions []api.QuizQuestion
	questions, err = app.client.QuizQuestions(ctx)
	if err != nil {
		return err
	}

	machine := quiz.NewMachine()
	err = machine.Start(questions)
	if err != nil {
		return err
	}

	// Walk the questions. The last answer is the submit trigger: there is
	// no separate confirm step.
	var answers []api.QuizAnswer
	for {
		var question api.QuizQuestion
		question, err = machine.Current()
		if err != nil {
			return err
		}

		index, total := machine.Progress()
		fmt.Printf("\n(%d/%d) %s\n", index+1, total, question.QuestionText)
		for i, option := range question.Options {
			fmt.Printf("  %d. %s\n", i+1, option.OptionText)
		}

		var choice string
		choice, err = promptLine("Answer: ")
		if err != nil {
			return err
		}

		optionText, pickErr := pickOption(question, choice)
		if pickErr != nil {
			fmt.Println(pickErr.Error())
			continue
		}

		var submit bool
		answers, submit, err = machine.Answer(optionText)
		if err != nil {
			return err
		}
		if submit {
			break
		}
	}

	fmt.Println("\nSubmitting answers...")
	recommendations, submitErr := app.service.SubmitQuizAnswers(ctx, answers)
	if submitErr != nil {
		// A failed submission returns the quiz to not-taken; nothing is
		// retried automatically.
		err = machine.Fail()
		if err != nil {
			return err
		}
		if errors.Is(submitErr, dashboard.ErrNoRecommendations) {
			fmt.Println("No career paths could be recommended from these answers. The quiz was not recorded.")
			return err
		}
		err = describeMutationError(submitErr)
		return err
	}

	err = machine.Complete()
	if err != nil {
		return err
	}

	fmt.Println("\nRecommended career paths:")
	printRoadmaps(recommendations)
	fmt.Println("\nChoose one with: devlift path choose <id>")
	return err
}

func runQuizRetake(cmd *cobra.Command, args []string) (err error) {
	var app *appContext
	app, err = setupApp()
	if err != nil {
		return err
	}
	if !ensureLoggedIn(app) {
		return err
	}

	err = app.service.RetakeQuiz()
	if err != nil {
		return err
	}

	fmt.Println("Quiz reset. Run 'devlift quiz' to take it again.")
	return err
}

// pickOption resolves the user's input to an option: either the option
// number or the option text itself.
func pickOption(question api.QuizQuestion, choice string) (optionText string, err error) {
	if n, convErr := strconv.Atoi(choice); convErr == nil {
		if n < 1 || n > len(question.Options) {
			err = errors.Errorf("pick a number between 1 and %d", len(question.Options))
			return optionText, err
		}
		optionText = question.Options[n-1].OptionText
		return optionText, err
	}

	for _, option := range question.Options {
		if option.OptionText == choice {
			optionText = option.OptionText
			return optionText, err
		}
	}

	err = errors.Errorf("%q is not one of the options", choice)
	return optionText, err
}

// printRoadmaps renders a candidate career path list.
func printRoadmaps(roadmaps []api.Roadmap) {
	for _, roadmap := range roadmaps {
		fmt.Printf("[%s] %s\n", roadmap.ID, roadmap.DisplayName())
		if roadmap.Description != "" {
			fmt.Printf("    %s\n", roadmap.Description)
		}
	}
}
