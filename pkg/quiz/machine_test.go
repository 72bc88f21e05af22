package quiz

import (
	"testing"

	"github.com/devlifthq/devlift/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestions() (questions []api.QuizQuestion) {
	questions = []api.QuizQuestion{
		{
			ID:           "q1",
			QuestionText: "What do you enjoy most?",
			Options: []api.QuizOption{
				{OptionText: "Building APIs"},
				{OptionText: "Designing interfaces"},
			},
		},
		{
			ID:           "q2",
			QuestionText: "Pick a tool",
			Options: []api.QuizOption{
				{OptionText: "Databases"},
				{OptionText: "Figma"},
			},
		},
	}
	return questions
}

func TestMachineStartsNotTaken(t *testing.T) {
	m := NewMachine()

	assert.Equal(t, StateNotTaken, m.State())
}

func TestStartRequiresQuestions(t *testing.T) {
	m := NewMachine()

	err := m.Start(nil)

	require.Error(t, err)
	assert.Equal(t, StateNotTaken, m.State())
}

func TestAnswerAdvancesUntilLast(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Start(twoQuestions()))

	answers, submit, err := m.Answer("Building APIs")
	require.NoError(t, err)
	assert.False(t, submit)
	assert.Nil(t, answers)
	assert.Equal(t, StateInProgress, m.State())

	index, total := m.Progress()
	assert.Equal(t, 1, index)
	assert.Equal(t, 2, total)
}

func TestLastAnswerIsTheSubmitTrigger(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Start(twoQuestions()))

	_, _, err := m.Answer("Building APIs")
	require.NoError(t, err)

	answers, submit, err := m.Answer("Databases")
	require.NoError(t, err)
	assert.True(t, submit)
	assert.Equal(t, StateSubmitting, m.State())

	// The full attempt comes back in presentation order.
	require.Len(t, answers, 2)
	assert.Equal(t, api.QuizAnswer{QuestionID: "q1", OptionText: "Building APIs"}, answers[0])
	assert.Equal(t, api.QuizAnswer{QuestionID: "q2", OptionText: "Databases"}, answers[1])
}

func TestSingleQuestionQuizSubmitsImmediately(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Start(twoQuestions()[:1]))

	answers, submit, err := m.Answer("Building APIs")

	require.NoError(t, err)
	assert.True(t, submit)
	require.Len(t, answers, 1)
	assert.Equal(t, "q1", answers[0].QuestionID)
}

func TestAnswerRejectsUnknownOption(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Start(twoQuestions()))

	_, _, err := m.Answer("Skydiving")

	require.Error(t, err)
	// The bad answer was not recorded; the machine still waits on q1.
	index, _ := m.Progress()
	assert.Equal(t, 0, index)
	assert.Equal(t, StateInProgress, m.State())
}

func TestCompleteOnlyFromSubmitting(t *testing.T) {
	m := NewMachine()

	err := m.Complete()
	require.Error(t, err)

	require.NoError(t, m.Start(twoQuestions()[:1]))
	err = m.Complete()
	require.Error(t, err)

	_, _, err = m.Answer("Building APIs")
	require.NoError(t, err)
	err = m.Complete()
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, m.State())
}

func TestFailReturnsToNotTaken(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Start(twoQuestions()[:1]))
	_, _, err := m.Answer("Building APIs")
	require.NoError(t, err)

	err = m.Fail()

	require.NoError(t, err)
	assert.Equal(t, StateNotTaken, m.State())
}

func TestResetFromAnyState(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Start(twoQuestions()))
	_, _, err := m.Answer("Building APIs")
	require.NoError(t, err)

	m.Reset()

	assert.Equal(t, StateNotTaken, m.State())

	// A fresh attempt starts over from the first question with no leftover
	// answers from the abandoned one.
	require.NoError(t, m.Start(twoQuestions()))
	index, _ := m.Progress()
	assert.Equal(t, 0, index)

	_, _, err = m.Answer("Designing interfaces")
	require.NoError(t, err)
	answers, submit, err := m.Answer("Figma")
	require.NoError(t, err)
	assert.True(t, submit)
	require.Len(t, answers, 2)
	assert.Equal(t, "Designing interfaces", answers[0].OptionText)
}

func TestAnswerOutsideInProgress(t *testing.T) {
	m := NewMachine()

	_, _, err := m.Answer("Building APIs")

	require.Error(t, err)
}
