// Package quiz models one career-quiz attempt as an explicit state machine.
// Answering the final question is the submit trigger: there is no separate
// submit step, so the machine moves to Submitting as soon as the last answer
// is recorded and the caller completes or fails the attempt based on the
// server's response.
package quiz

import (
	"github.com/devlifthq/devlift/pkg/api"
	"github.com/pkg/errors"
)

// State identifies where an attempt is in its lifecycle.
type State string

// Machine states.
const (
	StateNotTaken   State = "not-taken"
	StateInProgress State = "in-progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

// Machine walks one quiz attempt question by question.
type Machine struct {
	state     State
	questions []api.QuizQuestion
	index     int
	answers   []api.QuizAnswer
}

// NewMachine returns a machine in the NotTaken state.
func NewMachine() (m *Machine) {
	m = &Machine{
		state: StateNotTaken,
	}
	return m
}

// State returns the current state.
func (m *Machine) State() (state State) {
	state = m.state
	return state
}

// Start begins an attempt over the given questions, in presentation order.
func (m *Machine) Start(questions []api.QuizQuestion) (err error) {
	if m.state != StateNotTaken {
		err = errors.Errorf("cannot start quiz from state %s", m.state)
		return err
	}
	if len(questions) == 0 {
		err = errors.New("quiz has no questions")
		return err
	}

	m.questions = questions
	m.index = 0
	m.answers = make([]api.QuizAnswer, 0, len(questions))
	m.state = StateInProgress
	return err
}

// Current returns the question awaiting an answer.
func (m *Machine) Current() (question api.QuizQuestion, err error) {
	if m.state != StateInProgress {
		err = errors.Errorf("no current question in state %s", m.state)
		return question, err
	}
	question = m.questions[m.index]
	return question, err
}

// Progress reports the zero-based index of the current question and the
// total question count.
func (m *Machine) Progress() (index, total int) {
	index = m.index
	total = len(m.questions)
	return index, total
}

// Answer records the selected option for the current question and advances.
// On every question but the last it returns submit == false and the machine
// stays InProgress. Answering the last question moves the machine to
// Submitting and returns the complete ordered answer sequence: that last
// selection is the submission.
func (m *Machine) Answer(optionText string) (answers []api.QuizAnswer, submit bool, err error) {
	if m.state != StateInProgress {
		err = errors.Errorf("cannot answer in state %s", m.state)
		return answers, submit, err
	}

	question := m.questions[m.index]
	if !hasOption(question, optionText) {
		err = errors.Errorf("question %s has no option %q", question.ID, optionText)
		return answers, submit, err
	}

	m.answers = append(m.answers, api.QuizAnswer{
		QuestionID: question.ID,
		OptionText: optionText,
	})

	if m.index < len(m.questions)-1 {
		m.index++
		return answers, submit, err
	}

	m.state = StateSubmitting
	answers = m.answers
	submit = true
	return answers, submit, err
}

// Complete marks a submitted attempt as accepted.
func (m *Machine) Complete() (err error) {
	if m.state != StateSubmitting {
		err = errors.Errorf("cannot complete quiz from state %s", m.state)
		return err
	}
	m.state = StateCompleted
	return err
}

// Fail returns a submitted attempt to NotTaken, discarding its answers. Used
// when submission fails or the server produced no recommendations.
func (m *Machine) Fail() (err error) {
	if m.state != StateSubmitting {
		err = errors.Errorf("cannot fail quiz from state %s", m.state)
		return err
	}
	m.reset()
	return err
}

// Reset unconditionally returns the machine to NotTaken from any state,
// discarding any in-progress answers. This is the retake transition.
func (m *Machine) Reset() {
	m.reset()
}

func (m *Machine) reset() {
	m.state = StateNotTaken
	m.questions = nil
	m.index = 0
	m.answers = nil
}

// hasOption reports whether the question offers the given option text.
func hasOption(question api.QuizQuestion, optionText string) (ok bool) {
	for _, option := range question.Options {
		if option.OptionText == optionText {
			ok = true
			return ok
		}
	}
	return ok
}
