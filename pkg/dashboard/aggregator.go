// Package dashboard assembles one consistent view of a user's cross-cutting
// state from several independent, unreliable backend feeds, and hosts the
// authenticated mutations layered on top of that view.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/devlifthq/devlift/pkg/api"
	"github.com/devlifthq/devlift/pkg/session"
	"github.com/pkg/errors"
)

// LeaderboardLimit is how many leaderboard rows the dashboard requests.
const LeaderboardLimit = 5

// ErrAuthExpired means the session credential is missing or was rejected by
// the profile endpoint. The session has already been torn down; the caller
// must send the user back to login.
var ErrAuthExpired = errors.New("session expired, please log in again")

// ErrMutationInFlight means another mutation has not finished yet.
// Overlapping writes are refused rather than interleaved.
var ErrMutationInFlight = errors.New("another change is still in progress")

// ErrNoRecommendations means a quiz submission succeeded but produced no
// career path recommendations, so the quiz stays not-taken.
var ErrNoRecommendations = errors.New("no career paths were recommended")

// ValidationError is a locally detected bad input. It blocks the request
// before any network call and names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() (msg string) {
	msg = e.Field + ": " + e.Reason
	return msg
}

// Aggregate is the merged dashboard snapshot. Profile and Projects are
// always populated on success; the remaining feeds are each independently
// nil when their read failed, and a nil feed means "don't render that
// panel", never "render an error".
type Aggregate struct {
	Profile     api.UserProfile
	Projects    []api.Project
	Analytics   *api.AnalyticsSummary
	Leaderboard []api.LeaderboardEntry
	TodayGoals  []api.Goal
	Deadlines   []api.Goal

	// Derived scalars extracted from the profile with zero/empty defaults.
	XP     int
	Level  int
	Streak int
	Skills []api.Skill
}

// Service owns the aggregate and the mutations against it. All state the
// service persists lives in the session store it was constructed with.
type Service struct {
	client *api.Client
	store  *session.Store
	logger *slog.Logger

	mu       sync.Mutex
	mutating bool
	projects []api.Project
}

// NewService creates a dashboard service bound to a client and session store.
func NewService(client *api.Client, store *session.Store, logger *slog.Logger) (service *Service) {
	if logger == nil {
		logger = slog.Default()
	}
	service = &Service{
		client: client,
		store:  store,
		logger: logger,
	}
	return service
}

// Projects returns the service's current local project collection.
func (s *Service) Projects() (projects []api.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects = s.projects
	return projects
}

// Load gathers the dashboard aggregate: one mandatory profile read and five
// optional reads, issued concurrently and awaited as a batch (all settle,
// no early abort). The profile read's outcome governs the whole operation:
// if it fails, Load tears the session down and returns ErrAuthExpired no
// matter what the optional reads returned. Optional feeds degrade
// independently; a failed feed is simply absent from the aggregate.
func (s *Service) Load(ctx context.Context) (agg Aggregate, err error) {
	token := s.store.Token()
	if token == "" {
		// No credential: signal the anonymous transition without touching
		// the network.
		err = ErrAuthExpired
		return agg, err
	}
	s.client.SetToken(token)

	var (
		profile     api.UserProfile
		profileErr  error
		projects    []api.Project
		projectsErr error
		analytics   api.AnalyticsSummary
		leaderboard []api.LeaderboardEntry
		todayGoals  []api.Goal
		deadlines   []api.Goal

		analyticsOK, leaderboardOK, todayOK, deadlinesOK bool
	)

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		profile, profileErr = s.client.Me(ctx)
	}()
	go func() {
		defer wg.Done()
		projects, projectsErr = s.client.Projects(ctx)
	}()
	go func() {
		defer wg.Done()
		var feedErr error
		analytics, feedErr = s.client.DashboardAnalytics(ctx)
		analyticsOK = feedErr == nil
		s.logFeed("analytics", feedErr)
	}()
	go func() {
		defer wg.Done()
		var feedErr error
		leaderboard, feedErr = s.client.Leaderboard(ctx, LeaderboardLimit)
		leaderboardOK = feedErr == nil
		s.logFeed("leaderboard", feedErr)
	}()
	go func() {
		defer wg.Done()
		var feedErr error
		todayGoals, feedErr = s.client.TodayGoals(ctx)
		todayOK = feedErr == nil
		s.logFeed("today's goals", feedErr)
	}()
	go func() {
		defer wg.Done()
		var feedErr error
		deadlines, feedErr = s.client.Deadlines(ctx)
		deadlinesOK = feedErr == nil
		s.logFeed("deadlines", feedErr)
	}()

	wg.Wait()

	if profileErr != nil {
		// The mandatory read vetoes everything, but a transport failure is
		// a different cause than a rejected credential and is logged as one.
		if _, ok := api.IsAPIError(profileErr); ok {
			s.logger.Warn("credential rejected by profile endpoint", "err", profileErr)
		} else {
			s.logger.Warn("network failure on profile read, treating as expired session", "err", profileErr)
		}

		clearErr := s.store.Clear()
		if clearErr != nil {
			s.logger.Warn("failed to clear session state", "err", clearErr)
		}

		err = ErrAuthExpired
		return agg, err
	}

	agg.Profile = profile

	// Projects degrade to an empty collection, never to an error.
	switch {
	case projectsErr != nil:
		s.logFeed("projects", projectsErr)
		agg.Projects = []api.Project{}
	case projects == nil:
		agg.Projects = []api.Project{}
	default:
		agg.Projects = projects
	}

	if analyticsOK {
		agg.Analytics = &analytics
	}
	if leaderboardOK {
		agg.Leaderboard = leaderboard
	}
	if todayOK {
		agg.TodayGoals = todayGoals
	}
	if deadlinesOK {
		agg.Deadlines = deadlines
	}

	agg.XP = profile.XP
	agg.Level = profile.Level
	agg.Streak = profile.Streak
	agg.Skills = profile.Skills
	if agg.Skills == nil {
		agg.Skills = []api.Skill{}
	}

	// Refresh the cached snapshots now that the server confirmed them.
	saveErr := s.store.SetUser(profile)
	if saveErr != nil {
		s.logger.Warn("failed to refresh cached profile", "err", saveErr)
	}
	if profile.Roadmap != nil {
		saveErr = s.store.SetRoadmap(*profile.Roadmap)
		if saveErr != nil {
			s.logger.Warn("failed to refresh cached roadmap", "err", saveErr)
		}
	}

	s.mu.Lock()
	s.projects = agg.Projects
	s.mu.Unlock()

	return agg, err
}

// logFeed records an optional feed failure. Feed failures are invisible to
// the user (the panel just doesn't render), so debug is the right level.
func (s *Service) logFeed(feed string, err error) {
	if err == nil {
		return
	}
	s.logger.Debug("optional dashboard feed unavailable", "feed", feed, "err", err)
}

// AddProject validates locally, creates the project, and adopts the server's
// returned collection wholesale. On failure the local collection is left
// untouched and the server's message is surfaced verbatim.
func (s *Service) AddProject(ctx context.Context, project api.Project) (projects []api.Project, err error) {
	if project.Title == "" {
		err = &ValidationError{Field: "title", Reason: "is required"}
		return projects, err
	}
	if project.Description == "" {
		err = &ValidationError{Field: "description", Reason: "is required"}
		return projects, err
	}

	err = s.beginMutation()
	if err != nil {
		return projects, err
	}
	defer s.endMutation()

	s.client.SetToken(s.store.Token())
	projects, err = s.client.AddProject(ctx, project)
	if err != nil {
		return projects, err
	}

	s.replaceProjects(projects)
	return projects, err
}

// DeleteProject removes a project by id and adopts the server's returned
// collection wholesale. Double deletes are the server's problem; the client
// does not guard against them.
func (s *Service) DeleteProject(ctx context.Context, id string) (projects []api.Project, err error) {
	if id == "" {
		err = &ValidationError{Field: "id", Reason: "is required"}
		return projects, err
	}

	err = s.beginMutation()
	if err != nil {
		return projects, err
	}
	defer s.endMutation()

	s.client.SetToken(s.store.Token())
	projects, err = s.client.DeleteProject(ctx, id)
	if err != nil {
		return projects, err
	}

	s.replaceProjects(projects)
	return projects, err
}

// ChoosePath persists a career path selection. On success the candidate set
// collapses to exactly the one returned roadmap: a one-way transition whose
// only way back to a candidate set is retaking the quiz. Calling it again
// with a different id leaves the last successful choice in place.
func (s *Service) ChoosePath(ctx context.Context, careerPathID string) (roadmap api.Roadmap, err error) {
	if careerPathID == "" {
		err = &ValidationError{Field: "careerPathId", Reason: "is required"}
		return roadmap, err
	}

	err = s.beginMutation()
	if err != nil {
		return roadmap, err
	}
	defer s.endMutation()

	s.client.SetToken(s.store.Token())
	roadmap, err = s.client.ChoosePath(ctx, careerPathID)
	if err != nil {
		return roadmap, err
	}

	err = s.store.SetRoadmap(roadmap)
	if err != nil {
		err = errors.Wrap(err, "chosen roadmap not cached")
		return roadmap, err
	}
	err = s.store.SetRecommendedPaths([]api.Roadmap{roadmap})
	if err != nil {
		err = errors.Wrap(err, "candidate set not updated")
		return roadmap, err
	}

	return roadmap, err
}

// SubmitQuizAnswers sends one complete ordered answer sequence. Success with
// at least one recommendation stores the candidate set and completes the
// quiz; a failure or an empty recommendation set leaves the quiz not-taken,
// with no retry.
func (s *Service) SubmitQuizAnswers(ctx context.Context, answers []api.QuizAnswer) (recommendations []api.Roadmap, err error) {
	if len(answers) == 0 {
		err = &ValidationError{Field: "answers", Reason: "are required"}
		return recommendations, err
	}

	err = s.beginMutation()
	if err != nil {
		return recommendations, err
	}
	defer s.endMutation()

	s.client.SetToken(s.store.Token())
	recommendations, err = s.client.GenerateRecommendations(ctx, answers)
	if err != nil {
		return recommendations, err
	}
	if len(recommendations) == 0 {
		err = ErrNoRecommendations
		return recommendations, err
	}

	err = s.store.SetRecommendedPaths(recommendations)
	if err != nil {
		err = errors.Wrap(err, "recommendations not cached")
		return recommendations, err
	}
	err = s.store.SetQuizStatus(session.QuizCompleted)
	if err != nil {
		err = errors.Wrap(err, "quiz status not updated")
		return recommendations, err
	}

	return recommendations, err
}

// RetakeQuiz resets quiz state unconditionally, discarding any previously
// recommended but unchosen candidate paths.
func (s *Service) RetakeQuiz() (err error) {
	err = s.store.SetRecommendedPaths(nil)
	if err != nil {
		err = errors.Wrap(err, "candidate set not cleared")
		return err
	}
	err = s.store.SetQuizStatus(session.QuizNotTaken)
	if err != nil {
		err = errors.Wrap(err, "quiz status not reset")
		return err
	}
	return err
}

// replaceProjects adopts the server's collection wholesale. The server list
// is authoritative; the client never appends or filters locally.
func (s *Service) replaceProjects(projects []api.Project) {
	if projects == nil {
		projects = []api.Project{}
	}
	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
}

// beginMutation claims the single mutation slot, refusing overlap.
func (s *Service) beginMutation() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutating {
		err = ErrMutationInFlight
		return err
	}
	s.mutating = true
	return err
}

// endMutation releases the mutation slot.
func (s *Service) endMutation() {
	s.mu.Lock()
	s.mutating = false
	s.mu.Unlock()
}
