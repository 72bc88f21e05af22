package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/devlifthq/devlift/pkg/api"
	"github.com/pkg/errors"
)

// StateFileName is the session state file kept under the state directory.
const StateFileName = "session.json"

// QuizStatus values persisted in the quiz_status slot.
const (
	QuizNotTaken  = "not-taken"
	QuizCompleted = "completed"
)

// state is the persisted session snapshot. Each field is one named slot;
// absent slots unmarshal to their zero value.
type state struct {
	Token            string           `json:"token,omitempty"`
	User             *api.UserProfile `json:"user,omitempty"`
	Roadmap          *api.Roadmap     `json:"roadmap,omitempty"`
	RecommendedPaths []api.Roadmap    `json:"recommended_paths,omitempty"`
	QuizStatus       string           `json:"quiz_status,omitempty"`
	Theme            string           `json:"theme,omitempty"`
}

// Store owns the persisted session state: the credential token, the cached
// user snapshot, the cached roadmap, and quiz bookkeeping. Every component
// that needs session state receives a Store rather than reading ambient
// globals.
type Store struct {
	path  string
	state state
}

// Open loads the session store from dir, creating the directory if needed.
// A missing or unreadable state file is the normal logged-out state, not an
// error.
func Open(dir string) (store *Store, err error) {
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create state directory: %s", dir)
		return store, err
	}

	store = &Store{
		path: filepath.Join(dir, StateFileName),
	}

	data, readErr := os.ReadFile(store.path)
	if readErr != nil {
		// No state file yet: anonymous session.
		return store, err
	}

	unmarshalErr := json.Unmarshal(data, &store.state)
	if unmarshalErr != nil {
		// Corrupt state reads as logged out rather than failing every command.
		store.state = state{}
	}

	return store, err
}

// CanEnterProtected reports whether a protected command may run. True iff a
// non-empty token is present; token validity is the server's concern.
func (s *Store) CanEnterProtected() (ok bool) {
	ok = s.state.Token != ""
	return ok
}

// CanEnterPublic reports whether a public-only command (login, register)
// should run. The dual of CanEnterProtected.
func (s *Store) CanEnterPublic() (ok bool) {
	ok = s.state.Token == ""
	return ok
}

// Token returns the persisted credential token, empty when logged out.
func (s *Store) Token() (token string) {
	token = s.state.Token
	return token
}

// SetCredential stores the token and user snapshot from a successful login
// or registration. This is the only Anonymous to Authenticated transition.
func (s *Store) SetCredential(token string, user api.UserProfile) (err error) {
	s.state.Token = token
	s.state.User = &user
	err = s.save()
	return err
}

// User returns the cached user snapshot, nil when none is cached.
func (s *Store) User() (user *api.UserProfile) {
	user = s.state.User
	return user
}

// SetUser refreshes the cached user snapshot.
func (s *Store) SetUser(user api.UserProfile) (err error) {
	s.state.User = &user
	err = s.save()
	return err
}

// Roadmap returns the cached chosen roadmap, nil when none is chosen.
func (s *Store) Roadmap() (roadmap *api.Roadmap) {
	roadmap = s.state.Roadmap
	return roadmap
}

// SetRoadmap caches the chosen roadmap.
func (s *Store) SetRoadmap(roadmap api.Roadmap) (err error) {
	s.state.Roadmap = &roadmap
	err = s.save()
	return err
}

// RecommendedPaths returns the candidate career paths from the last
// completed quiz, nil when the quiz has not produced any.
func (s *Store) RecommendedPaths() (paths []api.Roadmap) {
	paths = s.state.RecommendedPaths
	return paths
}

// SetRecommendedPaths stores the candidate set.
func (s *Store) SetRecommendedPaths(paths []api.Roadmap) (err error) {
	s.state.RecommendedPaths = paths
	err = s.save()
	return err
}

// QuizStatus returns the persisted quiz status, defaulting to not-taken.
func (s *Store) QuizStatus() (status string) {
	status = s.state.QuizStatus
	if status == "" {
		status = QuizNotTaken
	}
	return status
}

// SetQuizStatus persists the quiz status.
func (s *Store) SetQuizStatus(status string) (err error) {
	s.state.QuizStatus = status
	err = s.save()
	return err
}

// Theme returns the persisted theme preference, empty when unset.
func (s *Store) Theme() (theme string) {
	theme = s.state.Theme
	return theme
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(theme string) (err error) {
	s.state.Theme = theme
	err = s.save()
	return err
}

// Clear tears down the session: token, cached user, cached roadmap, candidate
// paths, and quiz status are all dropped together. The theme preference is
// presentation state and survives logout.
func (s *Store) Clear() (err error) {
	s.state = state{
		Theme: s.state.Theme,
	}
	err = s.save()
	return err
}

// save writes the state file atomically with owner-only permissions. The
// token is a credential and must not be world-readable.
func (s *Store) save() (err error) {
	var data []byte
	data, err = json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal session state")
		return err
	}

	tmp := s.path + ".tmp"
	err = os.WriteFile(tmp, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write session state: %s", tmp)
		return err
	}

	err = os.Rename(tmp, s.path)
	if err != nil {
		err = errors.Wrapf(err, "failed to replace session state: %s", s.path)
		return err
	}

	return err
}
