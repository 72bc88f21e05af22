package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devlifthq/devlift/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWithoutStateFile(t *testing.T) {
	store, err := Open(t.TempDir())

	require.NoError(t, err)
	assert.False(t, store.CanEnterProtected())
	assert.True(t, store.CanEnterPublic())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
}

func TestGuardFollowsTokenPresence(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	// The guard checks presence, not validity: any non-empty token counts.
	err = store.SetCredential("not-even-a-jwt", api.UserProfile{Name: "Alice"})
	require.NoError(t, err)

	assert.True(t, store.CanEnterProtected())
	assert.False(t, store.CanEnterPublic())
}

func TestCredentialPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	err = store.SetCredential("t1", api.UserProfile{Name: "Alice", XP: 42})
	require.NoError(t, err)

	reopened, err := Open(dir)
	require.NoError(t, err)

	assert.Equal(t, "t1", reopened.Token())
	require.NotNil(t, reopened.User())
	assert.Equal(t, "Alice", reopened.User().Name)
	assert.Equal(t, 42, reopened.User().XP)
	assert.True(t, reopened.CanEnterProtected())
}

func TestClearDropsSessionSlots(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetCredential("t1", api.UserProfile{Name: "Alice"}))
	require.NoError(t, store.SetRoadmap(api.Roadmap{ID: "cp1", Name: "Backend Developer"}))
	require.NoError(t, store.SetRecommendedPaths([]api.Roadmap{{ID: "cp2"}}))
	require.NoError(t, store.SetQuizStatus(QuizCompleted))

	err = store.Clear()
	require.NoError(t, err)

	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	assert.Nil(t, store.Roadmap())
	assert.Nil(t, store.RecommendedPaths())
	assert.Equal(t, QuizNotTaken, store.QuizStatus())
	assert.False(t, store.CanEnterProtected())

	// And the teardown is persistent, not just in-memory.
	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.False(t, reopened.CanEnterProtected())
}

func TestThemeSurvivesLogout(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SetCredential("t1", api.UserProfile{}))
	require.NoError(t, store.SetTheme("dark"))

	err = store.Clear()
	require.NoError(t, err)

	assert.Equal(t, "dark", store.Theme())
}

func TestCorruptStateFileReadsAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, StateFileName), []byte("{not json"), 0600)
	require.NoError(t, err)

	store, err := Open(dir)

	require.NoError(t, err)
	assert.False(t, store.CanEnterProtected())
}

func TestQuizStatusDefaultsToNotTaken(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, QuizNotTaken, store.QuizStatus())
}

func TestStateFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetCredential("t1", api.UserProfile{}))

	info, err := os.Stat(filepath.Join(dir, StateFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
