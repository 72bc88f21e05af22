package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", 0)

	require.NotNil(t, client)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://localhost:4000/", time.Second)

	assert.Equal(t, "http://localhost:4000", client.baseURL)
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		// Login is unauthenticated.
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "secret1", body["password"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"token":"t1","user":{"name":"Alice"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	token, user, err := client.Login(context.Background(), "alice", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "t1", token)
	assert.Equal(t, "Alice", user.Name)
}

func TestLoginWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"user":{"name":"Alice"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, _, err := client.Login(context.Background(), "alice", "secret1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}

func TestMeCarriesBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name":"Alice","xp":120,"level":3,"streak":7}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.SetToken("t1")

	user, err := client.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 120, user.XP)
	assert.Equal(t, 3, user.Level)
	assert.Equal(t, 7, user.Streak)
}

func TestServerMessageSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"title already in use"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.SetToken("t1")

	_, err := client.AddProject(context.Background(), Project{Title: "x", Description: "y"})

	require.Error(t, err)
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "title already in use", apiErr.Message)
}

func TestServerErrorFieldFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"duplicate project"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Projects(context.Background())

	require.Error(t, err)
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "duplicate project", apiErr.Message)
}

func TestIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Projects(context.Background())

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestIsNotFoundOnTransportError(t *testing.T) {
	// A server that is no longer listening produces a transport error, not
	// an APIError.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Projects(context.Background())

	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	_, ok := IsAPIError(err)
	assert.False(t, ok)
}

func TestDeleteProjectReturnsFullCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/projects/p1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"projects":[{"_id":"p2","title":"Survivor"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.SetToken("t1")

	projects, err := client.DeleteProject(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p2", projects[0].ID)
}

func TestLeaderboardQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analytics/leaderboard", r.URL.Path)
		assert.Equal(t, "xp", r.URL.Query().Get("type"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"rank":1,"name":"Alice","xp":900}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.SetToken("t1")

	entries, err := client.Leaderboard(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice", entries[0].Name)
}

func TestGenerateRecommendations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/roadmap/generate", r.URL.Path)

		var body map[string][]QuizAnswer
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)
		require.Len(t, body["answers"], 2)
		assert.Equal(t, "q1", body["answers"][0].QuestionID)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"recommendations":[{"_id":"cp1","name":"Backend Developer"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.SetToken("t1")

	answers := []QuizAnswer{
		{QuestionID: "q1", OptionText: "Building APIs"},
		{QuestionID: "q2", OptionText: "Databases"},
	}
	recommendations, err := client.GenerateRecommendations(context.Background(), answers)

	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, "Backend Developer", recommendations[0].Name)
}

func TestRoadmapDisplayName(t *testing.T) {
	candidate := Roadmap{Name: "Backend Developer"}
	chosen := Roadmap{CareerPathName: "Data Engineer"}

	assert.Equal(t, "Backend Developer", candidate.DisplayName())
	assert.Equal(t, "Data Engineer", chosen.DisplayName())
}
