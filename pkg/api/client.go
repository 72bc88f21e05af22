package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the production DevLift API endpoint.
	DefaultBaseURL = "https://api.devlift.io"
	// DefaultTimeout bounds every request issued by the client.
	DefaultTimeout = 30 * time.Second
)

// Client is a DevLift REST API client. A zero token makes unauthenticated
// calls; SetToken attaches bearer auth to subsequent requests.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// APIError is a non-success response from the server. Message carries the
// server-provided error text verbatim when the payload included one.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() (msg string) {
	if e.Message != "" {
		msg = fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
		return msg
	}
	msg = fmt.Sprintf("server returned %d", e.Status)
	return msg
}

// NewClient creates a DevLift API client.
func NewClient(baseURL string, timeout time.Duration) (client *Client) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client = &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	return client
}

// SetToken sets the bearer token used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates with username and password.
func (c *Client) Login(ctx context.Context, username, password string) (token string, user UserProfile, err error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	var payload authPayload
	err = c.post(ctx, "/api/auth/login", body, &payload)
	if err != nil {
		err = errors.Wrap(err, "login failed")
		return token, user, err
	}

	token = payload.Data.Token
	user = payload.Data.User
	if token == "" {
		err = errors.New("login response carried no token")
		return token, user, err
	}

	return token, user, err
}

// Register creates a new account and returns its credential.
func (c *Client) Register(ctx context.Context, username, email, password string) (token string, user UserProfile, err error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	var payload authPayload
	err = c.post(ctx, "/api/auth/register", body, &payload)
	if err != nil {
		err = errors.Wrap(err, "registration failed")
		return token, user, err
	}

	token = payload.Data.Token
	user = payload.Data.User
	if token == "" {
		err = errors.New("registration response carried no token")
		return token, user, err
	}

	return token, user, err
}

// Me fetches the authenticated user's profile. Any failure here means the
// credential is no longer usable.
func (c *Client) Me(ctx context.Context) (user UserProfile, err error) {
	err = c.get(ctx, "/api/users/me", &user)
	if err != nil {
		err = errors.Wrap(err, "profile fetch failed")
		return user, err
	}
	return user, err
}

// Projects fetches the full project collection.
func (c *Client) Projects(ctx context.Context) (projects []Project, err error) {
	var payload projectList
	err = c.get(ctx, "/api/projects", &payload)
	if err != nil {
		err = errors.Wrap(err, "project fetch failed")
		return projects, err
	}
	projects = payload.Projects
	return projects, err
}

// AddProject creates a project. The server returns the complete updated
// collection, not a delta.
func (c *Client) AddProject(ctx context.Context, project Project) (projects []Project, err error) {
	var payload projectList
	err = c.post(ctx, "/api/projects", project, &payload)
	if err != nil {
		err = errors.Wrap(err, "project creation failed")
		return projects, err
	}
	projects = payload.Projects
	return projects, err
}

// DeleteProject removes a project by id and returns the complete updated
// collection.
func (c *Client) DeleteProject(ctx context.Context, id string) (projects []Project, err error) {
	var payload projectList
	err = c.doJSON(ctx, http.MethodDelete, "/api/projects/"+id, nil, &payload)
	if err != nil {
		err = errors.Wrapf(err, "project deletion failed: %s", id)
		return projects, err
	}
	projects = payload.Projects
	return projects, err
}

// DashboardAnalytics fetches the analytics feed. Best-effort.
func (c *Client) DashboardAnalytics(ctx context.Context) (analytics AnalyticsSummary, err error) {
	err = c.get(ctx, "/api/analytics/dashboard", &analytics)
	if err != nil {
		err = errors.Wrap(err, "analytics fetch failed")
		return analytics, err
	}
	return analytics, err
}

// Leaderboard fetches the top XP leaderboard rows. Best-effort.
func (c *Client) Leaderboard(ctx context.Context, limit int) (entries []LeaderboardEntry, err error) {
	err = c.get(ctx, fmt.Sprintf("/api/analytics/leaderboard?type=xp&limit=%d", limit), &entries)
	if err != nil {
		err = errors.Wrap(err, "leaderboard fetch failed")
		return entries, err
	}
	return entries, err
}

// TodayGoals fetches today's tasks. Best-effort.
func (c *Client) TodayGoals(ctx context.Context) (goals []Goal, err error) {
	err = c.get(ctx, "/api/goals/today", &goals)
	if err != nil {
		err = errors.Wrap(err, "today's goals fetch failed")
		return goals, err
	}
	return goals, err
}

// Deadlines fetches upcoming deadlines. Best-effort.
func (c *Client) Deadlines(ctx context.Context) (goals []Goal, err error) {
	err = c.get(ctx, "/api/goals/deadlines", &goals)
	if err != nil {
		err = errors.Wrap(err, "deadlines fetch failed")
		return goals, err
	}
	return goals, err
}

// QuizQuestions fetches the career quiz questions in presentation order.
func (c *Client) QuizQuestions(ctx context.Context) (questions []QuizQuestion, err error) {
	err = c.get(ctx, "/api/roadmap/quiz", &questions)
	if err != nil {
		err = errors.Wrap(err, "quiz fetch failed")
		return questions, err
	}
	return questions, err
}

// GenerateRecommendations submits one complete quiz attempt and returns the
// recommended career paths.
func (c *Client) GenerateRecommendations(ctx context.Context, answers []QuizAnswer) (recommendations []Roadmap, err error) {
	body := map[string][]QuizAnswer{
		"answers": answers,
	}

	var payload recommendationList
	err = c.post(ctx, "/api/roadmap/generate", body, &payload)
	if err != nil {
		err = errors.Wrap(err, "quiz submission failed")
		return recommendations, err
	}
	recommendations = payload.Recommendations
	return recommendations, err
}

// ChoosePath persists a career path selection and returns the newly chosen
// roadmap.
func (c *Client) ChoosePath(ctx context.Context, careerPathID string) (roadmap Roadmap, err error) {
	body := map[string]string{
		"careerPathId": careerPathID,
	}

	var payload chosenRoadmap
	err = c.post(ctx, "/api/roadmap/choose", body, &payload)
	if err != nil {
		err = errors.Wrapf(err, "career path selection failed: %s", careerPathID)
		return roadmap, err
	}
	roadmap = payload.Roadmap
	return roadmap, err
}

// get issues an authenticated GET and unmarshals the response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) (err error) {
	err = c.doJSON(ctx, http.MethodGet, path, nil, out)
	return err
}

// post issues an authenticated POST with a JSON body.
func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) (err error) {
	err = c.doJSON(ctx, http.MethodPost, path, body, out)
	return err
}

// doJSON performs one request/response exchange: marshal, send with auth and
// correlation headers, check status, unmarshal.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) (err error) {
	var reqBody io.Reader
	if body != nil {
		var data []byte
		data, err = json.Marshal(body)
		if err != nil {
			err = errors.Wrap(err, "failed to marshal request body")
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	var resp *http.Response
	resp, err = c.httpClient.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err = &APIError{
			Status:  resp.StatusCode,
			Message: extractServerMessage(respBody),
		}
		return err
	}

	if out != nil && len(respBody) > 0 {
		err = json.Unmarshal(respBody, out)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse response: %s", string(respBody))
			return err
		}
	}

	return err
}

// extractServerMessage pulls the error text out of a failure payload. The
// server uses either {"message": ...} or {"error": ...}.
func extractServerMessage(body []byte) (msg string) {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	err := json.Unmarshal(body, &payload)
	if err != nil {
		return msg
	}

	msg = payload.Message
	if msg == "" {
		msg = payload.Error
	}
	return msg
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) (notFound bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		notFound = apiErr.Status == http.StatusNotFound
	}
	return notFound
}

// IsAPIError reports whether err carries a server status, as opposed to a
// transport-level failure, and returns it when so.
func IsAPIError(err error) (apiErr *APIError, ok bool) {
	ok = errors.As(err, &apiErr)
	return apiErr, ok
}
