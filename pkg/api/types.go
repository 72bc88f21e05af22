package api

// Skill is one entry in a user's ordered skill list.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// UserProfile is the server-of-record user entity. The client holds a cached
// copy that is refreshed on each dashboard load.
type UserProfile struct {
	ID      string   `json:"_id,omitempty"`
	Name    string   `json:"name"`
	Email   string   `json:"email,omitempty"`
	Skills  []Skill  `json:"skills,omitempty"`
	Streak  int      `json:"streak,omitempty"`
	Level   int      `json:"level,omitempty"`
	XP      int      `json:"xp,omitempty"`
	Roadmap *Roadmap `json:"roadmap,omitempty"`
}

// Project statuses as the server reports them.
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusCompleted  = "completed"
)

// Project is one portfolio project.
type Project struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies,omitempty"`
	LiveDemoURL   string   `json:"liveDemoUrl,omitempty"`
	SourceCodeURL string   `json:"sourceCodeUrl,omitempty"`
	Status        string   `json:"status,omitempty"`
}

// RoadmapTask is a single actionable item inside a milestone.
type RoadmapTask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Milestone groups ordered tasks under one heading.
type Milestone struct {
	Title string        `json:"title"`
	Tasks []RoadmapTask `json:"tasks,omitempty"`
}

// Roadmap is a career path, either a candidate recommendation or the user's
// chosen path. The server populates CareerPathName on chosen roadmaps and
// Name on candidates.
type Roadmap struct {
	ID             string      `json:"_id"`
	Name           string      `json:"name,omitempty"`
	CareerPathName string      `json:"careerPathName,omitempty"`
	Description    string      `json:"description,omitempty"`
	Milestones     []Milestone `json:"milestones,omitempty"`
}

// DisplayName returns whichever name field the server filled in.
func (r *Roadmap) DisplayName() (name string) {
	name = r.Name
	if name == "" {
		name = r.CareerPathName
	}
	return name
}

// QuizOption is one selectable answer for a quiz question.
type QuizOption struct {
	OptionText string `json:"optionText"`
}

// QuizQuestion is one question of the career quiz, in presentation order.
type QuizQuestion struct {
	ID           string       `json:"_id"`
	QuestionText string       `json:"questionText"`
	Options      []QuizOption `json:"options"`
}

// QuizAnswer pairs a question with the option the user picked. The ordered
// sequence for one attempt is submitted atomically.
type QuizAnswer struct {
	QuestionID string `json:"questionId"`
	OptionText string `json:"optionText"`
}

// AnalyticsSummary is the dashboard analytics feed. Best-effort: the
// dashboard renders without it.
type AnalyticsSummary struct {
	TotalXP         int            `json:"totalXp,omitempty"`
	WeeklyXP        int            `json:"weeklyXp,omitempty"`
	ActiveDays      int            `json:"activeDays,omitempty"`
	CompletedTasks  int            `json:"completedTasks,omitempty"`
	SkillBreakdown  map[string]int `json:"skillBreakdown,omitempty"`
	WeeklyActivity  []int          `json:"weeklyActivity,omitempty"`
	CoursesFinished int            `json:"coursesFinished,omitempty"`
}

// LeaderboardEntry is one row of the XP leaderboard feed.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	XP     int    `json:"xp"`
	Level  int    `json:"level,omitempty"`
	Streak int    `json:"streak,omitempty"`
}

// Goal is a task or deadline from the goals feeds.
type Goal struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	Category  string `json:"category,omitempty"`
}

// authPayload is the {data:{token,user}} envelope returned by login and
// register.
type authPayload struct {
	Data struct {
		Token string      `json:"token"`
		User  UserProfile `json:"user"`
	} `json:"data"`
}

// projectList is the {projects:[...]} envelope. Every project read and
// mutation returns the complete current collection.
type projectList struct {
	Projects []Project `json:"projects"`
}

// recommendationList is the response of quiz submission.
type recommendationList struct {
	Recommendations []Roadmap `json:"recommendations"`
}

// chosenRoadmap is the response of choosing a career path.
type chosenRoadmap struct {
	Roadmap Roadmap `json:"roadmap"`
}
