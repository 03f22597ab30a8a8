package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

type UserDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	USN         string `json:"usn,omitempty"`
	Year        string `json:"year,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

type ReadinessDTO struct {
	Total     int     `json:"total"`
	Label     string  `json:"label"`
	Aptitude  float64 `json:"aptitude"`
	Coding    float64 `json:"coding"`
	SoftSkill float64 `json:"soft_skill"`
}

type DashboardDTO struct {
	User          UserDTO          `json:"user"`
	Readiness     ReadinessDTO     `json:"readiness"`
	OngoingTests  []TestSummaryDTO `json:"ongoing_tests"`
	UpcomingTests []TestSummaryDTO `json:"upcoming_tests"`
}

type LeaderboardEntryDTO struct {
	Rank      int     `json:"rank"`
	UserID    uint    `json:"user_id"`
	Name      string  `json:"name"`
	USN       string  `json:"usn,omitempty"`
	Aptitude  float64 `json:"aptitude"`
	Coding    float64 `json:"coding"`
	SoftSkill float64 `json:"soft_skill"`
	Readiness int     `json:"readiness"`
	Label     string  `json:"label"`
}

type CodingProblemSummaryDTO struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

type CodingProblemDTO struct {
	ID         uint                `json:"id"`
	Title      string              `json:"title"`
	Statement  string              `json:"statement"`
	Difficulty string              `json:"difficulty"`
	Examples   []CodingTestCaseDTO `json:"examples"`
}

type RunCodeResponse struct {
	Output string `json:"output"`
	Status string `json:"status"`
}

type CodingSubmissionDTO struct {
	ID          uint      `json:"id"`
	ProblemID   uint      `json:"problem_id"`
	LanguageID  int       `json:"language_id"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Percentage  float64   `json:"percentage"`
	Status      string    `json:"status"`
	Output      string    `json:"output,omitempty"`
	CodingScore float64   `json:"coding_score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type PracticeTipsResponse struct {
	Tips []string `json:"tips"`
}
