package dto

import "time"

// QuestionResponseDTO is a question as shown to a test taker; the correct
// answer is never included.
type QuestionResponseDTO struct {
	ID       uint     `json:"id"`
	SlNo     int      `json:"sl_no"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	ImageURL *string  `json:"image_url,omitempty"`
}

// TestResponseDTO is a test opened for taking.
type TestResponseDTO struct {
	ID              uint                  `json:"id"`
	CompanyName     string                `json:"company_name"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Category        string                `json:"category"`
	ScheduledAt     time.Time             `json:"scheduled_at"`
	EndsAt          time.Time             `json:"ends_at"`
	DurationMinutes int                   `json:"duration_minutes"`
	NegativeMarks   float64               `json:"negative_marks"`
	NumQuestions    int                   `json:"num_questions"`
	Questions       []QuestionResponseDTO `json:"questions"`
}

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID              uint      `json:"id"`
	CompanyName     string    `json:"company_name"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	NumQuestions    int       `json:"num_questions"`
	Status          string    `json:"status"`
	Attempted       bool      `json:"attempted"`
}

// TestListDTO groups tests by schedule window.
type TestListDTO struct {
	Ongoing  []TestSummaryDTO `json:"ongoing"`
	Upcoming []TestSummaryDTO `json:"upcoming"`
	Closed   []TestSummaryDTO `json:"closed"`
}

// TestAttemptResultDTO is returned after a submission.
type TestAttemptResultDTO struct {
	ID            uint      `json:"id"`
	TestID        uint      `json:"test_id"`
	TestTitle     string    `json:"test_title,omitempty"`
	CorrectCount  int       `json:"correct_count"`
	WrongCount    int       `json:"wrong_count"`
	Unanswered    int       `json:"unanswered"`
	RawScore      float64   `json:"raw_score"`
	Percentage    float64   `json:"percentage"`
	AutoSubmitted bool      `json:"auto_submitted"`
	SubjectScore  float64   `json:"subject_score"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// TestAttemptSummaryDTO is for listing a user's attempts.
type TestAttemptSummaryDTO struct {
	ID           uint      `json:"id"`
	TestID       uint      `json:"test_id"`
	TestTitle    string    `json:"test_title"`
	Category     string    `json:"category"`
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	Percentage   float64   `json:"percentage"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
