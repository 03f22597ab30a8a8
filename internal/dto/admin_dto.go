package dto

import "time"

// QuestionCreateDTO is one question authored by an interviewer.
type QuestionCreateDTO struct {
	Prompt        string   `json:"prompt" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,max=6,dive,required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	ImageURL      *string  `json:"image_url" binding:"omitempty,url"`
}

// TestCreateDTO is for an interviewer to schedule a new test. Questions may be
// added later, by hand or by spreadsheet import.
type TestCreateDTO struct {
	CompanyName     string              `json:"company_name"`
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description,omitempty"`
	Category        string              `json:"category" binding:"required,oneof=aptitude soft_skill"`
	ScheduledAt     time.Time           `json:"scheduled_at" binding:"required"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required,min=1,max=600"`
	NegativeMarks   float64             `json:"negative_marks" binding:"min=0,max=1"`
	NumQuestions    int                 `json:"num_questions" binding:"required,min=1,max=200"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// AddQuestionsDTO appends questions to an existing test.
type AddQuestionsDTO struct {
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// InterviewerTestDTO is a test as its author sees it.
type InterviewerTestDTO struct {
	ID              uint      `json:"id"`
	CompanyName     string    `json:"company_name"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	NegativeMarks   float64   `json:"negative_marks"`
	NumQuestions    int       `json:"num_questions"`
	QuestionCount   int       `json:"question_count"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuestionAdminDTO includes the correct answer.
type QuestionAdminDTO struct {
	ID            uint     `json:"id"`
	TestID        uint     `json:"test_id"`
	SlNo          int      `json:"sl_no"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	ImageURL      *string  `json:"image_url,omitempty"`
}

// ImportResultDTO reports a spreadsheet import.
type ImportResultDTO struct {
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Remaining int      `json:"remaining_slots"`
	Errors    []string `json:"errors,omitempty"`
}

// StudentResultDTO is one row of a test's result table.
type StudentResultDTO struct {
	AttemptID    uint      `json:"attempt_id"`
	UserID       uint      `json:"user_id"`
	StudentName  string    `json:"student_name"`
	Email        string    `json:"email"`
	Percentage   float64   `json:"percentage"`
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	Unanswered   int       `json:"unanswered"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// TestResultsDTO is the interviewer's result page for one test.
type TestResultsDTO struct {
	Test    InterviewerTestDTO `json:"test"`
	Results []StudentResultDTO `json:"results"`
}

// TestAnalyticsDTO aggregates a test's attempts.
type TestAnalyticsDTO struct {
	TestID            uint           `json:"test_id"`
	Attempts          int            `json:"attempts"`
	AveragePercentage float64        `json:"average_percentage"`
	AverageCorrect    float64        `json:"average_correct"`
	AverageWrong      float64        `json:"average_wrong"`
	HighestPercentage float64        `json:"highest_percentage"`
	LowestPercentage  float64        `json:"lowest_percentage"`
	Bands             map[string]int `json:"bands"`
	Insight           string         `json:"insight"`
}

// StudentInsightDTO is an AI-written note on one student's result.
type StudentInsightDTO struct {
	UserID      uint    `json:"user_id"`
	StudentName string  `json:"student_name"`
	Percentage  float64 `json:"percentage"`
	Insight     string  `json:"insight"`
}

// CodingProblemCreateDTO is for an interviewer to publish a coding problem.
type CodingProblemCreateDTO struct {
	Title      string              `json:"title" binding:"required"`
	Statement  string              `json:"statement" binding:"required"`
	Difficulty string              `json:"difficulty" binding:"required,oneof=easy medium hard"`
	TestCases  []CodingTestCaseDTO `json:"test_cases" binding:"required,min=1,dive"`
}

type CodingTestCaseDTO struct {
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output" binding:"required"`
	Hidden         bool   `json:"hidden"`
}
