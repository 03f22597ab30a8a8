package dto

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	USN      string `json:"usn"`
	Year     string `json:"year"`
}

type InterviewerSignupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"company_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TestAttemptSubmitDTO carries the selected option per question position
// (0-based, in sl_no order). Unanswered positions are omitted.
type TestAttemptSubmitDTO struct {
	Answers    map[int]string `json:"answers"`
	AutoSubmit bool           `json:"auto_submit"`
}

type RunCodeRequest struct {
	LanguageID int    `json:"language_id" binding:"required"`
	SourceCode string `json:"source_code" binding:"required"`
	Stdin      string `json:"stdin"`
}

type SubmitCodeRequest struct {
	LanguageID int    `json:"language_id" binding:"required"`
	SourceCode string `json:"source_code" binding:"required"`
}

type PracticeTipsRequest struct {
	WeakAreas []string `json:"weak_areas" binding:"required,min=1,dive,required"`
}
