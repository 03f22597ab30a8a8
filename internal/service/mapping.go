package service

import (
	"time"

	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/scoring"
)

func scoringQuestions(questions []model.Question) []scoring.Question {
	out := make([]scoring.Question, len(questions))
	for i, q := range questions {
		out[i] = scoring.Question{CorrectAnswer: q.CorrectAnswer, Options: q.Options}
	}
	return out
}

func testSummary(t model.Test, now time.Time, attempted bool) dto.TestSummaryDTO {
	return dto.TestSummaryDTO{
		ID:              t.ID,
		CompanyName:     t.CompanyName,
		Title:           t.Title,
		Category:        t.Category,
		ScheduledAt:     t.ScheduledAt,
		DurationMinutes: t.DurationMinutes,
		NumQuestions:    t.NumQuestions,
		Status:          string(scoring.Classify(now, t.ScheduledAt, t.DurationMinutes)),
		Attempted:       attempted,
	}
}

func interviewerTest(t model.Test, questionCount int, now time.Time) dto.InterviewerTestDTO {
	return dto.InterviewerTestDTO{
		ID:              t.ID,
		CompanyName:     t.CompanyName,
		Title:           t.Title,
		Description:     t.Description,
		Category:        t.Category,
		ScheduledAt:     t.ScheduledAt,
		DurationMinutes: t.DurationMinutes,
		NegativeMarks:   t.NegativeMarks,
		NumQuestions:    t.NumQuestions,
		QuestionCount:   questionCount,
		Status:          string(scoring.Classify(now, t.ScheduledAt, t.DurationMinutes)),
		CreatedAt:       t.CreatedAt,
	}
}

func questionAdmin(q model.Question) dto.QuestionAdminDTO {
	return dto.QuestionAdminDTO{
		ID:            q.ID,
		TestID:        q.TestID,
		SlNo:          q.SlNo,
		Prompt:        q.Prompt,
		Options:       []string(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		ImageURL:      q.ImageURL,
	}
}
