package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/Placemate/config"
	"github.com/lshigami/Placemate/internal/judge"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/lshigami/Placemate/internal/testutil"
	"gorm.io/gorm"
)

var start = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Scoring.SubjectScorePolicy = "average"
	return cfg
}

type env struct {
	db           *gorm.DB
	cfg          *config.Config
	users        repository.UserRepository
	tests        repository.TestRepository
	questions    repository.QuestionRepository
	attempts     repository.TestAttemptRepository
	coding       repository.CodingRepository
	subjectScore SubjectScoreService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := testConfig()
	subjectScore, err := NewSubjectScoreService(cfg)
	if err != nil {
		t.Fatalf("subject score service: %v", err)
	}
	return &env{
		db:           db,
		cfg:          cfg,
		users:        repository.NewUserRepository(db),
		tests:        repository.NewTestRepository(db),
		questions:    repository.NewQuestionRepository(db),
		attempts:     repository.NewTestAttemptRepository(db),
		coding:       repository.NewCodingRepository(db),
		subjectScore: subjectScore,
	}
}

func (e *env) interviewerTests() InterviewerTestService {
	return NewInterviewerTestService(e.tests, e.questions, e.attempts, e.users, e.db)
}

func (e *env) submissions() TestSubmissionService {
	return NewTestSubmissionService(e.cfg, e.tests, e.attempts, e.users, e.subjectScore, e.db)
}

func (e *env) createUser(t *testing.T, name, role string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: role}
	if err := e.users.Create(u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// createTest stores a test owned by owner whose questions have the given
// correct answers, each with options A-D.
func (e *env) createTest(t *testing.T, owner uint, category string, at time.Time, correct ...string) *model.Test {
	t.Helper()
	test := &model.Test{
		InterviewerID:   owner,
		Title:           "Test " + category,
		Category:        category,
		ScheduledAt:     at,
		DurationMinutes: 60,
		NumQuestions:    len(correct),
	}
	for i, c := range correct {
		test.Questions = append(test.Questions, model.Question{
			SlNo:          i + 1,
			Prompt:        "Q",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: c,
		})
	}
	if err := e.tests.Create(test); err != nil {
		t.Fatalf("create test: %v", err)
	}
	return test
}

type fakeLLM struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

// fakeJudge echoes the stdin of each submission unless a reply is set for it.
type fakeJudge struct {
	mu      sync.Mutex
	replies map[string]*judge.Result
	err     error
	calls   int
}

func (f *fakeJudge) Execute(_ context.Context, sub judge.Submission) (*judge.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.replies[sub.Stdin]; ok {
		return r, nil
	}
	return &judge.Result{Stdout: sub.Stdin + "\n", Status: judge.Status{ID: judge.StatusAccepted, Description: "Accepted"}}, nil
}
