package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
)

func TestCreateTestAndAddQuestions(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "hr", model.RoleInterviewer)
	svc := e.interviewerTests()
	actor := Actor{UserID: owner.ID, Role: model.RoleInterviewer}
	now := start.Add(-24 * time.Hour)

	created, err := svc.CreateTest(actor, dto.TestCreateDTO{
		CompanyName:     "Acme",
		Title:           " Quant round ",
		Category:        model.CategoryAptitude,
		ScheduledAt:     start,
		DurationMinutes: 45,
		NumQuestions:    3,
		Questions: []dto.QuestionCreateDTO{
			{Prompt: "2+2", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		},
	}, now)
	if err != nil {
		t.Fatalf("CreateTest: %v", err)
	}
	if created.Title != "Quant round" || created.QuestionCount != 1 || created.Status != "upcoming" {
		t.Errorf("created = %+v", created)
	}

	added, err := svc.AddQuestions(actor, created.ID, dto.AddQuestionsDTO{Questions: []dto.QuestionCreateDTO{
		{Prompt: "3*3", Options: []string{"6", "9", "12"}, CorrectAnswer: "B"},
		{Prompt: "10/2", Options: []string{"2", "5"}, CorrectAnswer: "2"},
	}})
	if err != nil {
		t.Fatalf("AddQuestions: %v", err)
	}
	if len(added) != 2 || added[0].SlNo != 2 || added[0].CorrectAnswer != "9" || added[1].CorrectAnswer != "2" {
		t.Errorf("added = %+v", added)
	}

	_, err = svc.AddQuestions(actor, created.ID, dto.AddQuestionsDTO{Questions: []dto.QuestionCreateDTO{
		{Prompt: "extra", Options: []string{"a", "b"}, CorrectAnswer: "a"},
	}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("adding past num_questions: err = %v, want ErrInvalidInput", err)
	}

	questions, err := svc.GetQuestions(actor, created.ID)
	if err != nil || len(questions) != 3 {
		t.Fatalf("GetQuestions = %d, %v", len(questions), err)
	}

	list, err := svc.ListTests(actor, now)
	if err != nil || len(list) != 1 || list[0].QuestionCount != 3 {
		t.Fatalf("ListTests = %+v, %v", list, err)
	}
}

func TestCreateTestValidation(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "hr", model.RoleInterviewer)
	svc := e.interviewerTests()
	actor := Actor{UserID: owner.ID, Role: model.RoleInterviewer}

	base := func() dto.TestCreateDTO {
		return dto.TestCreateDTO{Title: "T", Category: model.CategoryAptitude, ScheduledAt: start, DurationMinutes: 30, NumQuestions: 1}
	}
	tests := []struct {
		name   string
		mutate func(*dto.TestCreateDTO)
	}{
		{"in the past", func(r *dto.TestCreateDTO) { r.ScheduledAt = start.Add(-48 * time.Hour) }},
		{"too many questions", func(r *dto.TestCreateDTO) {
			r.Questions = []dto.QuestionCreateDTO{
				{Prompt: "a", Options: []string{"x", "y"}, CorrectAnswer: "x"},
				{Prompt: "b", Options: []string{"x", "y"}, CorrectAnswer: "x"},
			}
		}},
		{"answer not an option", func(r *dto.TestCreateDTO) {
			r.Questions = []dto.QuestionCreateDTO{{Prompt: "a", Options: []string{"x", "y"}, CorrectAnswer: "z"}}
		}},
		{"one usable option", func(r *dto.TestCreateDTO) {
			r.Questions = []dto.QuestionCreateDTO{{Prompt: "a", Options: []string{"x", " "}, CorrectAnswer: "x"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			if _, err := svc.CreateTest(actor, req, start.Add(-time.Hour)); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestInterviewerOwnership(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "hr", model.RoleInterviewer)
	other := e.createUser(t, "rival", model.RoleInterviewer)
	admin := e.createUser(t, "root", model.RoleAdmin)
	test := e.createTest(t, owner.ID, model.CategoryAptitude, start, "A")
	svc := e.interviewerTests()

	if _, err := svc.GetResults(Actor{UserID: other.ID, Role: model.RoleInterviewer}, test.ID, start); !errors.Is(err, ErrForbidden) {
		t.Errorf("other interviewer: err = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteTest(Actor{UserID: other.ID, Role: model.RoleInterviewer}, test.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("other interviewer delete: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetResults(Actor{UserID: admin.ID, Role: model.RoleAdmin}, test.ID, start); err != nil {
		t.Errorf("admin: %v", err)
	}
	if err := svc.DeleteTest(Actor{UserID: owner.ID, Role: model.RoleInterviewer}, test.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.OwnedTest(Actor{UserID: owner.ID}, test.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: err = %v, want ErrNotFound", err)
	}
}

func TestGetResults(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "hr", model.RoleInterviewer)
	asha := e.createUser(t, "asha", model.RoleStudent)
	ravi := e.createUser(t, "ravi", model.RoleStudent)
	test := e.createTest(t, owner.ID, model.CategoryAptitude, start, "A", "B", "C", "D")
	sub := e.submissions()

	if _, err := sub.SubmitTest(asha.ID, test.ID, dto.TestAttemptSubmitDTO{Answers: map[int]string{0: "A", 1: "B"}, AutoSubmit: true}, start); err != nil {
		t.Fatalf("asha: %v", err)
	}
	if _, err := sub.SubmitTest(ravi.ID, test.ID, dto.TestAttemptSubmitDTO{Answers: map[int]string{0: "A", 1: "B", 2: "C", 3: "D"}}, start); err != nil {
		t.Fatalf("ravi: %v", err)
	}

	res, err := e.interviewerTests().GetResults(Actor{UserID: owner.ID, Role: model.RoleInterviewer}, test.ID, start.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if res.Test.Status != "closed" || len(res.Results) != 2 {
		t.Fatalf("results = %+v", res)
	}
	top := res.Results[0]
	if top.StudentName != "ravi" || top.Percentage != 100 || top.Email != "ravi@example.com" {
		t.Errorf("top row = %+v", top)
	}
	if res.Results[1].Unanswered != 2 {
		t.Errorf("asha unanswered = %d, want 2", res.Results[1].Unanswered)
	}
}

func TestResolveCorrectAnswer(t *testing.T) {
	options := []string{"red", "green", "blue"}
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"green", "green", true},
		{"c", "blue", true},
		{"1", "red", true},
		{"D", "", false},
		{"4", "", false},
		{"", "", false},
		{"purple", "", false},
	}
	for _, tt := range tests {
		got, ok := resolveCorrectAnswer(options, tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("resolveCorrectAnswer(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestConcurrentAddQuestionsStayWithinDeclaredCount(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "hr", model.RoleInterviewer)
	svc := e.interviewerTests()
	actor := Actor{UserID: owner.ID, Role: model.RoleInterviewer}

	created, err := svc.CreateTest(actor, dto.TestCreateDTO{
		Title:           "Verbal",
		Category:        model.CategoryAptitude,
		ScheduledAt:     start,
		DurationMinutes: 30,
		NumQuestions:    4,
	}, start.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CreateTest: %v", err)
	}

	pair := dto.AddQuestionsDTO{Questions: []dto.QuestionCreateDTO{
		{Prompt: "p", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{Prompt: "q", Options: []string{"a", "b"}, CorrectAnswer: "b"},
	}}
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddQuestions(actor, created.ID, pair); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			} else if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("AddQuestions: %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := e.questions.CountByTestID(created.ID)
	if err != nil {
		t.Fatalf("CountByTestID: %v", err)
	}
	if accepted != 2 || n != 4 {
		t.Errorf("accepted %d batches and stored %d questions, want 2 and 4", accepted, n)
	}
}
