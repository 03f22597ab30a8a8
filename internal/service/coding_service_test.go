package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/judge"
	"github.com/lshigami/Placemate/internal/model"
)

func newCodingFixture(t *testing.T, j *fakeJudge) (*env, CodingService, *model.User, *dto.CodingProblemDTO) {
	t.Helper()
	e := newEnv(t)
	author := e.createUser(t, "hr", model.RoleInterviewer)
	student := e.createUser(t, "asha", model.RoleStudent)
	svc := NewCodingService(e.coding, e.users, j, e.subjectScore, e.db)

	problem, err := svc.CreateProblem(Actor{UserID: author.ID, Role: model.RoleInterviewer}, dto.CodingProblemCreateDTO{
		Title:      "Echo",
		Statement:  "Print the input.",
		Difficulty: "easy",
		TestCases: []dto.CodingTestCaseDTO{
			{Stdin: "1", ExpectedOutput: "1"},
			{Stdin: "2", ExpectedOutput: "2"},
			{Stdin: "3", ExpectedOutput: "3", Hidden: true},
			{Stdin: "4", ExpectedOutput: "4", Hidden: true},
		},
	})
	if err != nil {
		t.Fatalf("CreateProblem: %v", err)
	}
	return e, svc, student, problem
}

func TestCodingProblemHidesHiddenCases(t *testing.T) {
	_, svc, _, problem := newCodingFixture(t, &fakeJudge{})
	if len(problem.Examples) != 2 {
		t.Fatalf("create returned %d examples, want 2", len(problem.Examples))
	}
	got, err := svc.GetProblem(problem.ID)
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	for _, ex := range got.Examples {
		if ex.Stdin == "3" || ex.Stdin == "4" {
			t.Errorf("hidden case leaked: %+v", ex)
		}
	}
	list, err := svc.ListProblems()
	if err != nil || len(list) != 1 || list[0].Title != "Echo" {
		t.Errorf("ListProblems = %+v, %v", list, err)
	}
	if _, err := svc.GetProblem(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown problem: err = %v", err)
	}
}

func TestCodingSubmitAllPass(t *testing.T) {
	e, svc, student, problem := newCodingFixture(t, &fakeJudge{})

	res, err := svc.Submit(context.Background(), student.ID, problem.ID, dto.SubmitCodeRequest{LanguageID: judge.LanguagePython, SourceCode: "print(input())"}, start)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Passed != 4 || res.Failed != 0 || res.Percentage != 100 || res.Status != SubmissionAccepted {
		t.Errorf("result = %+v", res)
	}
	u, _ := e.users.FindByID(student.ID)
	if u.CodingScore != 100 || u.CodingAttempts != 1 {
		t.Errorf("coding score = %v after %d attempts", u.CodingScore, u.CodingAttempts)
	}
}

func TestCodingSubmitPartial(t *testing.T) {
	j := &fakeJudge{replies: map[string]*judge.Result{
		"2": {Stdout: "22\n"},
		"4": {Stdout: "", Stderr: "Traceback"},
	}}
	e, svc, student, problem := newCodingFixture(t, j)

	res, err := svc.Submit(context.Background(), student.ID, problem.ID, dto.SubmitCodeRequest{LanguageID: judge.LanguageCPP, SourceCode: "..."}, start)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Passed != 2 || res.Failed != 2 || res.Percentage != 50 || res.Status != SubmissionPartial {
		t.Errorf("result = %+v", res)
	}
	if res.Output != "22\n" {
		t.Errorf("output = %q, want output of the first visible failing case", res.Output)
	}
	if j.calls != 4 {
		t.Errorf("judge called %d times, want 4", j.calls)
	}

	subs, err := e.coding.FindSubmissionsByUser(student.ID)
	if err != nil || len(subs) != 1 || subs[0].Status != SubmissionPartial {
		t.Errorf("stored submissions = %+v, %v", subs, err)
	}
}

func TestCodingSubmitFailedRunsDoNotPass(t *testing.T) {
	j := &fakeJudge{replies: map[string]*judge.Result{
		"1": {Stdout: "1\n", Stderr: "warning: deprecated"},
		"3": {Stdout: "3\n", Status: judge.Status{ID: judge.StatusTimeLimitExceeded, Description: "Time Limit Exceeded"}},
	}}
	_, svc, student, problem := newCodingFixture(t, j)

	res, err := svc.Submit(context.Background(), student.ID, problem.ID, dto.SubmitCodeRequest{LanguageID: judge.LanguagePython, SourceCode: "..."}, start)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Passed != 2 || res.Failed != 2 || res.Percentage != 50 || res.Status != SubmissionPartial {
		t.Errorf("result = %+v", res)
	}
	if res.Output != "1\n" {
		t.Errorf("output = %q, want output of the first visible failing case", res.Output)
	}
}

func TestCodingSubmitCompileError(t *testing.T) {
	j := &fakeJudge{replies: map[string]*judge.Result{
		"1": {CompileOutput: "main.c:1: error"},
		"2": {CompileOutput: "main.c:1: error"},
		"3": {CompileOutput: "main.c:1: error"},
		"4": {CompileOutput: "main.c:1: error"},
	}}
	_, svc, student, problem := newCodingFixture(t, j)
	res, err := svc.Submit(context.Background(), student.ID, problem.ID, dto.SubmitCodeRequest{LanguageID: judge.LanguageC, SourceCode: "int main("}, start)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Status != SubmissionError || res.Passed != 0 || res.Percentage != 0 || res.Output != "main.c:1: error" {
		t.Errorf("result = %+v", res)
	}
}

func TestCodingSubmitJudgeDown(t *testing.T) {
	e, svc, student, problem := newCodingFixture(t, &fakeJudge{err: errors.New("connection refused")})
	_, err := svc.Submit(context.Background(), student.ID, problem.ID, dto.SubmitCodeRequest{LanguageID: judge.LanguageJava, SourceCode: "class Main {}"}, start)
	if !errors.Is(err, ErrJudgeUnavailable) {
		t.Fatalf("err = %v, want ErrJudgeUnavailable", err)
	}
	u, _ := e.users.FindByID(student.ID)
	if u.CodingAttempts != 0 {
		t.Errorf("failed judge run counted as an attempt")
	}
}

func TestCodingRun(t *testing.T) {
	j := &fakeJudge{replies: map[string]*judge.Result{
		"boom": {Stderr: "panic", Status: judge.Status{ID: 11, Description: "Runtime Error (NZEC)"}},
	}}
	_, svc, _, _ := newCodingFixture(t, j)

	res, err := svc.Run(context.Background(), dto.RunCodeRequest{LanguageID: judge.LanguageJavaScript, SourceCode: "x", Stdin: "boom"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Output != "panic" || res.Status != "Runtime Error (NZEC)" {
		t.Errorf("run = %+v", res)
	}

	if _, err := svc.Run(context.Background(), dto.RunCodeRequest{LanguageID: 999, SourceCode: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unsupported language: err = %v, want ErrInvalidInput", err)
	}
}

func TestNormalizeOutput(t *testing.T) {
	tests := map[string]string{
		"3\n":             "3",
		"  a b \r\nc\t\n": "a b\nc",
		"":                "",
	}
	for in, want := range tests {
		if got := normalizeOutput(in); got != want {
			t.Errorf("normalizeOutput(%q) = %q, want %q", in, got, want)
		}
	}
}
