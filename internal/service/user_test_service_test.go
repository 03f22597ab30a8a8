package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
)

func TestListTestsGroupsByWindow(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "hr", model.RoleInterviewer)
	student := e.createUser(t, "asha", model.RoleStudent)
	now := start

	later := e.createTest(t, owner.ID, model.CategoryAptitude, now.Add(3*time.Hour), "A")
	soon := e.createTest(t, owner.ID, model.CategoryAptitude, now.Add(time.Hour), "A")
	running := e.createTest(t, owner.ID, model.CategorySoftSkill, now.Add(-30*time.Minute), "A")
	done := e.createTest(t, owner.ID, model.CategoryAptitude, now.Add(-3*time.Hour), "A")

	if _, err := e.submissions().SubmitTest(student.ID, running.ID, dto.TestAttemptSubmitDTO{Answers: map[int]string{0: "A"}}, now); err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}

	list, err := NewUserTestService(e.tests, e.attempts).ListTests(student.ID, now)
	if err != nil {
		t.Fatalf("ListTests: %v", err)
	}
	if len(list.Upcoming) != 2 || list.Upcoming[0].ID != soon.ID || list.Upcoming[1].ID != later.ID {
		t.Errorf("upcoming = %+v", list.Upcoming)
	}
	if len(list.Ongoing) != 1 || list.Ongoing[0].ID != running.ID || !list.Ongoing[0].Attempted {
		t.Errorf("ongoing = %+v", list.Ongoing)
	}
	if len(list.Closed) != 1 || list.Closed[0].ID != done.ID || list.Closed[0].Status != "closed" {
		t.Errorf("closed = %+v", list.Closed)
	}
}

func TestGetTestForTaking(t *testing.T) {
	e := newEnv(t)
	owner := e.createUser(t, "hr", model.RoleInterviewer)
	student := e.createUser(t, "asha", model.RoleStudent)
	test := e.createTest(t, owner.ID, model.CategoryAptitude, start, "A", "B")
	svc := NewUserTestService(e.tests, e.attempts)

	if _, err := svc.GetTestForTaking(student.ID, test.ID, start.Add(-time.Second)); !errors.Is(err, ErrTestNotOpen) {
		t.Errorf("before start: err = %v, want ErrTestNotOpen", err)
	}
	if _, err := svc.GetTestForTaking(student.ID, test.ID, start.Add(61*time.Minute)); !errors.Is(err, ErrTestNotOpen) {
		t.Errorf("after end: err = %v, want ErrTestNotOpen", err)
	}

	got, err := svc.GetTestForTaking(student.ID, test.ID, start.Add(60*time.Minute))
	if err != nil {
		t.Fatalf("at end: %v", err)
	}
	if len(got.Questions) != 2 || got.Questions[0].SlNo != 1 || !got.EndsAt.Equal(start.Add(time.Hour)) {
		t.Errorf("test = %+v", got)
	}

	if _, err := e.submissions().SubmitTest(student.ID, test.ID, dto.TestAttemptSubmitDTO{Answers: map[int]string{0: "A", 1: "B"}}, start); err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}
	if _, err := svc.GetTestForTaking(student.ID, test.ID, start); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("after submit: err = %v, want ErrAlreadySubmitted", err)
	}
	if _, err := svc.GetTestForTaking(student.ID, 4242, start); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown test: err = %v, want ErrNotFound", err)
	}
}
