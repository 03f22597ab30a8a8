package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/lshigami/Placemate/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InterviewerTestService lets interviewers schedule tests, author their
// questions and read results.
type InterviewerTestService interface {
	CreateTest(actor Actor, req dto.TestCreateDTO, now time.Time) (*dto.InterviewerTestDTO, error)
	AddQuestions(actor Actor, testID uint, req dto.AddQuestionsDTO) ([]dto.QuestionAdminDTO, error)
	GetQuestions(actor Actor, testID uint) ([]dto.QuestionAdminDTO, error)
	ListTests(actor Actor, now time.Time) ([]dto.InterviewerTestDTO, error)
	GetResults(actor Actor, testID uint, now time.Time) (*dto.TestResultsDTO, error)
	DeleteTest(actor Actor, testID uint) error
	// OwnedTest loads a test the actor is allowed to manage.
	OwnedTest(actor Actor, testID uint) (*model.Test, error)
}

type interviewerTestService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.TestAttemptRepository
	userRepo     repository.UserRepository
	db           *gorm.DB
}

func NewInterviewerTestService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.TestAttemptRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) InterviewerTestService {
	return &interviewerTestService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		userRepo:     userRepo,
		db:           db,
	}
}

func (s *interviewerTestService) CreateTest(actor Actor, req dto.TestCreateDTO, now time.Time) (*dto.InterviewerTestDTO, error) {
	if len(req.Questions) > req.NumQuestions {
		return nil, fmt.Errorf("%w: %d questions given but the test declares %d", ErrInvalidInput, len(req.Questions), req.NumQuestions)
	}
	if req.ScheduledAt.Before(now.Add(-time.Minute)) {
		return nil, fmt.Errorf("%w: scheduled_at is in the past", ErrInvalidInput)
	}

	questions, err := buildQuestions(req.Questions, 0)
	if err != nil {
		return nil, err
	}

	company := strings.TrimSpace(req.CompanyName)
	if company == "" {
		if author, err := s.userRepo.FindByID(actor.UserID); err == nil {
			company = author.CompanyName
		}
	}

	test := model.Test{
		InterviewerID:   actor.UserID,
		CompanyName:     company,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Category:        req.Category,
		ScheduledAt:     req.ScheduledAt.UTC(),
		DurationMinutes: req.DurationMinutes,
		NegativeMarks:   req.NegativeMarks,
		NumQuestions:    req.NumQuestions,
		Questions:       questions,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Uint("interviewerID", actor.UserID).Msg("CreateTest: Failed to create test")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}
	log.Info().Uint("testID", test.ID).Int("questions", len(questions)).Msg("CreateTest: Test scheduled")

	resp := interviewerTest(test, len(test.Questions), now)
	return &resp, nil
}

func (s *interviewerTestService) OwnedTest(actor Actor, testID uint) (*model.Test, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		return nil, notFound(err)
	}
	if actor.Role != model.RoleAdmin && test.InterviewerID != actor.UserID {
		return nil, ErrForbidden
	}
	return test, nil
}

func (s *interviewerTestService) AddQuestions(actor Actor, testID uint, req dto.AddQuestionsDTO) ([]dto.QuestionAdminDTO, error) {
	if _, err := s.OwnedTest(actor, testID); err != nil {
		return nil, err
	}

	var created []model.Question
	err := s.db.Transaction(func(tx *gorm.DB) error {
		test, err := s.testRepo.WithTx(tx).FindByIDForUpdate(testID)
		if err != nil {
			return notFound(err)
		}
		questionRepo := s.questionRepo.WithTx(tx)
		count, err := questionRepo.CountByTestID(testID)
		if err != nil {
			return err
		}
		remaining := test.NumQuestions - int(count)
		if len(req.Questions) > remaining {
			return fmt.Errorf("%w: only %d question slots remain", ErrInvalidInput, remaining)
		}
		lastSlNo, err := questionRepo.MaxSlNo(testID)
		if err != nil {
			return err
		}
		created, err = buildQuestions(req.Questions, lastSlNo)
		if err != nil {
			return err
		}
		for i := range created {
			created[i].TestID = testID
		}
		return questionRepo.CreateBatch(created)
	})
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("AddQuestions: Failed")
		return nil, err
	}

	out := make([]dto.QuestionAdminDTO, len(created))
	for i, q := range created {
		out[i] = questionAdmin(q)
	}
	return out, nil
}

func (s *interviewerTestService) GetQuestions(actor Actor, testID uint) ([]dto.QuestionAdminDTO, error) {
	if _, err := s.OwnedTest(actor, testID); err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions for test %d: %w", testID, err)
	}
	out := make([]dto.QuestionAdminDTO, len(questions))
	for i, q := range questions {
		out[i] = questionAdmin(q)
	}
	return out, nil
}

func (s *interviewerTestService) ListTests(actor Actor, now time.Time) ([]dto.InterviewerTestDTO, error) {
	tests, err := s.testRepo.FindByInterviewer(actor.UserID)
	if err != nil {
		log.Error().Err(err).Uint("interviewerID", actor.UserID).Msg("ListTests: Repository error")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	out := make([]dto.InterviewerTestDTO, 0, len(tests))
	for _, t := range tests {
		count, err := s.questionRepo.CountByTestID(t.ID)
		if err != nil {
			return nil, fmt.Errorf("error counting questions for test %d: %w", t.ID, err)
		}
		out = append(out, interviewerTest(t, int(count), now))
	}
	return out, nil
}

func (s *interviewerTestService) GetResults(actor Actor, testID uint, now time.Time) (*dto.TestResultsDTO, error) {
	test, err := s.OwnedTest(actor, testID)
	if err != nil {
		return nil, err
	}
	count, err := s.questionRepo.CountByTestID(testID)
	if err != nil {
		return nil, fmt.Errorf("error counting questions for test %d: %w", testID, err)
	}
	attempts, err := s.attemptRepo.FindAllByTest(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetResults: Repository error")
		return nil, fmt.Errorf("error fetching attempts for test %d: %w", testID, err)
	}

	total := test.NumQuestions
	if total <= 0 {
		total = int(count)
	}
	resp := dto.TestResultsDTO{
		Test:    interviewerTest(*test, int(count), now),
		Results: make([]dto.StudentResultDTO, 0, len(attempts)),
	}
	for _, a := range attempts {
		result := scoring.ScoreResult{CorrectCount: a.CorrectCount, WrongCount: a.WrongCount}
		resp.Results = append(resp.Results, dto.StudentResultDTO{
			AttemptID:    a.ID,
			UserID:       a.UserID,
			StudentName:  a.User.Name,
			Email:        a.User.Email,
			Percentage:   a.Percentage,
			CorrectCount: a.CorrectCount,
			WrongCount:   a.WrongCount,
			Unanswered:   result.Unanswered(total),
			SubmittedAt:  a.SubmittedAt,
		})
	}
	return &resp, nil
}

func (s *interviewerTestService) DeleteTest(actor Actor, testID uint) error {
	if _, err := s.OwnedTest(actor, testID); err != nil {
		return err
	}
	if err := s.testRepo.Delete(testID); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("DeleteTest: Repository error")
		return fmt.Errorf("error deleting test %d: %w", testID, err)
	}
	return nil
}

// buildQuestions validates authored questions and numbers them after
// lastSlNo.
func buildQuestions(in []dto.QuestionCreateDTO, lastSlNo int) ([]model.Question, error) {
	out := make([]model.Question, 0, len(in))
	for i, q := range in {
		options := cleanOptions(q.Options)
		correct, ok := resolveCorrectAnswer(options, q.CorrectAnswer)
		if !ok {
			return nil, fmt.Errorf("%w: question %d: correct answer %q is not one of its options", ErrInvalidInput, lastSlNo+i+1, q.CorrectAnswer)
		}
		if len(options) < 2 {
			return nil, fmt.Errorf("%w: question %d needs at least two options", ErrInvalidInput, lastSlNo+i+1)
		}
		out = append(out, model.Question{
			SlNo:          lastSlNo + i + 1,
			Prompt:        strings.TrimSpace(q.Prompt),
			Options:       options,
			CorrectAnswer: correct,
			ImageURL:      q.ImageURL,
		})
	}
	return out, nil
}

func cleanOptions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// resolveCorrectAnswer accepts the option text itself, or an option letter
// (A, B, ...) or 1-based number, and returns the option text.
func resolveCorrectAnswer(options []string, correct string) (string, bool) {
	correct = strings.TrimSpace(correct)
	if correct == "" {
		return "", false
	}
	for _, o := range options {
		if o == correct {
			return o, true
		}
	}
	if len(correct) == 1 {
		c := strings.ToUpper(correct)[0]
		var idx int
		switch {
		case c >= 'A' && c <= 'Z':
			idx = int(c - 'A')
		case c >= '1' && c <= '9':
			idx = int(c - '1')
		default:
			return "", false
		}
		if idx < len(options) {
			return options[idx], true
		}
	}
	return "", false
}
