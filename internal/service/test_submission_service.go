package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Placemate/config"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/lshigami/Placemate/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LateSubmitGrace is how long after a test closes a submission is still
// taken. Timers in browsers fire a little late.
const LateSubmitGrace = 2 * time.Minute

// TestSubmissionService scores submitted tests and records them.
type TestSubmissionService interface {
	SubmitTest(userID, testID uint, req dto.TestAttemptSubmitDTO, now time.Time) (*dto.TestAttemptResultDTO, error)
	GetMyAttempts(userID uint) ([]dto.TestAttemptSummaryDTO, error)
}

type testSubmissionService struct {
	testRepo     repository.TestRepository
	attemptRepo  repository.TestAttemptRepository
	userRepo     repository.UserRepository
	subjectScore SubjectScoreService
	allowPartial bool
	db           *gorm.DB
}

func NewTestSubmissionService(
	cfg *config.Config,
	testRepo repository.TestRepository,
	attemptRepo repository.TestAttemptRepository,
	userRepo repository.UserRepository,
	subjectScore SubjectScoreService,
	db *gorm.DB,
) TestSubmissionService {
	return &testSubmissionService{
		testRepo:     testRepo,
		attemptRepo:  attemptRepo,
		userRepo:     userRepo,
		subjectScore: subjectScore,
		allowPartial: cfg.Scoring.AllowPartialSubmit,
		db:           db,
	}
}

func (s *testSubmissionService) SubmitTest(userID, testID uint, req dto.TestAttemptSubmitDTO, now time.Time) (*dto.TestAttemptResultDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("SubmitTest: Test not found")
		return nil, notFound(err)
	}
	if len(test.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	late := false
	switch scoring.Classify(now, test.ScheduledAt, test.DurationMinutes) {
	case scoring.Upcoming:
		return nil, ErrTestNotOpen
	case scoring.Closed:
		if now.After(scoring.WindowEnd(test.ScheduledAt, test.DurationMinutes).Add(LateSubmitGrace)) {
			return nil, ErrTestNotOpen
		}
		late = true
	}

	answers := make(scoring.Attempt, len(req.Answers))
	for idx, ans := range req.Answers {
		if idx < 0 || idx >= len(test.Questions) || ans == "" {
			continue
		}
		answers[idx] = ans
	}
	if len(answers) < len(test.Questions) && !(s.allowPartial || req.AutoSubmit || late) {
		return nil, fmt.Errorf("%w: %d of %d answered", ErrIncompleteSubmission, len(answers), len(test.Questions))
	}

	result := scoring.Score(scoringQuestions(test.Questions), answers, test.NumQuestions, test.NegativeMarks)

	attempt := model.TestAttempt{
		TestID:        testID,
		UserID:        userID,
		Answers:       datatypes.NewJSONType(map[int]string(answers)),
		CorrectCount:  result.CorrectCount,
		WrongCount:    result.WrongCount,
		RawScore:      result.RawScore,
		Percentage:    result.Percentage,
		AutoSubmitted: req.AutoSubmit || late,
		SubmittedAt:   now.UTC(),
	}

	var subjectScore float64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		attemptRepo := s.attemptRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		if _, err := attemptRepo.FindByTestAndUser(testID, userID); err == nil {
			return ErrAlreadySubmitted
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := attemptRepo.Create(&attempt); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySubmitted
			}
			return fmt.Errorf("failed to create test attempt: %w", err)
		}

		user, err := userRepo.FindByIDForUpdate(userID)
		if err != nil {
			return notFound(err)
		}
		if subjectScore, err = s.subjectScore.Apply(user, test.Category, result.Percentage); err != nil {
			return err
		}
		return userRepo.UpdateSubjectScores(user)
	})
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Uint("userID", userID).Msg("SubmitTest: Submission rejected")
		return nil, err
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("testID", testID).
		Uint("userID", userID).
		Float64("percentage", result.Percentage).
		Bool("autoSubmitted", attempt.AutoSubmitted).
		Msg("SubmitTest: Attempt scored")

	total := test.NumQuestions
	if total <= 0 {
		total = len(test.Questions)
	}
	return &dto.TestAttemptResultDTO{
		ID:            attempt.ID,
		TestID:        testID,
		TestTitle:     test.Title,
		CorrectCount:  result.CorrectCount,
		WrongCount:    result.WrongCount,
		Unanswered:    result.Unanswered(total),
		RawScore:      result.RawScore,
		Percentage:    result.Percentage,
		AutoSubmitted: attempt.AutoSubmitted,
		SubjectScore:  subjectScore,
		SubmittedAt:   attempt.SubmittedAt,
	}, nil
}

func (s *testSubmissionService) GetMyAttempts(userID uint) ([]dto.TestAttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetMyAttempts: Repository error")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}
	out := make([]dto.TestAttemptSummaryDTO, len(attempts))
	for i, a := range attempts {
		out[i] = dto.TestAttemptSummaryDTO{
			ID:           a.ID,
			TestID:       a.TestID,
			TestTitle:    a.Test.Title,
			Category:     a.Test.Category,
			CorrectCount: a.CorrectCount,
			WrongCount:   a.WrongCount,
			Percentage:   a.Percentage,
			SubmittedAt:  a.SubmittedAt,
		}
	}
	return out, nil
}
