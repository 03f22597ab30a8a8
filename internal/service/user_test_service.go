package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/lshigami/Placemate/internal/scoring"
	"github.com/rs/zerolog/log"
)

type UserTestService interface {
	ListTests(userID uint, now time.Time) (*dto.TestListDTO, error)
	GetTestForTaking(userID, testID uint, now time.Time) (*dto.TestResponseDTO, error)
}

type userTestService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
}

func NewUserTestService(testRepo repository.TestRepository, attemptRepo repository.TestAttemptRepository) UserTestService {
	return &userTestService{testRepo: testRepo, attemptRepo: attemptRepo}
}

func (s *userTestService) ListTests(userID uint, now time.Time) (*dto.TestListDTO, error) {
	tests, err := s.testRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("ListTests: Failed to get tests from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	attempted, err := s.attemptRepo.AttemptedTestIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempted tests: %w", err)
	}

	resp := dto.TestListDTO{
		Ongoing:  []dto.TestSummaryDTO{},
		Upcoming: []dto.TestSummaryDTO{},
		Closed:   []dto.TestSummaryDTO{},
	}
	for _, t := range tests {
		summary := testSummary(t, now, attempted[t.ID])
		switch scoring.WindowState(summary.Status) {
		case scoring.Ongoing:
			resp.Ongoing = append(resp.Ongoing, summary)
		case scoring.Upcoming:
			resp.Upcoming = append(resp.Upcoming, summary)
		default:
			resp.Closed = append(resp.Closed, summary)
		}
	}
	startOf := func(t dto.TestSummaryDTO) time.Time { return t.ScheduledAt }
	scoring.SortByStart(resp.Ongoing, startOf)
	scoring.SortByStart(resp.Upcoming, startOf)
	scoring.SortByStart(resp.Closed, startOf)
	return &resp, nil
}

// GetTestForTaking returns an ongoing test's questions with the answers
// stripped.
func (s *userTestService) GetTestForTaking(userID, testID uint, now time.Time) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("GetTestForTaking: Test not found")
		return nil, notFound(err)
	}
	if scoring.Classify(now, test.ScheduledAt, test.DurationMinutes) != scoring.Ongoing {
		return nil, ErrTestNotOpen
	}
	if _, err := s.attemptRepo.FindByTestAndUser(testID, userID); err == nil {
		return nil, ErrAlreadySubmitted
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("GetTestForTaking: Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test: %w", err)
	}
	resp.EndsAt = scoring.WindowEnd(test.ScheduledAt, test.DurationMinutes)
	resp.Questions = make([]dto.QuestionResponseDTO, len(test.Questions))
	for i, q := range test.Questions {
		resp.Questions[i] = dto.QuestionResponseDTO{
			ID:       q.ID,
			SlNo:     q.SlNo,
			Prompt:   q.Prompt,
			Options:  []string(q.Options),
			ImageURL: q.ImageURL,
		}
	}
	return &resp, nil
}
