package service

import (
	"context"
	"fmt"

	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/lshigami/Placemate/internal/scoring"
	"github.com/shopspring/decimal"
)

// AnalyticsService summarises a test's attempts for its interviewer.
type AnalyticsService interface {
	TestAnalytics(ctx context.Context, actor Actor, testID uint) (*dto.TestAnalyticsDTO, error)
	StudentInsight(ctx context.Context, actor Actor, testID, userID uint) (*dto.StudentInsightDTO, error)
}

type analyticsService struct {
	tests       InterviewerTestService
	attemptRepo repository.TestAttemptRepository
	gemini      GeminiService
}

func NewAnalyticsService(tests InterviewerTestService, attemptRepo repository.TestAttemptRepository, gemini GeminiService) AnalyticsService {
	return &analyticsService{tests: tests, attemptRepo: attemptRepo, gemini: gemini}
}

func (s *analyticsService) TestAnalytics(ctx context.Context, actor Actor, testID uint) (*dto.TestAnalyticsDTO, error) {
	test, err := s.tests.OwnedTest(actor, testID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.FindAllByTest(testID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempts for test %d: %w", testID, err)
	}

	resp := summarize(testID, attempts)
	resp.Insight = s.gemini.BatchInsight(ctx, BatchSummary{
		TestTitle:         test.Title,
		Category:          test.Category,
		Attempts:          resp.Attempts,
		AveragePercentage: resp.AveragePercentage,
		HighestPercentage: resp.HighestPercentage,
		LowestPercentage:  resp.LowestPercentage,
		Bands:             resp.Bands,
	})
	return resp, nil
}

// summarize computes the aggregate figures. Each percentage is banded with
// the readiness thresholds.
func summarize(testID uint, attempts []model.TestAttempt) *dto.TestAnalyticsDTO {
	resp := &dto.TestAnalyticsDTO{
		TestID:   testID,
		Attempts: len(attempts),
		Bands: map[string]int{
			string(scoring.LabelWeak):      0,
			string(scoring.LabelAverage):   0,
			string(scoring.LabelExcellent): 0,
		},
	}
	if len(attempts) == 0 {
		return resp
	}

	var sumPct, sumCorrect, sumWrong decimal.Decimal
	resp.HighestPercentage = attempts[0].Percentage
	resp.LowestPercentage = attempts[0].Percentage
	for _, a := range attempts {
		sumPct = sumPct.Add(decimal.NewFromFloat(a.Percentage))
		sumCorrect = sumCorrect.Add(decimal.NewFromInt(int64(a.CorrectCount)))
		sumWrong = sumWrong.Add(decimal.NewFromInt(int64(a.WrongCount)))
		resp.HighestPercentage = max(resp.HighestPercentage, a.Percentage)
		resp.LowestPercentage = min(resp.LowestPercentage, a.Percentage)

		band := scoring.LabelFor(int(decimal.NewFromFloat(a.Percentage).Round(0).IntPart()))
		resp.Bands[string(band)]++
	}
	n := decimal.NewFromInt(int64(len(attempts)))
	resp.AveragePercentage = sumPct.DivRound(n, 2).InexactFloat64()
	resp.AverageCorrect = sumCorrect.DivRound(n, 2).InexactFloat64()
	resp.AverageWrong = sumWrong.DivRound(n, 2).InexactFloat64()
	return resp
}

func (s *analyticsService) StudentInsight(ctx context.Context, actor Actor, testID, userID uint) (*dto.StudentInsightDTO, error) {
	test, err := s.tests.OwnedTest(actor, testID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.FindAllByTest(testID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempts for test %d: %w", testID, err)
	}
	var attempt *model.TestAttempt
	for i := range attempts {
		if attempts[i].UserID == userID {
			attempt = &attempts[i]
			break
		}
	}
	if attempt == nil {
		return nil, ErrNotFound
	}

	total := test.NumQuestions
	result := scoring.ScoreResult{CorrectCount: attempt.CorrectCount, WrongCount: attempt.WrongCount}
	insight := s.gemini.StudentInsight(ctx, StudentSummary{
		Name:       attempt.User.Name,
		TestTitle:  test.Title,
		Category:   test.Category,
		Percentage: attempt.Percentage,
		Correct:    attempt.CorrectCount,
		Wrong:      attempt.WrongCount,
		Unanswered: result.Unanswered(total),
		Subjects: map[string]float64{
			model.CategoryAptitude:  attempt.User.AptitudeScore,
			model.SubjectCoding:     attempt.User.CodingScore,
			model.CategorySoftSkill: attempt.User.SoftSkillScore,
		},
	})
	return &dto.StudentInsightDTO{
		UserID:      userID,
		StudentName: attempt.User.Name,
		Percentage:  attempt.Percentage,
		Insight:     insight,
	}, nil
}
