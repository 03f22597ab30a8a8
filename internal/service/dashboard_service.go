package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/lshigami/Placemate/internal/scoring"
	"github.com/rs/zerolog/log"
)

type DashboardService interface {
	GetDashboard(userID uint, now time.Time) (*dto.DashboardDTO, error)
	// Leaderboard ranks students by readiness; limit <= 0 returns everyone.
	Leaderboard(limit int) ([]dto.LeaderboardEntryDTO, error)
}

type dashboardService struct {
	userRepo    repository.UserRepository
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	testRepo repository.TestRepository,
	attemptRepo repository.TestAttemptRepository,
) DashboardService {
	return &dashboardService{userRepo: userRepo, testRepo: testRepo, attemptRepo: attemptRepo}
}

func readinessOf(u *model.User) dto.ReadinessDTO {
	r := scoring.Readiness(u.AptitudeScore, u.CodingScore, u.SoftSkillScore)
	return dto.ReadinessDTO{
		Total:     r.Total,
		Label:     string(r.Label),
		Aptitude:  u.AptitudeScore,
		Coding:    u.CodingScore,
		SoftSkill: u.SoftSkillScore,
	}
}

func (s *dashboardService) GetDashboard(userID uint, now time.Time) (*dto.DashboardDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err)
	}
	tests, err := s.testRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("GetDashboard: Failed to get tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	attempted, err := s.attemptRepo.AttemptedTestIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempted tests: %w", err)
	}

	resp := dto.DashboardDTO{
		Readiness:     readinessOf(user),
		OngoingTests:  []dto.TestSummaryDTO{},
		UpcomingTests: []dto.TestSummaryDTO{},
	}
	if err := copier.Copy(&resp.User, user); err != nil {
		return nil, fmt.Errorf("error preparing user: %w", err)
	}
	for _, t := range tests {
		switch scoring.Classify(now, t.ScheduledAt, t.DurationMinutes) {
		case scoring.Ongoing:
			resp.OngoingTests = append(resp.OngoingTests, testSummary(t, now, attempted[t.ID]))
		case scoring.Upcoming:
			resp.UpcomingTests = append(resp.UpcomingTests, testSummary(t, now, attempted[t.ID]))
		}
	}
	startOf := func(t dto.TestSummaryDTO) time.Time { return t.ScheduledAt }
	scoring.SortByStart(resp.OngoingTests, startOf)
	scoring.SortByStart(resp.UpcomingTests, startOf)
	return &resp, nil
}

func (s *dashboardService) Leaderboard(limit int) ([]dto.LeaderboardEntryDTO, error) {
	students, err := s.userRepo.FindAllByRole(model.RoleStudent)
	if err != nil {
		log.Error().Err(err).Msg("Leaderboard: Failed to get students")
		return nil, fmt.Errorf("error fetching students: %w", err)
	}

	entries := make([]dto.LeaderboardEntryDTO, len(students))
	for i := range students {
		u := &students[i]
		r := readinessOf(u)
		entries[i] = dto.LeaderboardEntryDTO{
			UserID:    u.ID,
			Name:      u.Name,
			USN:       u.USN,
			Aptitude:  r.Aptitude,
			Coding:    r.Coding,
			SoftSkill: r.SoftSkill,
			Readiness: r.Total,
			Label:     r.Label,
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Readiness != entries[j].Readiness {
			return entries[i].Readiness > entries[j].Readiness
		}
		return entries[i].Name < entries[j].Name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
