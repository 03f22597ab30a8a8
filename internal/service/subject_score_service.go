package service

import (
	"fmt"

	"github.com/lshigami/Placemate/config"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/scoring"
	"github.com/rs/zerolog/log"
)

// SubjectScoreService folds a new percentage into one of a user's three
// subject scores according to the configured policy.
type SubjectScoreService interface {
	// Apply updates user in memory and returns the new subject score.
	Apply(user *model.User, subject string, percentage float64) (float64, error)
	Policy() scoring.SubjectPolicy
}

type subjectScoreService struct {
	policy scoring.SubjectPolicy
}

func NewSubjectScoreService(cfg *config.Config) (SubjectScoreService, error) {
	policy, err := scoring.ParseSubjectPolicy(cfg.Scoring.SubjectScorePolicy)
	if err != nil {
		return nil, err
	}
	log.Info().Str("policy", string(policy)).Msg("Subject score policy configured")
	return &subjectScoreService{policy: policy}, nil
}

func (s *subjectScoreService) Policy() scoring.SubjectPolicy {
	return s.policy
}

func (s *subjectScoreService) Apply(user *model.User, subject string, percentage float64) (float64, error) {
	switch subject {
	case model.CategoryAptitude:
		user.AptitudeScore, user.AptitudeAttempts = scoring.ApplySubjectScore(s.policy, user.AptitudeScore, user.AptitudeAttempts, percentage)
		return user.AptitudeScore, nil
	case model.SubjectCoding:
		user.CodingScore, user.CodingAttempts = scoring.ApplySubjectScore(s.policy, user.CodingScore, user.CodingAttempts, percentage)
		return user.CodingScore, nil
	case model.CategorySoftSkill:
		user.SoftSkillScore, user.SoftSkillAttempts = scoring.ApplySubjectScore(s.policy, user.SoftSkillScore, user.SoftSkillAttempts, percentage)
		return user.SoftSkillScore, nil
	}
	return 0, fmt.Errorf("unknown subject %q", subject)
}
