package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/judge"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/lshigami/Placemate/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	SubmissionAccepted = "accepted"
	SubmissionPartial  = "partial"
	SubmissionRejected = "rejected"
	SubmissionError    = "error"
)

type CodingService interface {
	ListProblems() ([]dto.CodingProblemSummaryDTO, error)
	GetProblem(problemID uint) (*dto.CodingProblemDTO, error)
	CreateProblem(actor Actor, req dto.CodingProblemCreateDTO) (*dto.CodingProblemDTO, error)
	Run(ctx context.Context, req dto.RunCodeRequest) (*dto.RunCodeResponse, error)
	Submit(ctx context.Context, userID, problemID uint, req dto.SubmitCodeRequest, now time.Time) (*dto.CodingSubmissionDTO, error)
}

type codingService struct {
	codingRepo   repository.CodingRepository
	userRepo     repository.UserRepository
	judge        judge.Client
	subjectScore SubjectScoreService
	db           *gorm.DB
}

func NewCodingService(
	codingRepo repository.CodingRepository,
	userRepo repository.UserRepository,
	judgeClient judge.Client,
	subjectScore SubjectScoreService,
	db *gorm.DB,
) CodingService {
	return &codingService{
		codingRepo:   codingRepo,
		userRepo:     userRepo,
		judge:        judgeClient,
		subjectScore: subjectScore,
		db:           db,
	}
}

func (s *codingService) ListProblems() ([]dto.CodingProblemSummaryDTO, error) {
	problems, err := s.codingRepo.FindAllProblems()
	if err != nil {
		log.Error().Err(err).Msg("ListProblems: Repository error")
		return nil, fmt.Errorf("error fetching coding problems: %w", err)
	}
	var out []dto.CodingProblemSummaryDTO
	if err := copier.Copy(&out, &problems); err != nil {
		return nil, fmt.Errorf("error preparing coding problems: %w", err)
	}
	if out == nil {
		out = []dto.CodingProblemSummaryDTO{}
	}
	return out, nil
}

// GetProblem returns a problem with only its visible test cases.
func (s *codingService) GetProblem(problemID uint) (*dto.CodingProblemDTO, error) {
	problem, err := s.codingRepo.FindProblemByID(problemID)
	if err != nil {
		return nil, notFound(err)
	}
	return problemDTO(problem), nil
}

func problemDTO(p *model.CodingProblem) *dto.CodingProblemDTO {
	resp := &dto.CodingProblemDTO{
		ID:         p.ID,
		Title:      p.Title,
		Statement:  p.Statement,
		Difficulty: p.Difficulty,
		Examples:   []dto.CodingTestCaseDTO{},
	}
	for _, tc := range p.TestCases {
		if !tc.Hidden {
			resp.Examples = append(resp.Examples, dto.CodingTestCaseDTO{Stdin: tc.Stdin, ExpectedOutput: tc.ExpectedOutput})
		}
	}
	return resp
}

func (s *codingService) CreateProblem(actor Actor, req dto.CodingProblemCreateDTO) (*dto.CodingProblemDTO, error) {
	problem := model.CodingProblem{
		Title:       strings.TrimSpace(req.Title),
		Statement:   req.Statement,
		Difficulty:  req.Difficulty,
		CreatedByID: actor.UserID,
	}
	for i, tc := range req.TestCases {
		if normalizeOutput(tc.ExpectedOutput) == "" {
			return nil, fmt.Errorf("%w: test case %d has no expected output", ErrInvalidInput, i+1)
		}
		problem.TestCases = append(problem.TestCases, model.CodingTestCase{
			Stdin:          tc.Stdin,
			ExpectedOutput: tc.ExpectedOutput,
			Hidden:         tc.Hidden,
		})
	}
	if err := s.codingRepo.CreateProblem(&problem); err != nil {
		log.Error().Err(err).Str("title", problem.Title).Msg("CreateProblem: Repository error")
		return nil, fmt.Errorf("error creating coding problem: %w", err)
	}
	return problemDTO(&problem), nil
}

func checkLanguage(id int) error {
	if _, ok := judge.SupportedLanguages[id]; !ok {
		return fmt.Errorf("%w: unsupported language id %d", ErrInvalidInput, id)
	}
	return nil
}

func (s *codingService) Run(ctx context.Context, req dto.RunCodeRequest) (*dto.RunCodeResponse, error) {
	if err := checkLanguage(req.LanguageID); err != nil {
		return nil, err
	}
	res, err := s.judge.Execute(ctx, judge.Submission{
		SourceCode: req.SourceCode,
		LanguageID: req.LanguageID,
		Stdin:      req.Stdin,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}
	return &dto.RunCodeResponse{Output: res.Output(), Status: res.Status.Description}, nil
}

type caseRun struct {
	index  int
	result *judge.Result
	err    error
}

// Submit runs every test case of a problem and scores the run like a test:
// each case is a question whose correct answer is the expected output.
func (s *codingService) Submit(ctx context.Context, userID, problemID uint, req dto.SubmitCodeRequest, now time.Time) (*dto.CodingSubmissionDTO, error) {
	if err := checkLanguage(req.LanguageID); err != nil {
		return nil, err
	}
	problem, err := s.codingRepo.FindProblemByID(problemID)
	if err != nil {
		return nil, notFound(err)
	}
	cases := problem.TestCases
	if len(cases) == 0 {
		return nil, ErrNoQuestions
	}

	var wg sync.WaitGroup
	runs := make(chan caseRun, len(cases))
	for i, tc := range cases {
		wg.Add(1)
		go func(i int, tc model.CodingTestCase) {
			defer wg.Done()
			res, err := s.judge.Execute(ctx, judge.Submission{
				SourceCode: req.SourceCode,
				LanguageID: req.LanguageID,
				Stdin:      tc.Stdin,
			})
			runs <- caseRun{index: i, result: res, err: err}
		}(i, tc)
	}
	wg.Wait()
	close(runs)

	results := make([]*judge.Result, len(cases))
	for r := range runs {
		if r.err != nil {
			log.Error().Err(r.err).Uint("problemID", problemID).Int("case", r.index).Msg("Submit: Judge call failed")
			return nil, fmt.Errorf("%w: %v", ErrJudgeUnavailable, r.err)
		}
		results[r.index] = r.result
	}

	questions := make([]scoring.Question, len(cases))
	answers := make(scoring.Attempt, len(cases))
	for i, tc := range cases {
		questions[i] = scoring.Question{CorrectAnswer: normalizeOutput(tc.ExpectedOutput)}
		// A failed run is wrong even when its stdout matches.
		answers[i] = ""
		if !results[i].Failed() {
			answers[i] = normalizeOutput(results[i].Stdout)
		}
	}
	score := scoring.Score(questions, answers, len(cases), 0)

	submission := model.CodingSubmission{
		ProblemID:   problemID,
		UserID:      userID,
		LanguageID:  req.LanguageID,
		SourceCode:  req.SourceCode,
		Passed:      score.CorrectCount,
		Failed:      len(cases) - score.CorrectCount,
		Percentage:  score.Percentage,
		SubmittedAt: now.UTC(),
	}
	submission.Status, submission.Output = submissionVerdict(cases, questions, answers, results)

	var codingScore float64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.codingRepo.WithTx(tx).CreateSubmission(&submission); err != nil {
			return fmt.Errorf("failed to save submission: %w", err)
		}
		userRepo := s.userRepo.WithTx(tx)
		user, err := userRepo.FindByIDForUpdate(userID)
		if err != nil {
			return notFound(err)
		}
		if codingScore, err = s.subjectScore.Apply(user, model.SubjectCoding, score.Percentage); err != nil {
			return err
		}
		return userRepo.UpdateSubjectScores(user)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Uint("problemID", problemID).Uint("userID", userID).Msg("Submit: Failed to record submission")
		}
		return nil, err
	}

	log.Info().
		Uint("submissionID", submission.ID).
		Uint("problemID", problemID).
		Int("passed", submission.Passed).
		Int("failed", submission.Failed).
		Msg("Submit: Coding submission judged")

	return &dto.CodingSubmissionDTO{
		ID:          submission.ID,
		ProblemID:   problemID,
		LanguageID:  submission.LanguageID,
		Passed:      submission.Passed,
		Failed:      submission.Failed,
		Percentage:  submission.Percentage,
		Status:      submission.Status,
		Output:      submission.Output,
		CodingScore: codingScore,
		SubmittedAt: submission.SubmittedAt,
	}, nil
}

// submissionVerdict derives the overall status and the output shown to the
// student. Output of hidden cases is never revealed. answers holds "" for runs
// that failed on the judge.
func submissionVerdict(cases []model.CodingTestCase, questions []scoring.Question, answers scoring.Attempt, results []*judge.Result) (string, string) {
	passed := 0
	output := ""
	for i, res := range results {
		if res.CompileFailed() {
			return SubmissionError, res.Output()
		}
		if answers[i] == questions[i].CorrectAnswer {
			passed++
			continue
		}
		if output == "" && !cases[i].Hidden {
			output = res.Output()
		}
	}
	switch {
	case passed == len(results):
		return SubmissionAccepted, ""
	case passed > 0:
		return SubmissionPartial, output
	}
	return SubmissionRejected, output
}

// normalizeOutput trims surrounding whitespace and trailing spaces on each
// line, and unifies line endings.
func normalizeOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Join(lines, "\n")
}
