package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// QuestionImportService loads questions for a test from a spreadsheet.
//
// The first sheet must have a header row with a "Question" column, one or
// more columns whose name starts with "option", a "Correct Option" column
// and optionally an "Image" column. Each further row is one question.
type QuestionImportService interface {
	ImportXLSX(actor Actor, testID uint, r io.Reader) (*dto.ImportResultDTO, error)
}

type questionImportService struct {
	tests        InterviewerTestService
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	validate     *validator.Validate
	db           *gorm.DB
}

func NewQuestionImportService(
	tests InterviewerTestService,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	db *gorm.DB,
) QuestionImportService {
	return &questionImportService{
		tests:        tests,
		testRepo:     testRepo,
		questionRepo: questionRepo,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		db:           db,
	}
}

type importRow struct {
	Line     int      `validate:"-"`
	Prompt   string   `validate:"required"`
	Options  []string `validate:"min=2,max=6,dive,required"`
	Correct  string   `validate:"required"`
	ImageURL string   `validate:"omitempty,url"`
}

type sheetColumns struct {
	question int
	correct  int
	image    int
	options  []int
}

var errNoHeader = errors.New("sheet has no Question column")

func findColumns(header []string) (sheetColumns, error) {
	cols := sheetColumns{question: -1, correct: -1, image: -1}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case name == "question":
			cols.question = i
		case name == "correct option" || name == "correct answer" || name == "correct_ans":
			cols.correct = i
		case name == "image" || name == "img_link" || name == "image url":
			cols.image = i
		case strings.HasPrefix(name, "option"):
			cols.options = append(cols.options, i)
		}
	}
	if cols.question < 0 {
		return cols, errNoHeader
	}
	if cols.correct < 0 || len(cols.options) == 0 {
		return cols, errors.New("sheet needs option columns and a Correct Option column")
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readRows(r io.Reader) ([]importRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable xlsx file: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, errNoHeader)
	}
	cols, err := findColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var out []importRow
	for i, row := range rows[1:] {
		r := importRow{
			Line:     i + 2,
			Prompt:   cell(row, cols.question),
			Correct:  cell(row, cols.correct),
			ImageURL: cell(row, cols.image),
		}
		for _, c := range cols.options {
			if v := cell(row, c); v != "" {
				r.Options = append(r.Options, v)
			}
		}
		if r.Prompt == "" && r.Correct == "" && len(r.Options) == 0 {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *questionImportService) ImportXLSX(actor Actor, testID uint, r io.Reader) (*dto.ImportResultDTO, error) {
	if _, err := s.tests.OwnedTest(actor, testID); err != nil {
		return nil, err
	}
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultDTO{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		test, err := s.testRepo.WithTx(tx).FindByIDForUpdate(testID)
		if err != nil {
			return notFound(err)
		}
		questionRepo := s.questionRepo.WithTx(tx)
		count, err := questionRepo.CountByTestID(testID)
		if err != nil {
			return err
		}
		slNo, err := questionRepo.MaxSlNo(testID)
		if err != nil {
			return err
		}
		remaining := test.NumQuestions - int(count)

		var batch []model.Question
		for _, row := range rows {
			if len(batch) >= remaining {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: no question slots left", row.Line))
				continue
			}
			if err := s.validate.Struct(row); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", row.Line, describeValidation(err)))
				continue
			}
			correct, ok := resolveCorrectAnswer(row.Options, row.Correct)
			if !ok {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: correct option %q does not match any option", row.Line, row.Correct))
				continue
			}
			slNo++
			q := model.Question{
				TestID:        testID,
				SlNo:          slNo,
				Prompt:        row.Prompt,
				Options:       row.Options,
				CorrectAnswer: correct,
			}
			if row.ImageURL != "" {
				img := row.ImageURL
				q.ImageURL = &img
			}
			batch = append(batch, q)
		}
		result.Imported = len(batch)
		result.Remaining = remaining - len(batch)
		if len(batch) == 0 {
			return nil
		}
		return questionRepo.CreateBatch(batch)
	})
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("ImportXLSX: Failed to store questions")
		return nil, fmt.Errorf("error importing questions: %w", err)
	}

	log.Info().
		Uint("testID", testID).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("ImportXLSX: Questions imported")
	return result, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if strings.HasPrefix(fe.Field(), "Options") {
			msgs = append(msgs, "needs between 2 and 6 options")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
