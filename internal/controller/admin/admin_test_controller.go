package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/controller"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/service"
	"github.com/rs/zerolog/log"
)

// maxImportSize caps uploaded spreadsheets.
const maxImportSize = 5 << 20

type AdminTestController struct {
	testService      service.InterviewerTestService
	importService    service.QuestionImportService
	analyticsService service.AnalyticsService
	now              func() time.Time
}

func NewAdminTestController(
	testService service.InterviewerTestService,
	importService service.QuestionImportService,
	analyticsService service.AnalyticsService,
) *AdminTestController {
	return &AdminTestController{
		testService:      testService,
		importService:    importService,
		analyticsService: analyticsService,
		now:              time.Now,
	}
}

// CreateTest godoc
// @Summary (Interviewer) Schedule a new test
// @Description Creates a timed test. Questions may be given now or added later, up to num_questions.
// @Tags Interviewer - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_data body dto.TestCreateDTO true "Test schedule and optional questions"
// @Success 201 {object} dto.InterviewerTestDTO "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interviewer/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "Interviewer CreateTest", err)
		return
	}
	testResp, err := c.testService.CreateTest(actor, req, c.now())
	if err != nil {
		controller.RespondError(ctx, "Interviewer CreateTest", err)
		return
	}
	ctx.JSON(http.StatusCreated, testResp)
}

// ListTests godoc
// @Summary (Interviewer) List my tests
// @Tags Interviewer - Tests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InterviewerTestDTO
// @Router /interviewer/tests [get]
func (c *AdminTestController) ListTests(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	tests, err := c.testService.ListTests(actor, c.now())
	if err != nil {
		controller.RespondError(ctx, "Interviewer ListTests", err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// DeleteTest godoc
// @Summary (Interviewer) Delete a test with its questions and attempts
// @Tags Interviewer - Tests
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Not the test owner"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /interviewer/tests/{test_id} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	if err := c.testService.DeleteTest(actor, testID); err != nil {
		controller.RespondError(ctx, "Interviewer DeleteTest", err)
		return
	}
	log.Info().Uint("testID", testID).Uint("userID", actor.UserID).Msg("Interviewer DeleteTest: Test deleted")
	ctx.Status(http.StatusNoContent)
}

// GetQuestions godoc
// @Summary (Interviewer) List a test's questions with answers
// @Tags Interviewer - Tests
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.QuestionAdminDTO
// @Failure 403 {object} dto.ErrorResponse "Not the test owner"
// @Router /interviewer/tests/{test_id}/questions [get]
func (c *AdminTestController) GetQuestions(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	questions, err := c.testService.GetQuestions(actor, testID)
	if err != nil {
		controller.RespondError(ctx, "Interviewer GetQuestions", err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// AddQuestions godoc
// @Summary (Interviewer) Add questions to a test
// @Description The correct answer may be the option text, its letter (A-F) or its 1-based number.
// @Tags Interviewer - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param questions body dto.AddQuestionsDTO true "Questions"
// @Success 201 {array} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question or no slots left"
// @Failure 403 {object} dto.ErrorResponse "Not the test owner"
// @Router /interviewer/tests/{test_id}/questions [post]
func (c *AdminTestController) AddQuestions(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.AddQuestionsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "Interviewer AddQuestions", err)
		return
	}
	questions, err := c.testService.AddQuestions(actor, testID, req)
	if err != nil {
		controller.RespondError(ctx, "Interviewer AddQuestions", err)
		return
	}
	ctx.JSON(http.StatusCreated, questions)
}

// ImportQuestions godoc
// @Summary (Interviewer) Import questions from an .xlsx file
// @Description First sheet, header row with Question, Option1..OptionN, Correct Option and optional Image columns.
// @Tags Interviewer - Tests
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param file formData file true "Spreadsheet"
// @Success 200 {object} dto.ImportResultDTO
// @Failure 400 {object} dto.ErrorResponse "Unreadable spreadsheet"
// @Failure 403 {object} dto.ErrorResponse "Not the test owner"
// @Router /interviewer/tests/{test_id}/questions/import [post]
func (c *AdminTestController) ImportQuestions(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	fh, err := ctx.FormFile("file")
	if err != nil {
		controller.BindError(ctx, "Interviewer ImportQuestions", err)
		return
	}
	if fh.Size > maxImportSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Message: "Spreadsheet is too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		controller.RespondError(ctx, "Interviewer ImportQuestions", err)
		return
	}
	defer f.Close()

	result, err := c.importService.ImportXLSX(actor, testID, f)
	if err != nil {
		controller.RespondError(ctx, "Interviewer ImportQuestions", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetResults godoc
// @Summary (Interviewer) Per-student results of a test
// @Tags Interviewer - Results
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResultsDTO
// @Failure 403 {object} dto.ErrorResponse "Not the test owner"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /interviewer/tests/{test_id}/results [get]
func (c *AdminTestController) GetResults(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	results, err := c.testService.GetResults(actor, testID, c.now())
	if err != nil {
		controller.RespondError(ctx, "Interviewer GetResults", err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetAnalytics godoc
// @Summary (Interviewer) Batch analytics with AI insight
// @Tags Interviewer - Results
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestAnalyticsDTO
// @Failure 403 {object} dto.ErrorResponse "Not the test owner"
// @Router /interviewer/tests/{test_id}/analytics [get]
func (c *AdminTestController) GetAnalytics(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := c.analyticsService.TestAnalytics(ctx.Request.Context(), actor, testID)
	if err != nil {
		controller.RespondError(ctx, "Interviewer GetAnalytics", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetStudentInsight godoc
// @Summary (Interviewer) AI insight on one student's attempt
// @Tags Interviewer - Results
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param user_id path int true "Student user ID"
// @Success 200 {object} dto.StudentInsightDTO
// @Failure 404 {object} dto.ErrorResponse "No attempt by this student"
// @Router /interviewer/tests/{test_id}/students/{user_id}/insight [get]
func (c *AdminTestController) GetStudentInsight(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	userID, ok := controller.UintParam(ctx, "user_id")
	if !ok {
		return
	}
	resp, err := c.analyticsService.StudentInsight(ctx.Request.Context(), actor, testID, userID)
	if err != nil {
		controller.RespondError(ctx, "Interviewer GetStudentInsight", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
