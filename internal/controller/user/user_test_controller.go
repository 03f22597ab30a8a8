package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/controller"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService       service.UserTestService
	testSubmissionService service.TestSubmissionService
	now                   func() time.Time
}

func NewUserTestController(uts service.UserTestService, tss service.TestSubmissionService) *UserTestController {
	return &UserTestController{
		userTestService:       uts,
		testSubmissionService: tss,
		now:                   time.Now,
	}
}

// GetAllTests godoc
// @Summary (Student) List tests by schedule window
// @Description Ongoing and upcoming tests sorted by start time, plus closed tests. Each carries whether the caller already attempted it.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TestListDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	tests, err := c.userTestService.ListTests(actor.UserID, c.now())
	if err != nil {
		controller.RespondError(ctx, "User GetAllTests", err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary (Student) Open an ongoing test
// @Description Returns the questions without their answers. Only available while the test window is open.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Test is not open"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	test, err := c.userTestService.GetTestForTaking(actor.UserID, testID, c.now())
	if err != nil {
		controller.RespondError(ctx, "User GetTestDetails", err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// SubmitTestAttempt godoc
// @Summary (Student) Submit answers for a test
// @Description Answers are keyed by 0-based question position. The attempt is scored immediately and folded into the student's subject score.
// @Tags User - Tests & Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param submission body dto.TestAttemptSubmitDTO true "Selected options"
// @Success 201 {object} dto.TestAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or test not open"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Failure 422 {object} dto.ErrorResponse "Unanswered questions"
// @Router /tests/{test_id}/attempts [post]
func (c *UserTestController) SubmitTestAttempt(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.TestAttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "User SubmitTestAttempt", err)
		return
	}

	result, err := c.testSubmissionService.SubmitTest(actor.UserID, testID, req, c.now())
	if err != nil {
		controller.RespondError(ctx, "User SubmitTestAttempt", err)
		return
	}
	log.Info().Uint("attemptID", result.ID).Uint("userID", actor.UserID).Msg("User SubmitTestAttempt: Submission successful")
	ctx.JSON(http.StatusCreated, result)
}

// GetMyAttempts godoc
// @Summary (Student) List my attempts
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /me/attempts [get]
func (c *UserTestController) GetMyAttempts(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	attempts, err := c.testSubmissionService.GetMyAttempts(actor.UserID)
	if err != nil {
		controller.RespondError(ctx, "User GetMyAttempts", err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
