package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/controller"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/service"
)

type CodingController struct {
	codingService service.CodingService
	now           func() time.Time
}

func NewCodingController(cs service.CodingService) *CodingController {
	return &CodingController{codingService: cs, now: time.Now}
}

// ListProblems godoc
// @Summary List coding problems
// @Tags User - Coding
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CodingProblemSummaryDTO
// @Router /coding/problems [get]
func (c *CodingController) ListProblems(ctx *gin.Context) {
	problems, err := c.codingService.ListProblems()
	if err != nil {
		controller.RespondError(ctx, "ListProblems", err)
		return
	}
	ctx.JSON(http.StatusOK, problems)
}

// GetProblem godoc
// @Summary Get a coding problem with its visible examples
// @Tags User - Coding
// @Produce json
// @Security BearerAuth
// @Param problem_id path int true "Problem ID"
// @Success 200 {object} dto.CodingProblemDTO
// @Failure 404 {object} dto.ErrorResponse "Problem not found"
// @Router /coding/problems/{problem_id} [get]
func (c *CodingController) GetProblem(ctx *gin.Context) {
	problemID, ok := controller.UintParam(ctx, "problem_id")
	if !ok {
		return
	}
	problem, err := c.codingService.GetProblem(problemID)
	if err != nil {
		controller.RespondError(ctx, "GetProblem", err)
		return
	}
	ctx.JSON(http.StatusOK, problem)
}

// RunCode godoc
// @Summary Run code against custom input
// @Description Output is stdout, else stderr, else compiler output.
// @Tags User - Coding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RunCodeRequest true "Source and input"
// @Success 200 {object} dto.RunCodeResponse
// @Failure 400 {object} dto.ErrorResponse "Unsupported language"
// @Failure 503 {object} dto.ErrorResponse "Judge unavailable"
// @Router /coding/run [post]
func (c *CodingController) RunCode(ctx *gin.Context) {
	var req dto.RunCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "RunCode", err)
		return
	}
	resp, err := c.codingService.Run(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, "RunCode", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitSolution godoc
// @Summary Submit a solution to be judged on every test case
// @Tags User - Coding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param problem_id path int true "Problem ID"
// @Param body body dto.SubmitCodeRequest true "Source"
// @Success 201 {object} dto.CodingSubmissionDTO
// @Failure 404 {object} dto.ErrorResponse "Problem not found"
// @Failure 503 {object} dto.ErrorResponse "Judge unavailable"
// @Router /coding/problems/{problem_id}/submissions [post]
func (c *CodingController) SubmitSolution(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	problemID, ok := controller.UintParam(ctx, "problem_id")
	if !ok {
		return
	}
	var req dto.SubmitCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "SubmitSolution", err)
		return
	}
	resp, err := c.codingService.Submit(ctx.Request.Context(), actor.UserID, problemID, req, c.now())
	if err != nil {
		controller.RespondError(ctx, "SubmitSolution", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
