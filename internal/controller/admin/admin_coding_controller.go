package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/controller"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/service"
)

type AdminCodingController struct {
	codingService service.CodingService
}

func NewAdminCodingController(codingService service.CodingService) *AdminCodingController {
	return &AdminCodingController{codingService: codingService}
}

// CreateProblem godoc
// @Summary (Interviewer) Publish a coding problem
// @Description Hidden test cases are judged but never shown to students.
// @Tags Interviewer - Coding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param problem body dto.CodingProblemCreateDTO true "Problem"
// @Success 201 {object} dto.CodingProblemDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /interviewer/coding/problems [post]
func (c *AdminCodingController) CreateProblem(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	var req dto.CodingProblemCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "Interviewer CreateProblem", err)
		return
	}
	resp, err := c.codingService.CreateProblem(actor, req)
	if err != nil {
		controller.RespondError(ctx, "Interviewer CreateProblem", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
