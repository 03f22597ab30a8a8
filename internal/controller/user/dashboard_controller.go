package user

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/controller"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/service"
)

const defaultLeaderboardLimit = 50

type DashboardController struct {
	dashboardService service.DashboardService
	geminiService    service.GeminiService
	now              func() time.Time
}

func NewDashboardController(ds service.DashboardService, gs service.GeminiService) *DashboardController {
	return &DashboardController{dashboardService: ds, geminiService: gs, now: time.Now}
}

// GetDashboard godoc
// @Summary (Student) Readiness dashboard
// @Description Subject scores, the weighted readiness total and label, and the ongoing and upcoming tests.
// @Tags User - Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardDTO
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	resp, err := c.dashboardService.GetDashboard(actor.UserID, c.now())
	if err != nil {
		controller.RespondError(ctx, "GetDashboard", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetLeaderboard godoc
// @Summary Students ranked by readiness
// @Tags User - Dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows (default 50, 0 for all)"
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Router /leaderboard [get]
func (c *DashboardController) GetLeaderboard(ctx *gin.Context) {
	limit := defaultLeaderboardLimit
	if s := ctx.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit"})
			return
		}
		limit = v
	}
	entries, err := c.dashboardService.Leaderboard(limit)
	if err != nil {
		controller.RespondError(ctx, "GetLeaderboard", err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetPracticeTips godoc
// @Summary (Student) AI practice tips for weak areas
// @Tags User - Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PracticeTipsRequest true "Weak areas"
// @Success 200 {object} dto.PracticeTipsResponse
// @Failure 503 {object} dto.ErrorResponse "AI service unavailable"
// @Router /practice-tips [post]
func (c *DashboardController) GetPracticeTips(ctx *gin.Context) {
	var req dto.PracticeTipsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "GetPracticeTips", err)
		return
	}
	tips, err := c.geminiService.PracticeTips(ctx.Request.Context(), req.WeakAreas)
	if err != nil {
		controller.RespondError(ctx, "GetPracticeTips", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PracticeTipsResponse{Tips: tips})
}
