package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/controller"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup godoc
// @Summary Register a student
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Student details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "Signup", err)
		return
	}
	resp, err := c.authService.SignupStudent(req)
	if err != nil {
		controller.RespondError(ctx, "Signup", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SignupInterviewer godoc
// @Summary Register an interviewer
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.InterviewerSignupRequest true "Interviewer details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/interviewer/signup [post]
func (c *AuthController) SignupInterviewer(ctx *gin.Context) {
	var req dto.InterviewerSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "SignupInterviewer", err)
		return
	}
	resp, err := c.authService.SignupInterviewer(req)
	if err != nil {
		controller.RespondError(ctx, "SignupInterviewer", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in and receive an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "Login", err)
		return
	}
	resp, err := c.authService.Login(req)
	if err != nil {
		controller.RespondError(ctx, "Login", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
