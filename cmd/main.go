package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/config"
	"github.com/lshigami/Placemate/database"
	_ "github.com/lshigami/Placemate/docs"
	adminctrl "github.com/lshigami/Placemate/internal/controller/admin"
	userctrl "github.com/lshigami/Placemate/internal/controller/user"
	"github.com/lshigami/Placemate/internal/judge"
	"github.com/lshigami/Placemate/internal/logger"
	"github.com/lshigami/Placemate/internal/middleware"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/lshigami/Placemate/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

//go:generate swag init -g cmd/main.go -o docs

// @title Placemate API
// @version 1.0
// @description Placement preparation portal: timed tests, coding practice, readiness dashboard and interviewer analytics.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			judge.NewClient,
		),

		// Repositories
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestAttemptRepository,
			repository.NewCodingRepository,
		),

		// Services
		fx.Provide(
			service.NewAuthService,
			service.NewSubjectScoreService,
			service.NewInterviewerTestService,
			service.NewQuestionImportService,
			service.NewUserTestService,
			service.NewTestSubmissionService,
			service.NewDashboardService,
			service.NewCodingService,
			service.NewGeminiLLMService,
			service.NewGeminiService,
			service.NewAnalyticsService,
		),

		// Controllers
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewUserTestController,
			userctrl.NewDashboardController,
			userctrl.NewCodingController,
			adminctrl.NewAdminTestController,
			adminctrl.NewAdminCodingController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	logger.SetLevel(cfg.LogLevel)
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys["request_id"].(string)
		log.Info().
			Str("request_id", requestID).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// Controllers groups every handler set for route registration.
type Controllers struct {
	fx.In

	Auth        *userctrl.AuthController
	UserTests   *userctrl.UserTestController
	Dashboard   *userctrl.DashboardController
	Coding      *userctrl.CodingController
	AdminTests  *adminctrl.AdminTestController
	AdminCoding *adminctrl.AdminCodingController
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(router *gin.Engine, authService service.AuthService, c Controllers) {
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", c.Auth.Signup)
		auth.POST("/interviewer/signup", c.Auth.SignupInterviewer)
		auth.POST("/login", c.Auth.Login)
	}

	student := api.Group("", middleware.Auth(authService))
	{
		student.GET("/dashboard", c.Dashboard.GetDashboard)
		student.GET("/leaderboard", c.Dashboard.GetLeaderboard)
		student.POST("/practice-tips", c.Dashboard.GetPracticeTips)

		student.GET("/tests", c.UserTests.GetAllTests)
		student.GET("/tests/:test_id", c.UserTests.GetTestDetails)
		student.POST("/tests/:test_id/attempts", c.UserTests.SubmitTestAttempt)
		student.GET("/me/attempts", c.UserTests.GetMyAttempts)

		student.GET("/coding/problems", c.Coding.ListProblems)
		student.GET("/coding/problems/:problem_id", c.Coding.GetProblem)
		student.POST("/coding/run", c.Coding.RunCode)
		student.POST("/coding/problems/:problem_id/submissions", c.Coding.SubmitSolution)
	}

	interviewer := api.Group("/interviewer",
		middleware.Auth(authService),
		middleware.RequireRole(model.RoleInterviewer, model.RoleAdmin),
	)
	{
		interviewer.POST("/tests", c.AdminTests.CreateTest)
		interviewer.GET("/tests", c.AdminTests.ListTests)
		interviewer.DELETE("/tests/:test_id", c.AdminTests.DeleteTest)
		interviewer.GET("/tests/:test_id/questions", c.AdminTests.GetQuestions)
		interviewer.POST("/tests/:test_id/questions", c.AdminTests.AddQuestions)
		interviewer.POST("/tests/:test_id/questions/import", c.AdminTests.ImportQuestions)
		interviewer.GET("/tests/:test_id/results", c.AdminTests.GetResults)
		interviewer.GET("/tests/:test_id/analytics", c.AdminTests.GetAnalytics)
		interviewer.GET("/tests/:test_id/students/:user_id/insight", c.AdminTests.GetStudentInsight)

		interviewer.POST("/coding/problems", c.AdminCoding.CreateProblem)
	}
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	controllers Controllers,
) {
	RegisterRoutes(router, authService, controllers)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Placemate API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
