package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/quickgrade/quickgrade/config"
	"github.com/quickgrade/quickgrade/database"
	_ "github.com/quickgrade/quickgrade/docs" // Swagger docs - auto-generated
	"github.com/quickgrade/quickgrade/internal/apperr"
	"github.com/quickgrade/quickgrade/internal/controller"
	"github.com/quickgrade/quickgrade/internal/dto"
	"github.com/quickgrade/quickgrade/internal/logger"
	"github.com/quickgrade/quickgrade/internal/middleware"
	"github.com/quickgrade/quickgrade/internal/model"
	"github.com/quickgrade/quickgrade/internal/repository"
	"github.com/quickgrade/quickgrade/internal/service"
	"github.com/quickgrade/quickgrade/internal/token"
)

const maxBodyBytes = 2 << 20 // 2MB request body cap

// @title QuickGrade API
// @version 1.0
// @description REST API for the QuickGrade quiz builder: authentication and test/question management for teachers.
// @host localhost:3001
// @BasePath /api
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			token.NewCodec,
			middleware.NewAuth,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewTestService,
		),

		fx.Provide(
			controller.NewAuthController,
			controller.NewTestController,
			controller.NewHealthController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
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

	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	})

	// Single configured frontend origin; credentials on so the session cookie travels.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Frontend.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		e := apperr.NotFound()
		c.JSON(e.Status, dto.ErrorResponse{Error: dto.ErrorDetail{Code: string(e.Code), Message: e.Message}})
	})

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	auth *middleware.Auth,
	authCtrl *controller.AuthController,
	testCtrl *controller.TestController,
	healthCtrl *controller.HealthController,
) {
	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/logout", authCtrl.Logout)
		authGroup.GET("/me", auth.RequireAuth(middleware.AnyRole), authCtrl.Me)

		// The bypass option is only registered in development; production
		// builds the strict chain and never consults the flag.
		var createOpts []middleware.Option
		if cfg.Environment == config.Development {
			createOpts = append(createOpts, middleware.WithDevBypass())
		}

		tests := api.Group("/tests")
		tests.POST("", auth.RequireAuth(model.RoleDocente, createOpts...), testCtrl.Create)
		tests.GET("/:id", auth.RequireAuth(middleware.AnyRole), testCtrl.Get)
		tests.GET("/:id/questions", auth.RequireAuth(middleware.AnyRole), testCtrl.GetQuestions)

		api.GET("/health", healthCtrl.Health)
		api.GET("/health/db", healthCtrl.HealthDB)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuickGrade API server starting on port %s", cfg.Server.Port)
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
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
