package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"synthflow/auth"
	"synthflow/config"
	"synthflow/controllers"
	"synthflow/middlewares"
	"synthflow/migrations"
	"synthflow/repositories"
	"synthflow/routes"
	"synthflow/services"
)

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using process environment")
	}

	cfg := config.LoadConfig()
	logrus.WithFields(logrus.Fields{
		"app":         cfg.AppName,
		"environment": cfg.Environment,
	}).Info("Configuration loaded")

	// Database
	db, err := repositories.InitDB(cfg)
	if err != nil {
		logrus.Fatal("Error connecting to database: ", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		logrus.Fatal("Error running migrations: ", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	workflowRepo := repositories.NewWorkflowRepository(db)

	// Auth components
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleTokenInfoURL)
	oauthConfig := auth.NewOAuthConfig(cfg)

	// Services
	authService := services.NewAuthService(db, userRepo, tokenRepo, codec, verifier)
	workflowService := services.NewWorkflowService(workflowRepo)

	// Controllers
	ctrls := routes.Controllers{
		Auth:     controllers.NewAuthController(authService, cfg.AccessTokenTTL),
		OAuth:    controllers.NewOAuthController(oauthConfig, authService, cfg.AccessTokenTTL),
		Workflow: controllers.NewWorkflowController(workflowService, cfg.BackendURL),
		Health:   controllers.NewHealthController(db, cfg),
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = middlewares.NewRequestValidator()
	e.HTTPErrorHandler = middlewares.ErrorHandler

	e.Use(middlewares.Recovery())
	e.Use(middlewares.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))

	authMW := middlewares.NewAuthMiddleware(codec, userRepo)
	routes.RegisterRoutes(e, ctrls, authMW)

	if err := e.Start(cfg.ServerAddr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
