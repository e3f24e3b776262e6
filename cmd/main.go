package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/acquisitions/users-api/docs" // Import generated docs
	"github.com/acquisitions/users-api/internal/config"
	"github.com/acquisitions/users-api/internal/controllers"
	"github.com/acquisitions/users-api/internal/database"
	"github.com/acquisitions/users-api/internal/middleware"
	"github.com/acquisitions/users-api/internal/models"
	"github.com/acquisitions/users-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db              *gorm.DB
	authController  controllers.AuthController
	usersController controllers.UsersController
	configuration   *config.Config
)

// @title Acquisitions Users API
// @version 1.0
// @description Authenticated user directory with cookie-based JWT sessions
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	authService := services.NewAuthService(db)
	tokenService := services.NewTokenService(configuration.JWTSecret, configuration.JWTExpiry)
	userService := services.NewUserService(db)
	authController = controllers.NewAuthController(authService, tokenService, configuration.CookieSecure)
	usersController = controllers.NewUsersController(userService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter(tokenService)

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %+v", conf)
	return conf
}

// setupDatabase initializes the database connection and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)
	// Migrate the schema
	checkPanicErr(db.AutoMigrate(&models.User{}))
	return db
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter(tokens services.TokenService) *gin.Engine {
	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log.StandardLogger()))

	// Define routes
	setupRoutes(router, tokens)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine, tokens services.TokenService) {
	// Root and health endpoints
	router.GET("/", helloHandler)
	router.GET("/api", apiStatusHandler)
	router.GET("/health", healthCheckHandler)

	// Authentication routes
	router.POST("/sign-up", authController.SignUp)
	router.POST("/sign-in", authController.SignIn)
	router.POST("/sign-out", authController.SignOut)

	// User directory routes (require a valid token cookie)
	users := router.Group("/users")
	users.Use(middleware.Authenticate(tokens))
	{
		users.GET("", middleware.RequireAdmin(), usersController.GetAllUsers)
		users.GET("/:id", middleware.RequireOwnershipOrAdmin(), usersController.GetUserByID)
		users.PUT("/:id", middleware.RequireOwnershipOrAdmin(), usersController.UpdateUser)
		users.DELETE("/:id", middleware.RequireOwnershipOrAdmin(), usersController.DeleteUser)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// helloHandler handles the root greeting endpoint
// @Summary Greeting
// @Description Plain-text greeting from the service
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func helloHandler(c *gin.Context) {
	log.Info("Request received, Hello from acquisitions!")
	c.String(http.StatusOK, "Hello from acquisitions!")
}

// apiStatusHandler reports that the API is up
// @Summary API status
// @Description Check if the API is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api [get]
func apiStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Acquisitions API is running...",
	})
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "users-api",
	})
}
