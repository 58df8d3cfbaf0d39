package router

import (
	"fmt"

	"github.com/gourdmobile/backend/internal/handlers"
	"github.com/gourdmobile/backend/internal/middleware"
	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/repositories"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repositories groups the stores every service is built on.
type Repositories struct {
	Users       repositories.UserRepository
	Categories  repositories.CategoryRepository
	Gourds      repositories.GourdRepository
	Posts       repositories.PostRepository
	Chats       repositories.ChatRepository
	Monitorings repositories.MonitoringRepository
}

// NewRepositories keeps accounts and reference lists in PostgreSQL and content in MongoDB.
func NewRepositories(pgdb *gorm.DB, mdb *mongo.Database) Repositories {
	return Repositories{
		Users:       repositories.NewPostgresUserRepository(pgdb),
		Categories:  repositories.NewPostgresCategoryRepository(pgdb),
		Gourds:      repositories.NewPostgresGourdRepository(pgdb),
		Posts:       repositories.NewMongoPostRepository(mdb),
		Chats:       repositories.NewMongoChatRepository(mdb),
		Monitorings: repositories.NewMongoMonitoringRepository(mdb),
	}
}

// Deps are the stores and optional integrations the routes are built from.
type Deps struct {
	Repos    Repositories
	Tokens   *services.TokenService
	Verifier services.IDTokenVerifier // nil disables google login
	Media    services.MediaStore      // nil disables uploads
	Log      *logger.Logger
}

// Migrate creates or updates the relational schema.
func Migrate(pgdb *gorm.DB) error {
	if err := pgdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.GourdType{},
		&models.Variety{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SetupRoutes configures all application routes under prefix and injects dependencies
func SetupRoutes(e *echo.Echo, prefix string, deps Deps) {
	log := deps.Log

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	repos := deps.Repos

	// --- Services ---
	userService := services.NewUserService(repos.Users, deps.Tokens, deps.Verifier, log)
	postService := services.NewPostService(repos.Posts, repos.Users, repos.Categories, services.NewSanitizer(), log)
	chatService := services.NewChatService(repos.Chats, repos.Users)
	monitoringService := services.NewMonitoringService(repos.Monitorings, repos.Users, repos.Gourds)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, deps.Media, log)
	categoryHandler := handlers.NewCategoryHandler(repos.Categories, repos.Gourds, log)
	postHandler := handlers.NewPostHandler(postService, log)
	commentHandler := handlers.NewCommentHandler(postService, log)
	chatHandler := handlers.NewChatHandler(chatService, log)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService, log)
	uploadHandler := handlers.NewUploadHandler(deps.Media, log)

	// --- Unprotected routes ---
	public := e.Group(prefix)
	public.GET("/health", handlers.HealthCheck)
	userHandler.RegisterAuthRoutes(public)
	categoryHandler.RegisterPublicRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group(prefix)
	api.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	admin := middleware.AdminOnly()

	userHandler.RegisterUserRoutes(api, admin)
	categoryHandler.RegisterReferenceRoutes(api, admin)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	chatHandler.RegisterChatRoutes(api)
	monitoringHandler.RegisterMonitoringRoutes(api)
	uploadHandler.RegisterUploadRoutes(api)

	log.Info("Routes configured", "prefix", prefix, "uploads", deps.Media != nil, "google_login", deps.Verifier != nil)
}
