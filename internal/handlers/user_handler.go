package handlers

import (
	"net/http"

	"github.com/gourdmobile/backend/internal/middleware"
	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// UserHandler handles account and authentication requests
type UserHandler struct {
	userService *services.UserService
	media       services.MediaStore
	log         *logger.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, media services.MediaStore, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, media: media, log: log.With("handler", "users")}
}

// RegisterAuthRoutes registers the routes reachable without a token
func (h *UserHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/users/register", h.Register)
	g.POST("/users/login", h.Login)
	g.POST("/users/google-login", h.GoogleLogin)
}

// RegisterUserRoutes registers the authenticated user routes. admin guards user creation.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, admin echo.MiddlewareFunc) {
	g.POST("/users/logout", h.Logout)
	g.GET("/users", h.GetUsers)
	g.GET("/users/get/count", h.CountUsers)
	g.GET("/users/:id", h.GetUser)
	g.POST("/users", h.CreateUser, admin)
	g.PUT("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)
}

// Register creates an account from a multipart form with an optional "image" file
func (h *UserHandler) Register(c echo.Context) error {
	var req models.RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := formImage(c, h.media)
	if err != nil {
		return httpError(h.log, c, err)
	}

	user, err := h.userService.Register(&req, image)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.Email, "token": token})
}

// GoogleLogin exchanges a Firebase ID token for a local JWT
func (h *UserHandler) GoogleLogin(c echo.Context) error {
	var req models.GoogleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.userService.GoogleLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.Email, "token": token})
}

func (h *UserHandler) Logout(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if err := h.userService.Logout(c.Request().Context(), claims); err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUintParam(c, "id", "user")
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(id)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CountUsers(c echo.Context) error {
	count, err := h.userService.CountUsers()
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"userCount": count})
}

// CreateUser lets an administrator create accounts, including other administrators
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := formImage(c, h.media)
	if err != nil {
		return httpError(h.log, c, err)
	}

	user, err := h.userService.CreateUser(&req, image)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id", "user")
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := formImage(c, h.media)
	if err != nil {
		return httpError(h.log, c, err)
	}

	user, err := h.userService.UpdateUser(id, actor, &req, image)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(id, actor); err != nil {
		return httpError(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
