package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gourdmobile/backend/internal/middleware"
	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// httpError maps service outcomes onto HTTP errors. Unknown errors are logged and reported as a
// generic 500.
func httpError(log *logger.Logger, c echo.Context, err error) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, detail(err, services.ErrNotFound))
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, detail(err, services.ErrForbidden))
	case errors.Is(err, services.ErrBadRequest):
		return echo.NewHTTPError(http.StatusBadRequest, detail(err, services.ErrBadRequest))
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, detail(err, services.ErrConflict))
	case errors.Is(err, services.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, detail(err, services.ErrUnauthorized))
	case errors.Is(err, services.ErrUnsupportedImage):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid image type")
	}
	log.Error("request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

// detail strips the sentinel prefix so "not found: post not found" is reported as "post not found".
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// currentActor returns the identity established by the JWT middleware.
func currentActor(c echo.Context) (models.AuthContext, error) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok || auth.UserID == 0 {
		return models.AuthContext{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return auth, nil
}

// bindAndValidate binds the request body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

func parseUintParam(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+label+" ID format")
	}
	return uint(id), nil
}
