package handlers

import (
	"errors"
	"net/http"

	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// UploadHandler stores images in the configured media store
type UploadHandler struct {
	media services.MediaStore
	log   *logger.Logger
}

// NewUploadHandler creates an UploadHandler. media may be nil when storage is not configured.
func NewUploadHandler(media services.MediaStore, log *logger.Logger) *UploadHandler {
	return &UploadHandler{media: media, log: log.With("handler", "uploads")}
}

func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.UploadImage)
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	url, err := formImage(c, h.media)
	if err != nil {
		return httpError(h.log, c, err)
	}
	if url == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No image in the request")
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

// formImage uploads the optional "image" form file and returns its URL, or "" when the request
// carries no image.
func formImage(c echo.Context, media services.MediaStore) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}
	if media == nil {
		return "", echo.NewHTTPError(http.StatusServiceUnavailable, "Image storage is not configured")
	}

	f, err := fh.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Unable to read uploaded image")
	}
	defer f.Close()

	return media.UploadImage(c.Request().Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
}
