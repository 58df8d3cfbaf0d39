package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/repositories"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CategoryHandler serves post categories and the gourd type / variety reference lists
type CategoryHandler struct {
	categories repositories.CategoryRepository
	gourds     repositories.GourdRepository
	log        *logger.Logger
}

func NewCategoryHandler(categories repositories.CategoryRepository, gourds repositories.GourdRepository, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, gourds: gourds, log: log.With("handler", "categories")}
}

// RegisterPublicRoutes registers the category reads that need no token
func (h *CategoryHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/categories", h.GetCategories)
	g.GET("/categories/:id", h.GetCategory)
}

// RegisterReferenceRoutes registers the authenticated routes; admin guards every write.
func (h *CategoryHandler) RegisterReferenceRoutes(g *echo.Group, admin echo.MiddlewareFunc) {
	g.POST("/categories", h.CreateCategory, admin)
	g.DELETE("/categories/:id", h.DeleteCategory, admin)

	g.GET("/gourd-types", h.GetGourdTypes)
	g.POST("/gourd-types", h.CreateGourdType, admin)
	g.GET("/varieties", h.GetVarieties)
	g.POST("/varieties", h.CreateVariety, admin)
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categories.GetCategories()
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseUintParam(c, "id", "category")
	if err != nil {
		return err
	}
	category, err := h.categories.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req models.CreateDescriptorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category := &models.Category{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if err := h.categories.CreateCategory(category); err != nil {
		return h.createError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseUintParam(c, "id", "category")
	if err != nil {
		return err
	}
	deleted, err := h.categories.DeleteCategory(id)
	if err != nil {
		return httpError(h.log, c, err)
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) GetGourdTypes(c echo.Context) error {
	types, err := h.gourds.GetGourdTypes()
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, types)
}

func (h *CategoryHandler) CreateGourdType(c echo.Context) error {
	var req models.CreateDescriptorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	gourdType := &models.GourdType{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if err := h.gourds.CreateGourdType(gourdType); err != nil {
		return h.createError(c, err)
	}
	return c.JSON(http.StatusCreated, gourdType)
}

func (h *CategoryHandler) GetVarieties(c echo.Context) error {
	varieties, err := h.gourds.GetVarieties()
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, varieties)
}

func (h *CategoryHandler) CreateVariety(c echo.Context) error {
	var req models.CreateDescriptorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	variety := &models.Variety{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if err := h.gourds.CreateVariety(variety); err != nil {
		return h.createError(c, err)
	}
	return c.JSON(http.StatusCreated, variety)
}

// createError reports unique-name violations as 409.
func (h *CategoryHandler) createError(c echo.Context, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return echo.NewHTTPError(http.StatusConflict, "Name already exists")
	}
	return httpError(h.log, c, err)
}
