package handlers

import (
	"net/http"
	"testing"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/gourdmobile/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memCategoryStore enforces unique names the way the Postgres index does.
type memCategoryStore struct{ categories []models.Category }

func (r *memCategoryStore) CreateCategory(c *models.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = uint(len(r.categories) + 1)
	r.categories = append(r.categories, *c)
	return nil
}

func (r *memCategoryStore) GetCategoryByID(id uint) (*models.Category, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			c := r.categories[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCategoryStore) GetCategoriesByIDs(ids []uint) ([]models.Category, error) {
	out := []models.Category{}
	for _, id := range ids {
		if c, err := r.GetCategoryByID(id); err == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCategoryStore) GetCategories() ([]models.Category, error) { return r.categories, nil }

func (r *memCategoryStore) DeleteCategory(id uint) (bool, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memGourds struct {
	types     []models.GourdType
	varieties []models.Variety
}

func (r *memGourds) CreateGourdType(gt *models.GourdType) error {
	for _, existing := range r.types {
		if existing.Name == gt.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	gt.ID = uint(len(r.types) + 1)
	r.types = append(r.types, *gt)
	return nil
}

func (r *memGourds) GetGourdTypes() ([]models.GourdType, error) { return r.types, nil }

func (r *memGourds) GetGourdTypesByIDs(ids []uint) ([]models.GourdType, error) {
	out := []models.GourdType{}
	for _, id := range ids {
		for _, gt := range r.types {
			if gt.ID == id {
				out = append(out, gt)
			}
		}
	}
	return out, nil
}

func (r *memGourds) CreateVariety(v *models.Variety) error {
	for _, existing := range r.varieties {
		if existing.Name == v.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	v.ID = uint(len(r.varieties) + 1)
	r.varieties = append(r.varieties, *v)
	return nil
}

func (r *memGourds) GetVarieties() ([]models.Variety, error) { return r.varieties, nil }

func (r *memGourds) GetVarietiesByIDs(ids []uint) ([]models.Variety, error) {
	out := []models.Variety{}
	for _, id := range ids {
		for _, v := range r.varieties {
			if v.ID == id {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func newCategoryServer(t *testing.T) (*echo.Echo, *memCategoryStore, *memGourds) {
	t.Helper()
	categories := &memCategoryStore{categories: []models.Category{{ID: 1, Name: "Harvest", Description: "Harvest reports"}}}
	gourds := &memGourds{}
	h := NewCategoryHandler(categories, gourds, logger.Nop())

	e := echo.New()
	e.Validator = validators.NewValidator()
	h.RegisterPublicRoutes(e.Group("/api/v1"))
	h.RegisterReferenceRoutes(e.Group("/api/v1", testActor), func(next echo.HandlerFunc) echo.HandlerFunc { return next })
	return e, categories, gourds
}

func TestCategoryRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		msg    string
	}{
		{"get", http.MethodGet, "/api/v1/categories/1", "", http.StatusOK, ""},
		{"malformed id", http.MethodGet, "/api/v1/categories/abc", "", http.StatusBadRequest, "Invalid category ID format"},
		{"unknown", http.MethodGet, "/api/v1/categories/99", "", http.StatusNotFound, "Category not found"},
		{"create", http.MethodPost, "/api/v1/categories", `{"name":" Pests ","description":"Pest control"}`, http.StatusCreated, ""},
		{"duplicate name", http.MethodPost, "/api/v1/categories", `{"name":"Harvest"}`, http.StatusConflict, "Name already exists"},
		{"missing name", http.MethodPost, "/api/v1/categories", `{"description":"x"}`, http.StatusBadRequest, "name is required"},
		{"delete", http.MethodDelete, "/api/v1/categories/1", "", http.StatusNoContent, ""},
		{"delete unknown", http.MethodDelete, "/api/v1/categories/99", "", http.StatusNotFound, "Category not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newCategoryServer(t)

			rec := serveJSON(e, tt.method, tt.path, "3:admin", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, message(t, rec))
			}
		})
	}
}

func TestCreateCategory_TrimsName(t *testing.T) {
	e, categories, _ := newCategoryServer(t)

	rec := serveJSON(e, http.MethodPost, "/api/v1/categories", "3:admin", `{"name":" Pests "}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, categories.categories, 2)
	assert.Equal(t, "Pests", categories.categories[1].Name)

	rec = serveJSON(e, http.MethodGet, "/api/v1/categories", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pests")
}

func TestGourdReferenceRoutes(t *testing.T) {
	e, _, gourds := newCategoryServer(t)

	rec := serveJSON(e, http.MethodPost, "/api/v1/gourd-types", "3:admin", `{"name":"Bottle"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = serveJSON(e, http.MethodPost, "/api/v1/gourd-types", "3:admin", `{"name":"Bottle"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serveJSON(e, http.MethodPost, "/api/v1/varieties", "3:admin", `{"name":"Long"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = serveJSON(e, http.MethodPost, "/api/v1/varieties", "3:admin", `{"name":"Long"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serveJSON(e, http.MethodGet, "/api/v1/gourd-types", "1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bottle")
	rec = serveJSON(e, http.MethodGet, "/api/v1/varieties", "1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Long")

	assert.Len(t, gourds.types, 1)
	assert.Len(t, gourds.varieties, 1)
}
