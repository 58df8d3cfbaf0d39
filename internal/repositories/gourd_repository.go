package repositories

import (
	"github.com/gourdmobile/backend/internal/models"
	"gorm.io/gorm"
)

// GourdRepository holds the gourd types and varieties referenced by monitoring records.
type GourdRepository interface {
	CreateGourdType(gt *models.GourdType) error
	GetGourdTypes() ([]models.GourdType, error)
	GetGourdTypesByIDs(ids []uint) ([]models.GourdType, error)
	CreateVariety(v *models.Variety) error
	GetVarieties() ([]models.Variety, error)
	GetVarietiesByIDs(ids []uint) ([]models.Variety, error)
}

type PostgresGourdRepository struct {
	db *gorm.DB
}

func NewPostgresGourdRepository(db *gorm.DB) *PostgresGourdRepository {
	return &PostgresGourdRepository{db: db}
}

func (r *PostgresGourdRepository) CreateGourdType(gt *models.GourdType) error {
	return r.db.Create(gt).Error
}

func (r *PostgresGourdRepository) GetGourdTypes() ([]models.GourdType, error) {
	types := []models.GourdType{}
	if err := r.db.Order("name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *PostgresGourdRepository) GetGourdTypesByIDs(ids []uint) ([]models.GourdType, error) {
	types := []models.GourdType{}
	if len(ids) == 0 {
		return types, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *PostgresGourdRepository) CreateVariety(v *models.Variety) error {
	return r.db.Create(v).Error
}

func (r *PostgresGourdRepository) GetVarieties() ([]models.Variety, error) {
	varieties := []models.Variety{}
	if err := r.db.Order("name").Find(&varieties).Error; err != nil {
		return nil, err
	}
	return varieties, nil
}

func (r *PostgresGourdRepository) GetVarietiesByIDs(ids []uint) ([]models.Variety, error) {
	varieties := []models.Variety{}
	if len(ids) == 0 {
		return varieties, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&varieties).Error; err != nil {
		return nil, err
	}
	return varieties, nil
}
