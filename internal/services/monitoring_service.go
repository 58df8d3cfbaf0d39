package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MonitoringService struct {
	monitorings repositories.MonitoringRepository
	users       repositories.UserRepository
	gourds      repositories.GourdRepository
}

func NewMonitoringService(
	monitorings repositories.MonitoringRepository,
	users repositories.UserRepository,
	gourds repositories.GourdRepository,
) *MonitoringService {
	return &MonitoringService{monitorings: monitorings, users: users, gourds: gourds}
}

func (s *MonitoringService) List(ctx context.Context) ([]models.MonitoringView, error) {
	records, err := s.monitorings.GetMonitorings(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(records)
}

func (s *MonitoringService) ListByUser(ctx context.Context, userID uint) ([]models.MonitoringView, error) {
	records, err := s.monitorings.GetMonitoringsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(records)
}

// Create records a new pollination batch owned by actor.
func (s *MonitoringService) Create(ctx context.Context, actor models.AuthContext, req *models.CreateMonitoringRequest) (*models.Monitoring, error) {
	if req.GourdType == 0 || req.Variety == 0 || req.DateOfPollination == nil || req.PollinatedFlowers == nil {
		return nil, fmt.Errorf("%w: gourd_type, variety, date_of_pollination and pollinated_flowers are required", ErrBadRequest)
	}
	if *req.PollinatedFlowers < 0 {
		return nil, fmt.Errorf("%w: pollinated_flowers must not be negative", ErrBadRequest)
	}

	m := &models.Monitoring{
		UserID:             actor.UserID,
		GourdTypeID:        req.GourdType,
		VarietyID:          req.Variety,
		DateOfPollination:  req.DateOfPollination.UTC(),
		PollinatedFlowers:  *req.PollinatedFlowers,
		DateOfFinalization: req.DateOfFinalization,
		Status:             models.MonitoringInProgress,
	}
	if req.FruitsHarvested != nil {
		if *req.FruitsHarvested < 0 {
			return nil, fmt.Errorf("%w: fruits_harvested must not be negative", ErrBadRequest)
		}
		m.FruitsHarvested = *req.FruitsHarvested
	}
	if req.Status != "" {
		if !validStatus(req.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrBadRequest, req.Status)
		}
		m.Status = req.Status
	}

	if err := s.monitorings.CreateMonitoring(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update merges the fields present in req. The owner or an administrator may update; ownership
// itself never changes.
func (s *MonitoringService) Update(ctx context.Context, id string, actor models.AuthContext, req *models.UpdateMonitoringRequest) (*models.Monitoring, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsSelfOrAdmin(m.UserID) {
		return nil, fmt.Errorf("%w: not your monitoring record", ErrForbidden)
	}

	if req.GourdType != 0 {
		m.GourdTypeID = req.GourdType
	}
	if req.Variety != 0 {
		m.VarietyID = req.Variety
	}
	if req.DateOfPollination != nil {
		m.DateOfPollination = req.DateOfPollination.UTC()
	}
	if req.PollinatedFlowers != nil {
		if *req.PollinatedFlowers < 0 {
			return nil, fmt.Errorf("%w: pollinated_flowers must not be negative", ErrBadRequest)
		}
		m.PollinatedFlowers = *req.PollinatedFlowers
	}
	if req.FruitsHarvested != nil {
		if *req.FruitsHarvested < 0 {
			return nil, fmt.Errorf("%w: fruits_harvested must not be negative", ErrBadRequest)
		}
		m.FruitsHarvested = *req.FruitsHarvested
	}
	if req.DateOfFinalization != nil {
		m.DateOfFinalization = req.DateOfFinalization
	}
	if req.Status != "" {
		if !validStatus(req.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrBadRequest, req.Status)
		}
		m.Status = req.Status
	}

	if err := s.monitorings.SaveMonitoring(ctx, m); err != nil {
		return nil, s.translate(err)
	}
	return m, nil
}

func (s *MonitoringService) Delete(ctx context.Context, id string, actor models.AuthContext) error {
	m, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsSelfOrAdmin(m.UserID) {
		return fmt.Errorf("%w: not your monitoring record", ErrForbidden)
	}
	if err := s.monitorings.DeleteMonitoring(ctx, m.ID); err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *MonitoringService) load(ctx context.Context, id string) (*models.Monitoring, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: monitoring record not found", ErrNotFound)
	}
	m, err := s.monitorings.GetMonitoringByID(ctx, objID)
	if err != nil {
		return nil, s.translate(err)
	}
	return m, nil
}

func (s *MonitoringService) translate(err error) error {
	if errors.Is(err, repositories.ErrMonitoringNotFound) {
		return fmt.Errorf("%w: monitoring record not found", ErrNotFound)
	}
	return err
}

func validStatus(status string) bool {
	switch status {
	case models.MonitoringInProgress, models.MonitoringCompleted, models.MonitoringFailed:
		return true
	}
	return false
}

func (s *MonitoringService) populate(records []models.Monitoring) ([]models.MonitoringView, error) {
	var userIDs, typeIDs, varietyIDs []uint
	for _, m := range records {
		userIDs = append(userIDs, m.UserID)
		typeIDs = append(typeIDs, m.GourdTypeID)
		varietyIDs = append(varietyIDs, m.VarietyID)
	}

	users, err := userDirectory(s.users, userIDs)
	if err != nil {
		return nil, err
	}
	gourdTypes, err := s.gourds.GetGourdTypesByIDs(uniqueIDs(typeIDs))
	if err != nil {
		return nil, err
	}
	varieties, err := s.gourds.GetVarietiesByIDs(uniqueIDs(varietyIDs))
	if err != nil {
		return nil, err
	}
	typeDir := make(map[uint]*models.Descriptor, len(gourdTypes))
	for i := range gourdTypes {
		typeDir[gourdTypes[i].ID] = gourdTypes[i].ToDescriptor()
	}
	varietyDir := make(map[uint]*models.Descriptor, len(varieties))
	for i := range varieties {
		varietyDir[varieties[i].ID] = varieties[i].ToDescriptor()
	}

	views := make([]models.MonitoringView, len(records))
	for i, m := range records {
		views[i] = models.MonitoringView{
			ID:                 m.ID,
			User:               users[m.UserID],
			GourdType:          typeDir[m.GourdTypeID],
			Variety:            varietyDir[m.VarietyID],
			DateOfPollination:  m.DateOfPollination,
			PollinatedFlowers:  m.PollinatedFlowers,
			FruitsHarvested:    m.FruitsHarvested,
			DateOfFinalization: m.DateOfFinalization,
			Status:             m.Status,
		}
	}
	return views, nil
}
