package services

import (
	"context"
	"testing"
	"time"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func newMonitoringFixture(records ...models.Monitoring) (*MonitoringService, *fakeMonitoringRepo) {
	repo := newFakeMonitoringRepo(records...)
	users := newFakeUserRepo(
		models.User{ID: 1, Name: "Ana", Email: "ana@example.com"},
		models.User{ID: 2, Name: "Ben", Email: "ben@example.com"},
	)
	gourds := &fakeGourdRepo{
		types:     []models.GourdType{{ID: 1, Name: "Bottle gourd"}},
		varieties: []models.Variety{{ID: 1, Name: "Long"}},
	}
	return NewMonitoringService(repo, users, gourds), repo
}

func TestMonitoringCreate_Defaults(t *testing.T) {
	svc, _ := newMonitoringFixture()
	pollinated := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)

	m, err := svc.Create(context.Background(), author, &models.CreateMonitoringRequest{
		GourdType:         1,
		Variety:           1,
		DateOfPollination: &pollinated,
		PollinatedFlowers: intPtr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), m.UserID)
	assert.Equal(t, models.MonitoringInProgress, m.Status)
	assert.Zero(t, m.FruitsHarvested)
	assert.Nil(t, m.DateOfFinalization)
	assert.Equal(t, 12, m.PollinatedFlowers)
}

func TestMonitoringCreate_InvalidInput(t *testing.T) {
	svc, repo := newMonitoringFixture()
	pollinated := time.Now()

	_, err := svc.Create(context.Background(), author, &models.CreateMonitoringRequest{GourdType: 1, Variety: 1})
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = svc.Create(context.Background(), author, &models.CreateMonitoringRequest{
		GourdType: 1, Variety: 1, DateOfPollination: &pollinated, PollinatedFlowers: intPtr(1), Status: "Done",
	})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Empty(t, repo.records)
}

func TestMonitoringUpdate_OwnerOrAdmin(t *testing.T) {
	record := models.Monitoring{
		ID:                primitive.NewObjectID(),
		UserID:            1,
		GourdTypeID:       1,
		VarietyID:         1,
		DateOfPollination: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		PollinatedFlowers: 10,
		Status:            models.MonitoringInProgress,
	}
	svc, repo := newMonitoringFixture(record)
	ctx := context.Background()

	_, err := svc.Update(ctx, record.ID.Hex(), stranger, &models.UpdateMonitoringRequest{FruitsHarvested: intPtr(4)})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, repo.saves)

	m, err := svc.Update(ctx, record.ID.Hex(), admin, &models.UpdateMonitoringRequest{
		FruitsHarvested: intPtr(4),
		Status:          models.MonitoringCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, m.FruitsHarvested)
	assert.Equal(t, models.MonitoringCompleted, m.Status)
	assert.Equal(t, uint(1), m.UserID)
	assert.Equal(t, 10, m.PollinatedFlowers)
}

func TestMonitoringDelete(t *testing.T) {
	record := models.Monitoring{ID: primitive.NewObjectID(), UserID: 1, Status: models.MonitoringInProgress}
	svc, repo := newMonitoringFixture(record)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, record.ID.Hex(), stranger), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "bad", author), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, record.ID.Hex(), author))
	assert.Empty(t, repo.records)
	assert.ErrorIs(t, svc.Delete(ctx, record.ID.Hex(), author), ErrNotFound)
}

func TestMonitoringList_Populates(t *testing.T) {
	record := models.Monitoring{ID: primitive.NewObjectID(), UserID: 2, GourdTypeID: 1, VarietyID: 5}
	svc, _ := newMonitoringFixture(record)

	views, err := svc.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Ben", views[0].User.Name)
	assert.Equal(t, "Bottle gourd", views[0].GourdType.Name)
	assert.Nil(t, views[0].Variety)

	views, err = svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, views)
}
