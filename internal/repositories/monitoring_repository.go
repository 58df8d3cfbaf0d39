package repositories

import (
	"context"
	"errors"

	"github.com/gourdmobile/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMonitoringNotFound = errors.New("monitoring record not found")

// MonitoringRepository defines the interface for pollination monitoring records
type MonitoringRepository interface {
	CreateMonitoring(ctx context.Context, m *models.Monitoring) error
	GetMonitoringByID(ctx context.Context, id primitive.ObjectID) (*models.Monitoring, error)
	GetMonitorings(ctx context.Context) ([]models.Monitoring, error)
	GetMonitoringsByUser(ctx context.Context, userID uint) ([]models.Monitoring, error)
	SaveMonitoring(ctx context.Context, m *models.Monitoring) error
	DeleteMonitoring(ctx context.Context, id primitive.ObjectID) error
}

type MongoMonitoringRepository struct {
	collection *mongo.Collection
}

func NewMongoMonitoringRepository(db *mongo.Database) *MongoMonitoringRepository {
	return &MongoMonitoringRepository{collection: db.Collection("monitorings")}
}

func (r *MongoMonitoringRepository) CreateMonitoring(ctx context.Context, m *models.Monitoring) error {
	m.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, m)
	return err
}

func (r *MongoMonitoringRepository) GetMonitoringByID(ctx context.Context, id primitive.ObjectID) (*models.Monitoring, error) {
	var m models.Monitoring
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMonitoringNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MongoMonitoringRepository) GetMonitorings(ctx context.Context) ([]models.Monitoring, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoMonitoringRepository) GetMonitoringsByUser(ctx context.Context, userID uint) ([]models.Monitoring, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoMonitoringRepository) find(ctx context.Context, filter interface{}) ([]models.Monitoring, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_of_pollination", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.Monitoring{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *MongoMonitoringRepository) SaveMonitoring(ctx context.Context, m *models.Monitoring) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMonitoringNotFound
	}
	return nil
}

func (r *MongoMonitoringRepository) DeleteMonitoring(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMonitoringNotFound
	}
	return nil
}
