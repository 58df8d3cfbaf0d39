package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gourdmobile/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatRepository defines the interface for chat message operations
type ChatRepository interface {
	CreateChat(ctx context.Context, chat *models.Chat) error
	// GetConversations groups the messages of a room by (sender, recipient) and keeps the latest one.
	GetConversations(ctx context.Context, room string) ([]models.ConversationSummary, error)
	GetChatsByUser(ctx context.Context, userID uint) ([]models.Chat, error)
	GetChatsByRoom(ctx context.Context, room string) ([]models.Chat, error)
	GetChatsBetween(ctx context.Context, a, b uint) ([]models.Chat, error)
	UpdateChat(ctx context.Context, id primitive.ObjectID, req *models.UpdateChatRequest) (*models.Chat, error)
	DeleteChat(ctx context.Context, id primitive.ObjectID) error
}

type MongoChatRepository struct {
	collection *mongo.Collection
}

func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{collection: db.Collection("chats")}
}

func (r *MongoChatRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	now := time.Now().UTC()
	chat.ID = primitive.NewObjectID()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, chat)
	return err
}

func (r *MongoChatRepository) GetConversations(ctx context.Context, room string) ([]models.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"room": room}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "sender", Value: "$sender"}, {Key: "user", Value: "$user"}}},
			{Key: "last_message", Value: bson.M{"$last": "$message"}},
			{Key: "last_message_timestamp", Value: bson.M{"$last": "$created_at"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_message_timestamp", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []models.ConversationSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *MongoChatRepository) GetChatsByUser(ctx context.Context, userID uint) ([]models.Chat, error) {
	filter := bson.M{"$or": bson.A{bson.M{"user": userID}, bson.M{"sender": userID}}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *MongoChatRepository) GetChatsByRoom(ctx context.Context, room string) ([]models.Chat, error) {
	return r.find(ctx, bson.M{"room": room}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *MongoChatRepository) GetChatsBetween(ctx context.Context, a, b uint) ([]models.Chat, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"user": a, "sender": b},
		bson.M{"user": b, "sender": a},
	}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *MongoChatRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Chat, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	chats := []models.Chat{}
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *MongoChatRepository) UpdateChat(ctx context.Context, id primitive.ObjectID, req *models.UpdateChatRequest) (*models.Chat, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Message != "" {
		set["message"] = req.Message
	}
	if req.Room != "" {
		set["room"] = req.Room
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var chat models.Chat
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("update chat %s: %w", id.Hex(), err)
	}
	return &chat, nil
}

func (r *MongoChatRepository) DeleteChat(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrChatNotFound
	}
	return nil
}
