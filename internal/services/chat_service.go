package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatService struct {
	chats     repositories.ChatRepository
	users     repositories.UserRepository
}

func NewChatService(chats repositories.ChatRepository, users repositories.UserRepository) *ChatService {
	return &ChatService{chats: chats, users: users}
}

// Conversations lists the latest message of every (sender, recipient) pair in the general room.
func (s *ChatService) Conversations(ctx context.Context) ([]models.ConversationView, error) {
	summaries, err := s.chats.GetConversations(ctx, models.DefaultChatRoom)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: no chats found", ErrNotFound)
	}

	ids := make([]uint, 0, len(summaries)*2)
	for _, sm := range summaries {
		ids = append(ids, sm.Key.SenderID, sm.Key.UserID)
	}
	users, err := userDirectory(s.users, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ConversationView, 0, len(summaries))
	for _, sm := range summaries {
		sender, user := users[sm.Key.SenderID], users[sm.Key.UserID]
		// A thread whose participant no longer exists is dropped, as an unmatched join would be.
		if sender == nil || user == nil {
			continue
		}
		views = append(views, models.ConversationView{
			ID:                   sm.Key,
			LastMessage:          sm.LastMessage,
			LastMessageTimestamp: sm.LastMessageTimestamp,
			Sender:               sender,
			User:                 user,
		})
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("%w: no chats found", ErrNotFound)
	}
	return views, nil
}

func (s *ChatService) ByUser(ctx context.Context, userID uint) ([]models.ChatView, error) {
	chats, err := s.chats.GetChatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(chats, "no chats found for this user")
}

func (s *ChatService) ByRoom(ctx context.Context, room string) ([]models.ChatView, error) {
	chats, err := s.chats.GetChatsByRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	return s.views(chats, "no messages found for this room")
}

// Between returns the messages exchanged by two users in either direction, oldest first.
func (s *ChatService) Between(ctx context.Context, senderID, receiverID uint) ([]models.ChatView, error) {
	chats, err := s.chats.GetChatsBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	return s.views(chats, "no messages found between these users")
}

func (s *ChatService) Create(ctx context.Context, req *models.CreateChatRequest) (*models.Chat, error) {
	message := strings.TrimSpace(req.Message)
	if req.User == 0 || req.Sender == 0 || message == "" {
		return nil, fmt.Errorf("%w: recipient, sender, and message are required", ErrBadRequest)
	}
	room := strings.TrimSpace(req.Room)
	if room == "" {
		room = models.DefaultChatRoom
	}

	chat := &models.Chat{
		UserID:   req.User,
		SenderID: req.Sender,
		Message:  message,
		Room:     room,
	}
	if err := s.chats.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) Update(ctx context.Context, id string, req *models.UpdateChatRequest) (*models.Chat, error) {
	objID, err := parseChatID(id)
	if err != nil {
		return nil, err
	}
	req.Message = strings.TrimSpace(req.Message)
	req.Room = strings.TrimSpace(req.Room)

	chat, err := s.chats.UpdateChat(ctx, objID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, fmt.Errorf("%w: chat not found", ErrNotFound)
		}
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) Delete(ctx context.Context, id string) error {
	objID, err := parseChatID(id)
	if err != nil {
		return err
	}
	if err := s.chats.DeleteChat(ctx, objID); err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return fmt.Errorf("%w: chat not found", ErrNotFound)
		}
		return err
	}
	return nil
}

func parseChatID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid chat ID format", ErrBadRequest)
	}
	return objID, nil
}

func (s *ChatService) views(chats []models.Chat, emptyMsg string) ([]models.ChatView, error) {
	if len(chats) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, emptyMsg)
	}
	ids := make([]uint, 0, len(chats)*2)
	for _, c := range chats {
		ids = append(ids, c.UserID, c.SenderID)
	}
	users, err := userDirectory(s.users, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ChatView, len(chats))
	for i, c := range chats {
		views[i] = models.ChatView{
			ID:        c.ID,
			User:      users[c.UserID],
			Sender:    users[c.SenderID],
			Message:   c.Message,
			Room:      c.Room,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}
	return views, nil
}
