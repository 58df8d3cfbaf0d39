package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultChatRoom = "general"

// Chat is a single message from Sender to User (the recipient).
type Chat struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    uint               `json:"user" bson:"user"`
	SenderID  uint               `json:"sender" bson:"sender"`
	Message   string             `json:"message" bson:"message"`
	Room      string             `json:"room" bson:"room"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type CreateChatRequest struct {
	User    uint   `json:"user" validate:"required"`
	Sender  uint   `json:"sender" validate:"required"`
	Message string `json:"message" validate:"required"`
	Room    string `json:"room,omitempty"`
}

type UpdateChatRequest struct {
	Message string `json:"message,omitempty"`
	Room    string `json:"room,omitempty"`
}

// ConversationKey identifies a (sender, recipient) thread.
type ConversationKey struct {
	SenderID uint `json:"sender" bson:"sender"`
	UserID   uint `json:"user" bson:"user"`
}

// ConversationSummary is one row of the conversation aggregation.
type ConversationSummary struct {
	Key                  ConversationKey `bson:"_id"`
	LastMessage          string          `bson:"last_message"`
	LastMessageTimestamp time.Time       `bson:"last_message_timestamp"`
}

type ConversationView struct {
	ID                   ConversationKey `json:"id"`
	LastMessage          string          `json:"last_message"`
	LastMessageTimestamp time.Time       `json:"last_message_timestamp"`
	Sender               *UserPublic     `json:"sender"`
	User                 *UserPublic     `json:"user"`
}

type ChatView struct {
	ID        primitive.ObjectID `json:"id"`
	User      *UserPublic        `json:"user"`
	Sender    *UserPublic        `json:"sender"`
	Message   string             `json:"message"`
	Room      string             `json:"room"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
