package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lives inside a Post document.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    uint               `json:"user" bson:"user"`
	Content   string             `json:"content" bson:"content"`
	Replies   []Reply            `json:"replies" bson:"replies"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Reply lives inside a Comment. Replies can only be created.
type Reply struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    uint               `json:"user" bson:"user"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CanEdit reports whether actor may change the comment text. Only the author may, administrators
// included.
func (c *Comment) CanEdit(actor AuthContext) bool {
	return c.UserID == actor.UserID
}

// CanDelete reports whether actor may remove the comment: its author or any administrator.
func (c *Comment) CanDelete(actor AuthContext) bool {
	return c.UserID == actor.UserID || actor.IsAdmin
}

// CreateCommentRequest defines the request body for a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required"`
}

type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	User      *UserPublic        `json:"user"`
	Content   string             `json:"content"`
	Replies   []ReplyView        `json:"replies"`
	CreatedAt time.Time          `json:"created_at"`
}

type ReplyView struct {
	ID        primitive.ObjectID `json:"id"`
	User      *UserPublic        `json:"user"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
}
