package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is stored in MongoDB together with its comments and their replies; the whole document is
// loaded and written back as one unit.
type Post struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title      string             `json:"title" bson:"title"`
	Content    string             `json:"content" bson:"content"`
	Images     []string           `json:"images" bson:"images"`
	UserID     uint               `json:"user" bson:"user"`
	CategoryID uint               `json:"category" bson:"category"`
	Likes      int                `json:"likes" bson:"likes"`
	Comments   []Comment          `json:"comments" bson:"comments"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// FindComment returns the index of the comment with the given id, or -1.
func (p *Post) FindComment(id primitive.ObjectID) int {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveComment drops the comment at index i, keeping the order of the rest.
func (p *Post) RemoveComment(i int) {
	p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
}

// UserIDs returns the distinct user ids referenced by the post, its comments and replies.
func (p *Post) UserIDs() []uint {
	seen := map[uint]bool{p.UserID: true}
	ids := []uint{p.UserID}
	add := func(id uint) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, c := range p.Comments {
		add(c.UserID)
		for _, r := range c.Replies {
			add(r.UserID)
		}
	}
	return ids
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Images   []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Category uint     `json:"category" validate:"required"`
}

// UpdatePostRequest defines the request body for updating an existing post. Absent fields are kept.
type UpdatePostRequest struct {
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content,omitempty"`
	Images   []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Category uint     `json:"category,omitempty"`
}

// PostView is a post with its owner, category and every comment/reply author populated.
type PostView struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Images    []string           `json:"images"`
	User      *UserPublic        `json:"user"`
	Category  *Descriptor        `json:"category"`
	Likes     int                `json:"likes"`
	Comments  []CommentView      `json:"comments"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
