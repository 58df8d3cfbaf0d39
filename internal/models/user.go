package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a community member account (PostgreSQL).
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	Street       string    `json:"street"`
	Apartment    string    `json:"apartment"`
	Zip          string    `json:"zip"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Image        string    `json:"image"`
	FirebaseUID  *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPublic is the profile subset attached to posts, comments, chats and monitoring records.
type UserPublic struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

func (u *User) ToPublic() *UserPublic {
	return &UserPublic{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

// RegisterUserRequest is bound from the multipart registration form.
type RegisterUserRequest struct {
	Name      string `form:"name" json:"name" validate:"required"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Password  string `form:"password" json:"password" validate:"required,max=72"`
	Phone     string `form:"phone" json:"phone"`
	Street    string `form:"street" json:"street"`
	Apartment string `form:"apartment" json:"apartment"`
	Zip       string `form:"zip" json:"zip"`
	City      string `form:"city" json:"city"`
	Country   string `form:"country" json:"country"`
}

// CreateUserRequest is the admin-only variant which may grant administrator privilege.
type CreateUserRequest struct {
	RegisterUserRequest
	IsAdmin bool `form:"is_admin" json:"is_admin"`
}

type UpdateUserRequest struct {
	Name      string `form:"name" json:"name,omitempty"`
	Email     string `form:"email" json:"email,omitempty" validate:"omitempty,email"`
	Password  string `form:"password" json:"password,omitempty" validate:"omitempty,max=72"`
	Phone     string `form:"phone" json:"phone,omitempty"`
	IsAdmin   *bool  `form:"is_admin" json:"is_admin,omitempty"`
	Street    string `form:"street" json:"street,omitempty"`
	Apartment string `form:"apartment" json:"apartment,omitempty"`
	Zip       string `form:"zip" json:"zip,omitempty"`
	City      string `form:"city" json:"city,omitempty"`
	Country   string `form:"country" json:"country,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries a Firebase ID token obtained by the client after Google sign-in.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// AuthContext is the acting identity handed to every mutation. It is taken from verified token
// claims and trusted as given.
type AuthContext struct {
	UserID  uint
	IsAdmin bool
}

// IsSelfOrAdmin reports whether the actor owns the record identified by ownerID or is an administrator.
func (a AuthContext) IsSelfOrAdmin(ownerID uint) bool {
	return a.IsAdmin || a.UserID == ownerID
}
