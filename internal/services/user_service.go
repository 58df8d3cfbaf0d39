package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/repositories"
	"github.com/gourdmobile/backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IDTokenVerifier is satisfied by the Firebase auth client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserService manages accounts and credentials.
type UserService struct {
	users    repositories.UserRepository
	tokens   *TokenService
	verifier IDTokenVerifier
	log      *logger.Logger
}

// NewUserService creates a UserService. verifier may be nil, in which case Google login is refused.
func NewUserService(users repositories.UserRepository, tokens *TokenService, verifier IDTokenVerifier, log *logger.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, verifier: verifier, log: log.With("service", "UserService")}
}

// Register creates a regular (non-admin) account.
func (s *UserService) Register(req *models.RegisterUserRequest, image string) (*models.User, error) {
	return s.create(req, false, image)
}

// CreateUser is the administrator variant of Register.
func (s *UserService) CreateUser(req *models.CreateUserRequest, image string) (*models.User, error) {
	return s.create(&req.RegisterUserRequest, req.IsAdmin, image)
}

func (s *UserService) create(req *models.RegisterUserRequest, isAdmin bool, image string) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.users.GetUserByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: user with this email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        req.Phone,
		IsAdmin:      isAdmin,
		Street:       req.Street,
		Apartment:    req.Apartment,
		Zip:          req.Zip,
		City:         req.City,
		Country:      req.Country,
		Image:        image,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, emailConflict(err)
	}
	s.log.Info("user created", "user_id", user.ID, "is_admin", isAdmin)
	return user, nil
}

// Login checks the password and returns a signed token.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, "", err
	}
	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// GoogleLogin verifies a Firebase ID token, links or creates the matching account and issues a
// local token.
func (s *UserService) GoogleLogin(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.verifier == nil {
		return nil, "", fmt.Errorf("%w: google login is not configured", ErrBadRequest)
	}

	verified, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid Firebase ID token", ErrUnauthorized)
	}
	email, _ := verified.Claims["email"].(string)
	name, _ := verified.Claims["name"].(string)
	picture, _ := verified.Claims["picture"].(string)
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", fmt.Errorf("%w: Firebase account has no email", ErrBadRequest)
	}

	user, err := s.findOrLinkFirebaseUser(verified.UID, email)
	if err != nil {
		return nil, "", err
	}

	if user == nil {
		uid := verified.UID
		user = &models.User{Name: name, Email: email, Image: picture, FirebaseUID: &uid}
		if err := s.users.CreateUser(user); err != nil {
			return nil, "", err
		}
		s.log.Info("user created from google login", "user_id", user.ID)
	} else {
		if name != "" && user.Name == "" {
			user.Name = name
		}
		if picture != "" && user.Image == "" {
			user.Image = picture
		}
		if err := s.users.UpdateUser(user); err != nil {
			return nil, "", err
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// findOrLinkFirebaseUser returns nil, nil when neither the uid nor the email is known.
func (s *UserService) findOrLinkFirebaseUser(uid, email string) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.users.GetUserByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.FirebaseUID = &uid
	return user, nil
}

// Logout revokes the presented token until it expires.
func (s *UserService) Logout(ctx context.Context, claims *models.JwtCustomClaims) error {
	return s.tokens.Revoke(ctx, claims)
}

func (s *UserService) ListUsers() ([]models.User, error) {
	return s.users.GetUsers()
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) CountUsers() (int64, error) {
	return s.users.CountUsers()
}

// UpdateUser applies the non-empty fields of req. Only administrators may change is_admin.
func (s *UserService) UpdateUser(id uint, actor models.AuthContext, req *models.UpdateUserRequest, image string) (*models.User, error) {
	if !actor.IsSelfOrAdmin(id) {
		return nil, fmt.Errorf("%w: you can only update your own account", ErrForbidden)
	}
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		email := normalizeEmail(req.Email)
		if email != user.Email {
			if _, err := s.users.GetUserByEmail(email); err == nil {
				return nil, fmt.Errorf("%w: user with this email already registered", ErrConflict)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.IsAdmin != nil {
		if !actor.IsAdmin {
			return nil, fmt.Errorf("%w: only administrators can change is_admin", ErrForbidden)
		}
		user.IsAdmin = *req.IsAdmin
	}
	setIfNotEmpty(&user.Name, strings.TrimSpace(req.Name))
	setIfNotEmpty(&user.Phone, req.Phone)
	setIfNotEmpty(&user.Street, req.Street)
	setIfNotEmpty(&user.Apartment, req.Apartment)
	setIfNotEmpty(&user.Zip, req.Zip)
	setIfNotEmpty(&user.City, req.City)
	setIfNotEmpty(&user.Country, req.Country)
	setIfNotEmpty(&user.Image, image)

	if err := s.users.UpdateUser(user); err != nil {
		return nil, emailConflict(err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(id uint, actor models.AuthContext) error {
	if !actor.IsSelfOrAdmin(id) {
		return fmt.Errorf("%w: you can only delete your own account", ErrForbidden)
	}
	deleted, err := s.users.DeleteUser(id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	s.log.Info("user deleted", "user_id", id, "by", actor.UserID)
	return nil
}

// emailConflict reports a unique-index violation on users as ErrConflict.
func emailConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: user with this email already registered", ErrConflict)
	}
	return err
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
