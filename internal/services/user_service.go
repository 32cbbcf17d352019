package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/calebmoss/gamedex/internal/models"
	"github.com/calebmoss/gamedex/pkg/crypto"
	appErrors "github.com/calebmoss/gamedex/pkg/errors"
)

// ErrUserNotFound indicates the requested user does not exist.
var ErrUserNotFound = errors.New("user service: user not found")

// UserService manages account registration and credential checks. Uniqueness
// of email and username is enforced here, before any row is written, in
// addition to the database constraints.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a user service once a database handle is supplied.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// RegisterInput captures required fields when creating an account.
type RegisterInput struct {
	Email          string
	Username       string
	Password       string
	ProfilePicture *string
}

// Register creates an account with a bcrypt-hashed password. The raw
// password is never stored.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if s == nil {
		return nil, errors.New("user service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("user service: check email: %w", err)
	}
	if count > 0 {
		return nil, appErrors.ErrDuplicateEmail
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("user service: check username: %w", err)
	}
	if count > 0 {
		return nil, appErrors.ErrDuplicateUsername
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := &models.User{
		Email:          email,
		Username:       username,
		Password:       hash,
		ProfilePicture: input.ProfilePicture,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies an email/password pair. Both an unknown email and a
// wrong password yield ErrInvalidCredentials; the two cases are not
// distinguishable by the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if s == nil {
		return nil, errors.New("user service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	user, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !crypto.VerifyPassword(user.Password, password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID fetches a user by primary key.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getUser(ctx, "id = ?", id)
}

// GetByEmail fetches a user by email, case-insensitively.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByUsername fetches a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username = ?", strings.TrimSpace(username))
}

func (s *UserService) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	if s == nil {
		return nil, errors.New("user service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Take(&user, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: lookup user: %w", err)
	}
	return &user, nil
}
