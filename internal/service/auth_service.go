package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"casebook/internal/infrastructure/cache"
	"casebook/internal/model"
	"casebook/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type AuthService struct {
	logger   *zap.Logger
	userRepo *repository.UserRepository
	sessions cache.SessionStore
}

func NewAuthService(db *gorm.DB, sessions cache.SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		logger:   logger,
		userRepo: repository.NewUserRepository(db),
		sessions: sessions,
	}
}

type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login checks the password and opens a session. Unknown users and wrong
// passwords return the same error.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, *model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		s.logger.Info("login failed", zap.String("username", user.Username))
		return "", nil, ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return sessionID, user, nil
}

// Authenticate resolves a session id to its user.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, cache.ErrSessionNotFound
	}
	userID, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, cache.ErrSessionNotFound
	}
	return user, err
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// CreateUser stores a user with a bcrypt hash of password.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, role model.UserRole) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyName
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
