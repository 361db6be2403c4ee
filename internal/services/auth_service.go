package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitokorn/buy-me-a-gift/internal/models"
	"github.com/vitokorn/buy-me-a-gift/internal/repositories"
	"github.com/vitokorn/buy-me-a-gift/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Token types stored in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenConfig configures JWT signing.
type TokenConfig struct {
	Secret          string
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access   string
	Refresh  string
	Lifetime int64 // access token lifetime in seconds
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo        repositories.UserRepository
	events          EventPublisher
	jwtSecret       []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

// NewAuthService creates a new AuthService. Zero lifetimes fall back to
// 5 minutes for access tokens and 24 hours for refresh tokens.
func NewAuthService(userRepo repositories.UserRepository, cfg TokenConfig, events EventPublisher) *AuthService {
	if cfg.AccessLifetime <= 0 {
		cfg.AccessLifetime = 5 * time.Minute
	}
	if cfg.RefreshLifetime <= 0 {
		cfg.RefreshLifetime = 24 * time.Hour
	}
	return &AuthService{
		userRepo:        userRepo,
		events:          publisherOrNoop(events),
		jwtSecret:       []byte(cfg.Secret),
		accessLifetime:  cfg.AccessLifetime,
		refreshLifetime: cfg.RefreshLifetime,
	}
}

// AccessLifetime returns how long issued access tokens stay valid.
func (s *AuthService) AccessLifetime() time.Duration {
	return s.accessLifetime
}

// RegisterUser validates the email, hashes the password and stores a new active user.
func (s *AuthService) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.createUser(ctx, email, password, false)
	if err != nil {
		return nil, err
	}
	publish(s.events, EventUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// CreateSuperuser stores an active staff and superuser account.
func (s *AuthService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.createUser(ctx, email, password, true)
}

func (s *AuthService) createUser(ctx context.Context, email, password string, admin bool) (*models.User, error) {
	logCtx := logrus.WithField("email", email)

	if !validation.IsValidEmail(email) {
		return nil, newError(ErrValidation, "Incorrect email")
	}
	if password == "" {
		return nil, newError(ErrValidation, "Password is required")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, newError(ErrValidation, "This email already used")
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logCtx.WithError(err).Error("Failed to look up user during registration")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       email,
		Password:    hashedPassword,
		IsActive:    true,
		IsStaff:     admin,
		IsSuperuser: admin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, newError(ErrValidation, "This email already used")
		}
		logCtx.WithError(err).Error("Failed to store new user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logCtx.WithFields(logrus.Fields{"user_id": user.ID, "admin": admin}).Info("User registered")
	return user, nil
}

// LoginUser authenticates a user and returns an access/refresh token pair.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			logrus.WithError(err).WithField("email", email).Error("Failed to look up user during login")
		}
		return nil, newError(ErrInvalidCredentials, "No active account found with the given credentials")
	}
	if !user.IsActive || !checkPassword(password, user.Password) {
		return nil, newError(ErrInvalidCredentials, "No active account found with the given credentials")
	}

	access, err := s.generateToken(user.ID, TokenTypeAccess, s.accessLifetime)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user.ID, TokenTypeRefresh, s.refreshLifetime)
	if err != nil {
		return nil, err
	}

	logrus.WithField("user_id", user.ID).Info("User logged in")
	return &TokenPair{
		Access:   access,
		Refresh:  refresh,
		Lifetime: int64(s.accessLifetime / time.Second),
	}, nil
}

// RefreshAccessToken issues a new access token from a valid refresh token.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	user, err := s.userFromToken(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return s.generateToken(user.ID, TokenTypeAccess, s.accessLifetime)
}

// Authenticate resolves an access token to its active user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	return s.userFromToken(ctx, accessToken, TokenTypeAccess)
}

// ResetPassword replaces the user's password after checking the old one.
func (s *AuthService) ResetPassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	if !checkPassword(oldPassword, user.Password) {
		return newError(ErrValidation, "Old password is wrong")
	}
	if checkPassword(newPassword, user.Password) {
		return newError(ErrValidation, "Both passwords are the same")
	}

	hashedPassword, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(ErrNotFound, "User not found")
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}
	user.Password = hashedPassword

	logrus.WithField("user_id", user.ID).Info("Password updated")
	return nil
}

// ValidateToken parses and validates a JWT token of the expected type,
// returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString, tokenType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, newError(ErrInvalidToken, "Token is invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, newError(ErrInvalidToken, "Token is invalid or expired")
	}
	if claims["token_type"] != tokenType {
		return nil, newError(ErrInvalidToken, "Token has wrong type")
	}
	return claims, nil
}

func (s *AuthService) userFromToken(ctx context.Context, tokenString, tokenType string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString, tokenType)
	if err != nil {
		return nil, err
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, newError(ErrInvalidToken, "Token contained no recognizable user identification")
	}

	user, err := s.userRepo.GetByID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(ErrInvalidToken, "User not found")
		}
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}
	if !user.IsActive {
		return nil, newError(ErrInvalidToken, "User is inactive")
	}
	return user, nil
}

func (s *AuthService) generateToken(userID uint, tokenType string, lifetime time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    userID,
		"token_type": tokenType,
		"jti":        uuid.New().String(),
		"iat":        now.Unix(),
		"exp":        now.Add(lifetime).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s token: %w", tokenType, err)
	}
	return tokenString, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
