package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/habitrail/habit-tracker-api/internal/constants"
	"github.com/habitrail/habit-tracker-api/internal/logger"
	"github.com/habitrail/habit-tracker-api/internal/models"
	"github.com/habitrail/habit-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUsernameTooShort     = errors.New("username too short")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrVerificationExpired  = errors.New("verification token expired")
	ErrVerificationNotFound = errors.New("verification token not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, credential checks, and JWT issuance.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.VerificationTokenRepository
	mailer    Mailer
	log       *logger.Logger

	jwtSecret     string
	refreshSecret string
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.VerificationTokenRepository,
	mailer Mailer,
	log *logger.Logger,
	jwtSecret, refreshSecret string,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		mailer:        mailer,
		log:           log,
		jwtSecret:     jwtSecret,
		refreshSecret: refreshSecret,
	}
}

// TokenPair is an access token plus the refresh token that can renew it.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

func (s *AuthService) validateSignup(input *SignupInput) error {
	input.Username = strings.TrimSpace(input.Username)
	if len(input.Username) < constants.MinUsernameLength {
		return ErrUsernameTooShort
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidEmail
	}
	if len(input.Password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *AuthService) createUser(input SignupInput, verified bool) (*models.User, error) {
	if err := s.validateSignup(&input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsernameOrEmail(input.Username, input.Email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Verified:     verified,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Signup creates a user and logs them in immediately.
func (s *AuthService) Signup(input SignupInput) (*models.User, *TokenPair, error) {
	user, err := s.createUser(input, false)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Register creates an unverified user and emails them a verification link.
func (s *AuthService) Register(input SignupInput) (*models.User, error) {
	user, err := s.createUser(input, false)
	if err != nil {
		return nil, err
	}

	token := &models.VerificationToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(constants.VerificationTokenTTL),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(user.Email, token.Token); err != nil {
		s.log.Error("failed to send verification email", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	return user, nil
}

// VerifyEmail consumes a verification token and marks its user verified.
func (s *AuthService) VerifyEmail(token string) error {
	vt, err := s.tokenRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVerificationNotFound
		}
		return fmt.Errorf("failed to look up verification token: %w", err)
	}

	if time.Now().After(vt.ExpiresAt) {
		return ErrVerificationExpired
	}

	user, err := s.userRepo.FindByID(vt.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.Verified = true
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	if err := s.tokenRepo.Delete(vt.ID); err != nil {
		return fmt.Errorf("failed to consume verification token: %w", err)
	}

	return nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the user with a fresh token pair.
func (s *AuthService) Login(input LoginInput) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// GetUser returns a user by id.
func (s *AuthService) GetUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// RefreshAccessToken validates a refresh token and mints a new access token.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	userID, err := s.parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return "", ErrInvalidToken
	}
	return s.signToken(userID, s.jwtSecret, constants.AccessTokenTTL)
}

// VerifyAccessToken parses an access token and returns the user id it names.
// The user must still exist.
func (s *AuthService) VerifyAccessToken(token string) (uint64, error) {
	userID, err := s.parseToken(token, s.jwtSecret)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to find user: %w", err)
	}
	return userID, nil
}

func (s *AuthService) issueTokenPair(userID uint64) (*TokenPair, error) {
	accessToken, err := s.signToken(userID, s.jwtSecret, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.signToken(userID, s.refreshSecret, constants.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) signToken(userID uint64, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *AuthService) parseToken(tokenString, secret string) (uint64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}
	return userID, nil
}
