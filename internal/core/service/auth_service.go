package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bugtrackr/bug-tracker-api/internal/api/metrics"
	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login rate limiter (Redis).
type LoginThrottle interface {
	// TooManyFailures reports whether this email+IP pair has exceeded the
	// failure budget inside the current window.
	TooManyFailures(ctx context.Context, email, ip string) (bool, error)
	// RecordFailure counts one failed attempt against the pair.
	RecordFailure(ctx context.Context, email, ip string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email, ip string) error
}

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	repo      ports.UserRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, throttle: throttle, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password, remoteIP string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	// Throttle check is advisory: a broken limiter must not lock everyone out.
	blocked, err := s.throttle.TooManyFailures(ctx, email, remoteIP)
	if err == nil && blocked {
		metrics.AuthLoginFailuresTotal.WithLabelValues("throttled").Inc()
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email, remoteIP, "unknown_user")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email, remoteIP, "bad_password")
		return "", nil, domain.ErrInvalidCredentials
	}

	_ = s.throttle.Reset(ctx, email, remoteIP)

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) recordFailure(ctx context.Context, email, ip, reason string) {
	metrics.AuthLoginFailuresTotal.WithLabelValues(reason).Inc()
	_ = s.throttle.RecordFailure(ctx, email, ip)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
