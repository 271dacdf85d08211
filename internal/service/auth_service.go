package service

import (
	"context"
	"fmt"
	"time"

	"tv-keuzehulp-be/internal/apperror"
	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/internal/dto"
	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/internal/pkg/metrics"
	"tv-keuzehulp-be/internal/repository/contract"
	"tv-keuzehulp-be/pkg/events"
	"tv-keuzehulp-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "tv-keuzehulp"

type IAuthService interface {
	// Enabled reports whether a shared password is configured
	Enabled() bool
	Login(ctx context.Context, sess *store.Session, req *dto.PasswordLoginRequest) (*dto.PasswordLoginResponse, error)
	Logout(ctx context.Context, sess *store.Session) error
}

type authService struct {
	passwordHash []byte
	secret       []byte
	tokenTTL     time.Duration
	sessionRepo  contract.SessionRepository
	events       IEventService
	metrics      *metrics.Metrics
	logger       logger.ILogger
}

// NewAuthService hashes the shared password once at boot. An empty password
// disables the login gate.
func NewAuthService(
	password, secret string,
	tokenTTL time.Duration,
	sessionRepo contract.SessionRepository,
	events IEventService,
	m *metrics.Metrics,
	log logger.ILogger,
) (IAuthService, error) {
	s := &authService{
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		sessionRepo: sessionRepo,
		events:      events,
		metrics:     m,
		logger:      log,
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash shared password: %w", err)
		}
		s.passwordHash = hash
	}
	return s, nil
}

func (s *authService) Enabled() bool {
	return len(s.passwordHash) > 0
}

func (s *authService) Login(ctx context.Context, sess *store.Session, req *dto.PasswordLoginRequest) (*dto.PasswordLoginResponse, error) {
	if s.Enabled() {
		if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
			s.metrics.ObserveLogin(false)
			s.emit(ctx, events.TypeLoginFailed, map[string]interface{}{"session_id": sess.ID})
			return nil, apperror.Unauthorized(constant.MsgWrongPassword, err)
		}
	}

	sess.Authenticated = true
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		return nil, apperror.Internal(constant.MsgInternalError, err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperror.Internal(constant.MsgInternalError, err)
	}

	s.metrics.ObserveLogin(true)
	s.emit(ctx, events.TypeLoginSucceeded, map[string]interface{}{"session_id": sess.ID})
	s.logger.Info(constant.ModuleAuth, "shopper logged in", map[string]interface{}{"session_id": sess.ID})

	return &dto.PasswordLoginResponse{
		Token:     signed,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sess *store.Session) error {
	if err := s.sessionRepo.Delete(ctx, sess.ID); err != nil {
		return apperror.Internal(constant.MsgInternalError, err)
	}
	return nil
}

func (s *authService) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events != nil {
		s.events.Emit(ctx, eventType, data)
	}
}
