package service

import (
	"context"
	"testing"
	"time"

	"tv-keuzehulp-be/internal/apperror"
	"tv-keuzehulp-be/internal/dto"
	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/internal/pkg/metrics"
	"tv-keuzehulp-be/internal/repository/memory"
	"tv-keuzehulp-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T, password string) (IAuthService, *memory.SessionRepository) {
	t.Helper()
	repo := memory.NewSessionRepository(time.Hour)
	svc, err := NewAuthService(password, "test-secret", time.Hour, repo, nil, metrics.NewMetrics(), logger.NewNopLogger())
	require.NoError(t, err)
	return svc, repo
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newAuth(t, "geheim")
	sess := store.NewSession("s1")

	_, err := svc.Login(context.Background(), sess, &dto.PasswordLoginRequest{Password: "fout"})

	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	assert.False(t, sess.Authenticated)
	_, ok, _ := repo.Get(context.Background(), "s1")
	assert.False(t, ok)
}

func TestLoginIssuesToken(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAuth(t, "geheim")
	require.True(t, svc.Enabled())
	sess := store.NewSession("s1")

	res, err := svc.Login(ctx, sess, &dto.PasswordLoginRequest{Password: "geheim"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	stored, ok, _ := repo.Get(ctx, "s1")
	require.True(t, ok)
	assert.True(t, stored.Authenticated)

	token, err := jwt.ParseWithClaims(res.Token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	sub, _ := token.Claims.GetSubject()
	assert.Equal(t, "s1", sub)
}

func TestLoginDisabledAcceptsAnything(t *testing.T) {
	svc, _ := newAuth(t, "")
	assert.False(t, svc.Enabled())

	_, err := svc.Login(context.Background(), store.NewSession("s1"), &dto.PasswordLoginRequest{Password: "x"})
	assert.NoError(t, err)
}

func TestLogoutDeletesSession(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAuth(t, "geheim")
	sess := store.NewSession("s1")
	require.NoError(t, repo.Save(ctx, sess))

	require.NoError(t, svc.Logout(ctx, sess))
	_, ok, _ := repo.Get(ctx, "s1")
	assert.False(t, ok)
}
