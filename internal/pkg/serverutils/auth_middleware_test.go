package serverutils

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/internal/repository/memory"
	"tv-keuzehulp-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestParseToken(t *testing.T) {
	sub, ok := ParseToken(testSecret, signToken(t, jwt.SigningMethodHS256, testSecret, "sess-1", time.Hour))
	assert.True(t, ok)
	assert.Equal(t, "sess-1", sub)

	_, ok = ParseToken(testSecret, signToken(t, jwt.SigningMethodHS256, "other", "sess-1", time.Hour))
	assert.False(t, ok, "wrong secret")

	_, ok = ParseToken(testSecret, signToken(t, jwt.SigningMethodHS512, testSecret, "sess-1", time.Hour))
	assert.False(t, ok, "only HS256 is accepted")

	_, ok = ParseToken(testSecret, signToken(t, jwt.SigningMethodHS256, testSecret, "sess-1", -time.Minute))
	assert.False(t, ok, "expired")

	_, ok = ParseToken(testSecret, "not-a-token")
	assert.False(t, ok)
}

func gatedApp(repo *memory.SessionRepository, enabled, html bool) *fiber.App {
	app := fiber.New()
	app.Use(SessionMiddleware(repo, time.Hour, false, logger.NewNopLogger()))
	app.Get("/private", LoginGate(enabled, testSecret, html), func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	return app
}

func TestLoginGate(t *testing.T) {
	repo := memory.NewSessionRepository(time.Hour)

	authed := store.NewSession("authed")
	authed.Authenticated = true
	require.NoError(t, repo.Save(context.Background(), authed))

	tests := []struct {
		name     string
		enabled  bool
		html     bool
		cookie   string
		bearer   string
		status   int
		location string
	}{
		{name: "gate disabled", status: fiber.StatusOK},
		{name: "json without credentials", enabled: true, status: fiber.StatusUnauthorized},
		{name: "html redirects to login", enabled: true, html: true, status: fiber.StatusFound, location: "/login"},
		{name: "authenticated session", enabled: true, cookie: "authed", status: fiber.StatusOK},
		{name: "bearer token", enabled: true, bearer: signToken(t, jwt.SigningMethodHS256, testSecret, "x", time.Hour), status: fiber.StatusOK},
		{name: "bad bearer token", enabled: true, bearer: "garbage", status: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := gatedApp(repo, tt.enabled, tt.html)
			req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", SessionCookieName+"="+tt.cookie)
			}
			if tt.bearer != "" {
				req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tt.bearer)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.location != "" {
				assert.Equal(t, tt.location, resp.Header.Get(fiber.HeaderLocation))
			}
		})
	}
}
