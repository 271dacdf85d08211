package serverutils

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/internal/repository/contract"
	"tv-keuzehulp-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "keuzehulp_session"
	sessionLocalsKey  = "session"
)

// CookieKey derives a 32-byte base64 key for encryptcookie from the session secret
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// SessionMiddleware loads the session named by the cookie or starts a new one.
// Handlers persist changes themselves through the repository.
func SessionMiddleware(repo contract.SessionRepository, ttl time.Duration, secure bool, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Cookies(SessionCookieName)

		var sess *store.Session
		if id != "" {
			found, ok, err := repo.Get(ctx.UserContext(), id)
			if err != nil {
				log.Warn(constant.ModuleSession, "session lookup failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
			if ok {
				sess = found
			}
		}

		if sess == nil {
			sess = store.NewSession(uuid.NewString())
			ctx.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    sess.ID,
				Path:     "/",
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(ttl),
			})
		}

		ctx.Locals(sessionLocalsKey, sess)
		return ctx.Next()
	}
}

// GetSession returns the request session set by SessionMiddleware
func GetSession(ctx *fiber.Ctx) *store.Session {
	if sess, ok := ctx.Locals(sessionLocalsKey).(*store.Session); ok {
		return sess
	}
	return nil
}
