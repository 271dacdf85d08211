package serverutils

import (
	"strings"

	"tv-keuzehulp-be/internal/constant"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ParseToken validates an HS256 login token and returns its subject
func ParseToken(secret, tokenStr string) (string, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", false
	}
	return sub, true
}

// LoginGate protects routes behind the shared password. A session flagged as
// authenticated or a valid Bearer token passes. HTML routes redirect to the
// login form, JSON routes get 401.
func LoginGate(enabled bool, secret string, html bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !enabled {
			return ctx.Next()
		}

		if sess := GetSession(ctx); sess != nil && sess.Authenticated {
			return ctx.Next()
		}

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if tokenStr, found := strings.CutPrefix(authHeader, "Bearer "); found {
			if _, ok := ParseToken(secret, tokenStr); ok {
				return ctx.Next()
			}
		}

		if html {
			return ctx.Redirect("/login", fiber.StatusFound)
		}
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorBody(constant.MsgUnauthorized))
	}
}
