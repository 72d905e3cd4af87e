package middleware

import (
	"strings"

	"resume-coach/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
)

// IdentityMiddleware reads the caller identity issued by the external auth
// provider. It never rejects a request: a missing or bad token just leaves
// the caller anonymous.
type IdentityMiddleware struct {
	verifier jwt.Verifier
}

func NewIdentityMiddleware(verifier jwt.Verifier) *IdentityMiddleware {
	return &IdentityMiddleware{verifier: verifier}
}

func (m *IdentityMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.verifier == nil {
			return c.Next()
		}
		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}
		claims, err := m.verifier.Verify(token)
		if err != nil {
			return c.Next()
		}
		c.Locals(CtxUserIDKey, claims.Subject)
		c.Locals(CtxEmailKey, claims.Email)
		return c.Next()
	}
}

// UserID returns the caller id set by IdentityMiddleware, or "".
func UserID(c fiber.Ctx) string {
	id, _ := c.Locals(CtxUserIDKey).(string)
	return id
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
