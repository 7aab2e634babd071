package middleware

import (
	"errors"

	"github.com/prasad217/Electric-Billing-system/internal/core/sessions"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie holding the opaque admin session token
const SessionCookieName = "session_token"

const principalKey = "principal"

// Principal is the authenticated identity resolved for one request.
// It replaces ambient mutable session state: handlers read a typed value
// from the request context instead of poking at the session directly.
type Principal struct {
	Role  string
	Email string
}

// AdminRequired resolves the session cookie into a Principal and rejects
// requests without a valid admin session.
func AdminRequired(store *sessions.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return response.Unauthorized(c, "Unauthorized")
		}

		sess, err := store.Get(c.Context(), token)
		if err != nil {
			if errors.Is(err, sessions.ErrSessionNotFound) {
				return response.Unauthorized(c, "Unauthorized")
			}
			return response.InternalServerError(c)
		}

		if sess.Role != sessions.RoleAdmin {
			return response.Unauthorized(c, "Unauthorized")
		}

		c.Locals(principalKey, &Principal{Role: sess.Role, Email: sess.Email})
		return c.Next()
	}
}

// PrincipalFrom returns the Principal resolved for this request, if any
func PrincipalFrom(c *fiber.Ctx) (*Principal, bool) {
	p, ok := c.Locals(principalKey).(*Principal)
	return p, ok
}
