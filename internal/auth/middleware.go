package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/telecel/helpdesk/internal/domain"
)

const principalKey = "auth_principal"

// Principal identifies the caller as claimed by a bearer token.
type Principal struct {
	UserID   string
	Username string
	Role     domain.UserRole
}

// Middleware resolves an optional bearer token into a request principal.
// It never rejects: the API keeps the original application's open
// endpoints, and the principal only feeds request logging.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle attaches a principal when a valid bearer token is present.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return c.Next()
	}

	c.Locals(principalKey, &Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
