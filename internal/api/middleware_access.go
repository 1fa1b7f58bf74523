package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

const contextAccessClaimsKey = "access_claims"

// AccessRequired admits requests carrying an API-scoped bearer token.
func (handler *Handler) AccessRequired(c *fiber.Ctx) error {
	claims, err := handler.access.Authorize(bearerToken(c), handler.now(), services.AccessScopeAPI)
	if err != nil {
		return unauthorized(c)
	}
	c.Locals(contextAccessClaimsKey, claims)
	return c.Next()
}

// FeedAccessRequired lets calendar clients, which cannot send headers, pass a
// feed-scoped token as ?token=. A bearer API token is accepted too.
func (handler *Handler) FeedAccessRequired(c *fiber.Ctx) error {
	now := handler.now()
	if raw := strings.TrimSpace(c.Query("token")); raw != "" {
		claims, err := handler.access.Authorize(raw, now, services.AccessScopeFeed)
		if err != nil {
			return unauthorized(c)
		}
		c.Locals(contextAccessClaimsKey, claims)
		return c.Next()
	}
	return handler.AccessRequired(c)
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="bloom"`)
	return apiError(c, fiber.StatusUnauthorized, "unauthorized")
}
