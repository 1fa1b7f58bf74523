package api

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

// IssueAccessToken exchanges the owner passphrase for an API or feed token.
func (handler *Handler) IssueAccessToken(c *fiber.Ctx) error {
	now := handler.now()
	key := clientKey(c)
	if wait := handler.tokenLimiter.retryAfter(key, now); wait > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts")
	}

	payload := accessTokenPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := handler.access.IssueToken(payload.Passphrase, payload.Scope, now)
	switch {
	case err == nil:
		handler.tokenLimiter.reset(key)
		return c.Status(fiber.StatusCreated).JSON(token)
	case errors.Is(err, services.ErrAccessPassphraseInvalid):
		handler.tokenLimiter.fail(key, now)
		return unauthorized(c)
	case errors.Is(err, services.ErrAccessScopeInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid scope")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
}
