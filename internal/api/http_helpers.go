package api

import "github.com/gofiber/fiber/v2"

const contextLanguageKey = "language"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// LanguageMiddleware picks the response language from ?lang= or Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if raw := c.Query("lang"); raw != "" {
		language = handler.i18n.NormalizeLanguage(raw)
	}
	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
