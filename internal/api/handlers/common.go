package handlers

import (
	"Ginraidee/domain"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// languageOf reads ?lang= first, then the Accept-Language header.
func languageOf(c *fiber.Ctx) domain.Language {
	if lang := c.Query("lang"); lang != "" {
		return domain.ParseLanguage(lang)
	}
	accept := c.Get(fiber.HeaderAcceptLanguage)
	if strings.HasPrefix(strings.ToLower(accept), "th") {
		return domain.LanguageThai
	}
	return domain.LanguageEnglish
}
