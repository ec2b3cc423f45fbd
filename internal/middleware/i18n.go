// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/purzasetu/sparehub-backend/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get language from header
		lang := c.GetHeader("Accept-Language")

		// Parse language preference
		if lang != "" {
			// Handle cases like "hi-IN,hi;q=0.9,en;q=0.8"
			langs := strings.Split(lang, ",")
			if len(langs) > 0 {
				firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])
				switch firstLang {
				case "hi", "hi-IN", "hi_IN":
					lang = i18n.LangHindi
				case "en", "en-US", "en-GB", "en-IN":
					lang = i18n.LangEnglish
				default:
					lang = i18n.DefaultLang
				}
			}
		} else {
			lang = i18n.DefaultLang
		}

		// Set language in context
		c.Set("lang", lang)
		c.Next()
	}
}
