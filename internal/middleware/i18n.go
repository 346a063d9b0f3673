// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-manager/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", ParseLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// ParseLanguage maps an Accept-Language header to a supported locale,
// e.g. "pt-BR,pt;q=0.9,en;q=0.8" to "pt_BR".
func ParseLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLanguage()
	}

	langs := strings.Split(header, ",")
	first := strings.TrimSpace(strings.Split(langs[0], ";")[0])
	switch strings.ToLower(first) {
	case "pt", "pt-br", "pt_br", "pt-pt":
		return "pt_BR"
	case "en", "en-us", "en-gb":
		return "en"
	default:
		return i18n.DefaultLanguage()
	}
}
