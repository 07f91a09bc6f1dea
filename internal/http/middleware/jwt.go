package middleware

import (
	"net/http"
	"strings"

	"telegram_initdata/internal/http/handlers"
	"telegram_initdata/internal/service"

	"github.com/gin-gonic/gin"
)

const ctxTgID = "tg_id"

// JWT requires a bearer session token issued by the auth endpoint.
func JWT(tokens *service.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		tgID, _ := claims.TgID()
		c.Set(handlers.CtxClaims, claims)
		c.Set(ctxTgID, tgID)
		c.Next()
	}
}
