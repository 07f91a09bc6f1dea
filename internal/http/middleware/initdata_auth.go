package middleware

import (
	"net/http"
	"strings"

	"telegram_initdata/internal/http/handlers"
	"telegram_initdata/internal/service"

	"github.com/gin-gonic/gin"
)

// InitData authenticates each request by the raw init data in
// "Authorization: tma <init data>", the scheme mini app clients send.
func InitData(auth *service.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "tma ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing init data"})
			return
		}
		if len(raw) > handlers.MaxInitDataLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "init_data too long"})
			return
		}

		data, err := auth.Authenticate(c.Request.Context(), raw)
		if err != nil {
			handlers.AbortWithError(c, err)
			return
		}

		c.Set(handlers.CtxInitData, data)
		if data.User != nil {
			c.Set(ctxTgID, data.User.ID)
		}
		c.Next()
	}
}
