package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// Me returns the session of the bearer token and, when persistence is on,
// the stored user.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	tgID, _ := claims.TgID()

	resp := gin.H{
		"tg_id":     tgID,
		"query_id":  claims.QueryID,
		"auth_date": claims.AuthDate,
	}
	if claims.ExpiresAt != nil {
		resp["expires_at"] = claims.ExpiresAt.Time
	}

	if h.Users != nil {
		user, err := h.Users.GetByTgID(c.Request.Context(), tgID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		resp["user"] = user
	}

	c.JSON(http.StatusOK, resp)
}

// InitData echoes the init data verified by the InitData middleware.
func (h *Handler) InitData(c *gin.Context) {
	data, ok := getInitData(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, data)
}
