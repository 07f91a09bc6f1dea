package handlers

import (
	"net/http"

	"telegram_initdata/internal/logger"

	"github.com/gin-gonic/gin"
)

// MaxInitDataLen bounds the payload accepted from clients.
const MaxInitDataLen = 4096

type AuthRequest struct {
	InitData string `json:"init_data"`
}

func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if len(req.InitData) > MaxInitDataLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "init_data too long"})
		return
	}

	sess, err := h.Login.Login(c.Request.Context(), req.InitData)
	if err != nil {
		status, _ := StatusFor(err)
		if status == http.StatusInternalServerError {
			logger.WithContext(c.Request.Context()).Error("login failed", "error", err)
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"auth_date":  sess.InitData.AuthDate.Unix(),
		"user":       sess.User,
	})
}
