package handlers

import (
	"errors"
	"net/http"

	"telegram_initdata/internal/initdata"
	"telegram_initdata/internal/service"

	"github.com/gin-gonic/gin"
)

// StatusFor maps a login or validation error to an HTTP status and a public
// message. Internal causes are never echoed back.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, initdata.ErrEmptyToken):
		return http.StatusInternalServerError, "internal error"
	case initdata.IsTrustError(err):
		return http.StatusUnauthorized, "invalid or stale telegram data"
	case errors.Is(err, initdata.ErrEmptyPayload), errors.Is(err, initdata.ErrMalformedField):
		return http.StatusBadRequest, "malformed init data"
	case errors.Is(err, service.ErrNoUser):
		return http.StatusBadRequest, "init data has no user"
	case initdata.Kind(err) != "internal":
		return http.StatusBadRequest, "invalid init data"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// AbortWithError writes the mapped error; trust failures carry their kind
// so clients can tell an expired payload from a forged one.
func AbortWithError(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	body := gin.H{"error": msg}
	if status != http.StatusInternalServerError {
		body["reason"] = initdata.Kind(err)
	}
	c.AbortWithStatusJSON(status, body)
}
