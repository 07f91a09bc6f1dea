package handlers

import (
	"context"

	"telegram_initdata/internal/domain"
	"telegram_initdata/internal/initdata"
	"telegram_initdata/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxClaims   = "claims"
	CtxInitData = "init_data"
)

type UserReader interface {
	GetByTgID(ctx context.Context, tgID int64) (*domain.User, error)
}

type Handler struct {
	Login *service.LoginService
	// Users is nil when the service runs without a database.
	Users UserReader
}

func NewHandler(login *service.LoginService, users UserReader) *Handler {
	return &Handler{Login: login, Users: users}
}

func getClaims(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}

func getInitData(c *gin.Context) (*initdata.InitData, bool) {
	v, ok := c.Get(CtxInitData)
	if !ok {
		return nil, false
	}
	data, ok := v.(*initdata.InitData)
	return data, ok
}
