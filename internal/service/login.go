package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"telegram_initdata/internal/domain"
	"telegram_initdata/internal/initdata"
	"telegram_initdata/internal/logger"
)

var ErrNoUser = errors.New("init data carries no user")

type UserStore interface {
	Upsert(ctx context.Context, u *domain.User) error
}

type Session struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      *domain.User       `json:"user"`
	InitData  *initdata.InitData `json:"-"`
}

// LoginService exchanges init data for a session token.
type LoginService struct {
	auth   *Authenticator
	users  UserStore
	tokens *TokenIssuer
}

// NewLoginService wires the login flow. users may be nil, in which case
// nothing is persisted.
func NewLoginService(auth *Authenticator, users UserStore, tokens *TokenIssuer) *LoginService {
	return &LoginService{auth: auth, users: users, tokens: tokens}
}

func (s *LoginService) Login(ctx context.Context, raw string) (*Session, error) {
	data, err := s.auth.Authenticate(ctx, raw)
	if err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, ErrNoUser
	}

	user := domain.UserFromInitData(data.User, data.AuthDate)
	if s.users != nil {
		if err := s.users.Upsert(ctx, user); err != nil {
			return nil, fmt.Errorf("store user: %w", err)
		}
	}

	token, exp, err := s.tokens.Issue(user.TgID, data)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("session issued", "tg_id", user.TgID, "expires_at", exp)
	return &Session{Token: token, ExpiresAt: exp, User: user, InitData: data}, nil
}
