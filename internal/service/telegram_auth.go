package service

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"time"

	"telegram_initdata/internal/config"
	"telegram_initdata/internal/initdata"
	"telegram_initdata/internal/logger"
)

// Authenticator verifies init data with the scheme and credentials it was
// built with. It keeps the tokens, never derived secrets.
type Authenticator struct {
	scheme          config.Scheme
	botToken        string
	thirdPartyToken string
	botID           int64
	publicKey       ed25519.PublicKey
	maxAge          time.Duration
	opts            []initdata.Option
}

func NewAuthenticator(cfg *config.Config, opts ...initdata.Option) *Authenticator {
	return &Authenticator{
		scheme:          cfg.Scheme,
		botToken:        cfg.BotToken,
		thirdPartyToken: cfg.ThirdPartyToken,
		botID:           cfg.BotID,
		publicKey:       initdata.PublicKeyFor(cfg.TestEnvironment),
		maxAge:          cfg.MaxAge,
		opts:            opts,
	}
}

func (a *Authenticator) Scheme() config.Scheme { return a.scheme }

// Authenticate parses, verifies and decodes raw init data.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (*initdata.InitData, error) {
	start := time.Now()
	data, err := a.validate(raw)
	ValidationDuration.WithLabelValues(string(a.scheme)).Observe(time.Since(start).Seconds())

	kind := initdata.Kind(err)
	ValidationsTotal.WithLabelValues(string(a.scheme), kind).Inc()

	log := logger.WithContext(ctx).With("scheme", a.scheme)
	if err != nil {
		log.Warn("init data rejected", "reason", kind)
		return nil, err
	}

	if data.User != nil {
		log = log.With("tg_id", data.User.ID)
	}
	log.Debug("init data accepted", "auth_date", data.AuthDate.Unix())
	return data, nil
}

func (a *Authenticator) validate(raw string) (*initdata.InitData, error) {
	switch a.scheme {
	case config.SchemeStandard:
		return initdata.Validate(raw, a.botToken, a.maxAge, a.opts...)
	case config.SchemeThirdParty:
		return initdata.ValidateThirdParty(raw, a.botToken, a.thirdPartyToken, a.maxAge, a.opts...)
	case config.SchemeSignature:
		return initdata.ValidateSignature(raw, a.botID, a.publicKey, a.maxAge, a.opts...)
	default:
		return nil, fmt.Errorf("unsupported init data scheme %q", a.scheme)
	}
}
