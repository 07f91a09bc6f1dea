package initdata

import (
	"strconv"
	"time"
)

// DefaultMaxAge is the staleness window the platform documentation suggests.
const DefaultMaxAge = 24 * time.Hour

type options struct {
	now func() time.Time
}

// Option tunes a single verification call.
type Option func(*options)

// WithClock replaces time.Now for the staleness check.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// VerifyStandard checks fields against a secret derived from the bot token.
// maxAge <= 0 disables the staleness check. An empty token is ErrEmptyToken.
func VerifyStandard(fields FieldSet, botToken string, maxAge time.Duration, opts ...Option) error {
	if botToken == "" {
		return ErrEmptyToken
	}
	return verifyHMAC(fields, maxAge, opts, func() []byte {
		return standardSecret(botToken)
	})
}

// VerifyThirdParty checks fields issued on behalf of a delegated application:
// the standard secret of botToken keys a second derivation over
// thirdPartyToken.
func VerifyThirdParty(fields FieldSet, botToken, thirdPartyToken string, maxAge time.Duration, opts ...Option) error {
	if botToken == "" || thirdPartyToken == "" {
		return ErrEmptyToken
	}
	return verifyHMAC(fields, maxAge, opts, func() []byte {
		return thirdPartySecret(botToken, thirdPartyToken)
	})
}

func verifyHMAC(fields FieldSet, maxAge time.Duration, opts []Option, secret func() []byte) error {
	if err := requireTrustFields(fields, hashField); err != nil {
		return err
	}
	if err := checkHash(fields, secret()); err != nil {
		return err
	}
	return checkAge(fields, maxAge, buildOptions(opts))
}

func requireTrustFields(fields FieldSet, proof string) error {
	if _, ok := fields.Get(proof); !ok {
		if proof == signatureField {
			return ErrMissingSignature
		}
		return ErrMissingHash
	}
	if _, ok := fields.Get(authDateField); !ok {
		return ErrMissingAuthDate
	}
	return nil
}

func checkAge(fields FieldSet, maxAge time.Duration, o options) error {
	if maxAge <= 0 {
		return nil
	}

	raw, _ := fields.Get(authDateField)
	authDate, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fieldErr(ErrMalformedField, authDateField, err)
	}

	// now - auth_date > maxAge, in whole seconds, without overflowing on
	// extreme auth_date values.
	oldest := o.now().Unix() - int64(maxAge/time.Second)
	if authDate < oldest {
		return ErrExpired
	}
	return nil
}
