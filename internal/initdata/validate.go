// Package initdata verifies and decodes the init data a Telegram Mini App
// receives from its host.
//
// Parsing, verification and decoding are separate steps so callers can
// verify once and decode later. Validate and its variants run all three.
// Every function takes its credentials explicitly; nothing is cached
// between calls, so all of them are safe for concurrent use.
package initdata

import (
	"crypto/ed25519"
	"time"
)

// Validate parses raw, verifies it with a secret derived from botToken and
// decodes it.
func Validate(raw, botToken string, maxAge time.Duration, opts ...Option) (*InitData, error) {
	fields, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := VerifyStandard(fields, botToken, maxAge, opts...); err != nil {
		return nil, err
	}
	return Decode(fields)
}

// ValidateThirdParty is Validate for payloads signed with a delegated token.
func ValidateThirdParty(raw, botToken, thirdPartyToken string, maxAge time.Duration, opts ...Option) (*InitData, error) {
	fields, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := VerifyThirdParty(fields, botToken, thirdPartyToken, maxAge, opts...); err != nil {
		return nil, err
	}
	return Decode(fields)
}

// ValidateSignature is Validate for the Ed25519 signature field, needing only
// the bot id and the platform public key.
func ValidateSignature(raw string, botID int64, publicKey ed25519.PublicKey, maxAge time.Duration, opts ...Option) (*InitData, error) {
	fields, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := VerifySignature(fields, botID, publicKey, maxAge, opts...); err != nil {
		return nil, err
	}
	return Decode(fields)
}

// ParseUnverified decodes raw without checking its origin. The result must
// not be used for trust decisions.
func ParseUnverified(raw string) (*InitData, error) {
	fields, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return Decode(fields)
}
