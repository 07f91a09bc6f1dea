package initdata

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"time"
)

// Ed25519 keys the platform publishes for third-party validation.
const (
	ProductionPublicKeyHex = "e7bf03a2fa4602af4580703d88dda5bb59f32ed8b02a56c187fe7d34caed242d"
	TestPublicKeyHex       = "40055058a4ee38156a06562e52eece92a771bcd8346a8c4615cb7376eddf72ec"
)

var (
	ProductionPublicKey = mustPublicKey(ProductionPublicKeyHex)
	TestPublicKey       = mustPublicKey(TestPublicKeyHex)
)

func mustPublicKey(s string) ed25519.PublicKey {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != ed25519.PublicKeySize {
		panic("initdata: bad public key " + s)
	}
	return ed25519.PublicKey(b)
}

// PublicKeyFor returns the platform key for the test or production environment.
func PublicKeyFor(testEnvironment bool) ed25519.PublicKey {
	if testEnvironment {
		return TestPublicKey
	}
	return ProductionPublicKey
}

// VerifySignature checks the Ed25519 signature field, which lets a party
// holding only the bot id validate init data without the bot token.
// The signed message is "<botID>:WebAppData\n" followed by the data-check
// string without hash and signature.
func VerifySignature(fields FieldSet, botID int64, publicKey ed25519.PublicKey, maxAge time.Duration, opts ...Option) error {
	if err := requireTrustFields(fields, signatureField); err != nil {
		return err
	}
	if len(publicKey) != ed25519.PublicKeySize {
		return ErrInvalidSignature
	}

	raw, _ := fields.Get(signatureField)
	sig, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}

	if !ed25519.Verify(publicKey, signatureMessage(fields, botID), sig) {
		return ErrInvalidSignature
	}
	return checkAge(fields, maxAge, buildOptions(opts))
}

func signatureMessage(fields FieldSet, botID int64) []byte {
	prefix := strconv.FormatInt(botID, 10) + ":" + webAppDataKey + "\n"
	return []byte(prefix + dataCheckString(fields, hashField, signatureField))
}
