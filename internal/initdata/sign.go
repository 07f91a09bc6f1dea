package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

const (
	hashField      = "hash"
	signatureField = "signature"
	authDateField  = "auth_date"

	webAppDataKey = "WebAppData"
)

// DataCheckString renders every field except hash as name=value, sorted by
// name byte-wise and joined with "\n". Values are used exactly as decoded.
func DataCheckString(fields FieldSet) string {
	return dataCheckString(fields, hashField)
}

func dataCheckString(fields FieldSet, exclude ...string) string {
	names := make([]string, 0, fields.Len())
	for name := range fields.All() {
		if slices.Contains(exclude, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		v, _ := fields.Get(name)
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}

func hmacSHA256(key, msg []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	return h.Sum(nil)
}

// standardSecret is HMAC-SHA256 keyed by "WebAppData" over the bot token.
func standardSecret(botToken string) []byte {
	return hmacSHA256([]byte(webAppDataKey), []byte(botToken))
}

// thirdPartySecret chains the standard secret as the key for the delegated token.
func thirdPartySecret(botToken, thirdPartyToken string) []byte {
	return hmacSHA256(standardSecret(botToken), []byte(thirdPartyToken))
}

func computeHash(fields FieldSet, secret []byte) []byte {
	return hmacSHA256(secret, []byte(DataCheckString(fields)))
}

// checkHash compares the supplied hash with the lowercase hex of the expected
// digest in constant time. Upper case hex is not the platform's encoding and
// does not verify.
func checkHash(fields FieldSet, secret []byte) error {
	supplied, _ := fields.Get(hashField)
	if len(supplied) != hex.EncodedLen(sha256.Size) {
		return ErrInvalidSignature
	}
	expected := hex.EncodeToString(computeHash(fields, secret))
	if !hmac.Equal([]byte(expected), []byte(supplied)) {
		return ErrInvalidSignature
	}
	return nil
}
