package initdata

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// Payload signed by the production key for bot 7342037359.
	signedSampleInitData = "user=%7B%22id%22%3A279058397%2C%22first_name%22%3A%22Vladislav%20%2B%20-%20%3F%20%5C%2F%22%2C%22last_name%22%3A%22Kibenko%22%2C%22username%22%3A%22vdkfrost%22%2C%22language_code%22%3A%22ru%22%2C%22is_premium%22%3Atrue%2C%22allows_write_to_pm%22%3Atrue%2C%22photo_url%22%3A%22https%3A%5C%2F%5C%2Ft.me%5C%2Fi%5C%2Fuserpic%5C%2F320%5C%2F4FPEE4tmP3ATHa57u6MqTDih13LTOiMoKoLDRG4PnSA.svg%22%7D&chat_instance=8134722200314281151&chat_type=private&auth_date=1733584787&hash=2174df5b000556d044f3f020384e879c8efcab55ddea2ced4eb752e93e7080d6&signature=zL-ucjNyREiHDE8aihFwpfR9aggP2xiAo3NSpfe-p7IbCisNlDKlo7Kb6G4D0Ao2mBrSgEk4maLSdv6MLIlADQ"
	signedSampleBotID     = int64(7342037359)
	signedSampleSignature = "zL-ucjNyREiHDE8aihFwpfR9aggP2xiAo3NSpfe-p7IbCisNlDKlo7Kb6G4D0Ao2mBrSgEk4maLSdv6MLIlADQ"
)

func TestVerifySignature_SampleVector(t *testing.T) {
	fs := mustParse(t, signedSampleInitData)
	require.NoError(t, VerifySignature(fs, signedSampleBotID, ProductionPublicKey, 0))

	assert.ErrorIs(t, VerifySignature(fs, 1234567890, ProductionPublicKey, 0), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(fs, signedSampleBotID, TestPublicKey, 0), ErrInvalidSignature)
}

func TestVerifySignature_IgnoresHash(t *testing.T) {
	fs := mustParse(t, signedSampleInitData).With("hash", strings.Repeat("0", 64))
	assert.NoError(t, VerifySignature(fs, signedSampleBotID, ProductionPublicKey, 0))
}

func TestVerifySignature_Tampered(t *testing.T) {
	fs := mustParse(t, signedSampleInitData)

	tampered := fs.With("chat_type", "group")
	assert.ErrorIs(t, VerifySignature(tampered, signedSampleBotID, ProductionPublicKey, 0), ErrInvalidSignature)

	zeroed := fs.With("signature", base64.RawURLEncoding.EncodeToString(make([]byte, ed25519.SignatureSize)))
	assert.ErrorIs(t, VerifySignature(zeroed, signedSampleBotID, ProductionPublicKey, 0), ErrInvalidSignature)

	notBase64 := fs.With("signature", "!!!notbase64!!!")
	assert.ErrorIs(t, VerifySignature(notBase64, signedSampleBotID, ProductionPublicKey, 0), ErrInvalidSignature)

	short := fs.With("signature", "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	assert.ErrorIs(t, VerifySignature(short, signedSampleBotID, ProductionPublicKey, 0), ErrInvalidSignature)
}

func TestVerifySignature_MissingFields(t *testing.T) {
	fs := mustParse(t, signedSampleInitData)

	err := VerifySignature(fs.Without("signature"), signedSampleBotID, ProductionPublicKey, 0)
	assert.ErrorIs(t, err, ErrMissingSignature)

	err = VerifySignature(fs.Without("auth_date"), signedSampleBotID, ProductionPublicKey, 0)
	assert.ErrorIs(t, err, ErrMissingAuthDate)
}

func TestVerifySignature_Expired(t *testing.T) {
	fs := mustParse(t, signedSampleInitData)
	clock := WithClock(func() time.Time { return time.Unix(1733584787, 0).Add(25 * time.Hour) })

	assert.ErrorIs(t, VerifySignature(fs, signedSampleBotID, ProductionPublicKey, DefaultMaxAge, clock), ErrExpired)
}

func TestVerifySignature_GeneratedKey(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	fs := NewFieldSet(
		Field{Name: "query_id", Value: "q1"},
		authDateAt(testNow),
		Field{Name: "hash", Value: "ignored"},
	)
	sig := ed25519.Sign(priv, []byte("42:WebAppData\nauth_date=1700000000\nquery_id=q1"))
	fs = fs.With("signature", base64.RawURLEncoding.EncodeToString(sig))

	require.NoError(t, VerifySignature(fs, 42, pub, time.Minute, fixedClock()))
	assert.ErrorIs(t, VerifySignature(fs, 43, pub, 0), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(fs, 42, ed25519.PublicKey{1, 2, 3}, 0), ErrInvalidSignature)
}

func TestPublicKeyFor(t *testing.T) {
	assert.Equal(t, TestPublicKey, PublicKeyFor(true))
	assert.Equal(t, ProductionPublicKey, PublicKeyFor(false))
	assert.Len(t, ProductionPublicKey, ed25519.PublicKeySize)
}

func TestValidateSignature(t *testing.T) {
	data, err := ValidateSignature(signedSampleInitData, signedSampleBotID, ProductionPublicKey, 0)
	require.NoError(t, err)

	assert.Equal(t, signedSampleSignature, data.Signature)
	assert.Equal(t, ChatTypePrivate, data.ChatType)
	assert.Equal(t, "8134722200314281151", data.ChatInstance)
	require.NotNil(t, data.User)
	assert.Equal(t, `Vladislav + - ? /`, data.User.FirstName)
	assert.True(t, data.User.AllowsWriteToPm)
	assert.Equal(t, "https://t.me/i/userpic/320/4FPEE4tmP3ATHa57u6MqTDih13LTOiMoKoLDRG4PnSA.svg", data.User.PhotoURL)
}
