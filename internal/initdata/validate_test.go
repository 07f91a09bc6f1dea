package initdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Scenario(t *testing.T) {
	raw := signedQuery(t, standardSecret(testBotToken),
		Field{Name: "auth_date", Value: "1662771648"},
		Field{Name: "query_id", Value: "AAH"},
		Field{Name: "user", Value: `{"id":1,"first_name":"A"}`},
	)

	data, err := Validate(raw, testBotToken, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1662771648), data.AuthDate.Unix())
	assert.Equal(t, "AAH", data.QueryID)
	assert.Equal(t, &User{ID: 1, FirstName: "A"}, data.User)
}

func TestValidate_FlippedHash(t *testing.T) {
	raw := signedQuery(t, standardSecret(testBotToken),
		Field{Name: "auth_date", Value: "1662771648"},
		Field{Name: "query_id", Value: "AAH"},
	)
	last := raw[len(raw)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}

	_, err := Validate(raw[:len(raw)-1]+string(flipped), testBotToken, 0)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidate_UserNotJSON(t *testing.T) {
	raw := signedQuery(t, standardSecret(testBotToken),
		Field{Name: "auth_date", Value: "1662771648"},
		Field{Name: "user", Value: "not-json"},
	)

	data, err := Validate(raw, testBotToken, 0)
	assert.Nil(t, data)
	requireFieldError(t, err, ErrInvalidJSON, "user", "")
}

func TestValidate_SampleVector(t *testing.T) {
	data, err := Validate(sampleInitData, sampleBotToken, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(279058397), data.User.ID)

	// the sample is years old
	_, err = Validate(sampleInitData, sampleBotToken, DefaultMaxAge)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidate_ParseErrors(t *testing.T) {
	_, err := Validate("", testBotToken, 0)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = Validate("invalid_format", testBotToken, 0)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = Validate("query_id=test123%26hash%3Dabc", testBotToken, 0)
	assert.ErrorIs(t, err, ErrMissingHash)
}

func TestValidateThirdParty(t *testing.T) {
	raw := signedQuery(t, thirdPartySecret(testBotToken, testThirdPartyToken),
		authDateAt(testNow),
		Field{Name: "user", Value: `{"id":7,"first_name":"Del"}`},
	)

	data, err := ValidateThirdParty(raw, testBotToken, testThirdPartyToken, time.Hour, fixedClock())
	require.NoError(t, err)
	assert.Equal(t, int64(7), data.User.ID)

	_, err = Validate(raw, testBotToken, 0)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseUnverified(t *testing.T) {
	data, err := ParseUnverified(sampleInitData + "&start_param=abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", data.StartParam)

	_, err = ParseUnverified("")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}
