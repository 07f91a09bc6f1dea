package initdata

import (
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

const (
	// Sample payload published with the platform documentation.
	sampleBotToken = "5768337691:AAH5YkoiEuPk8-FZa32hStHTqXiLPtAEhx8"
	sampleInitData = "query_id=AAHdF6IQAAAAAN0XohDhrOrc&user=%7B%22id%22%3A279058397%2C%22first_name%22%3A%22Vladislav%22%2C%22last_name%22%3A%22Kibenko%22%2C%22username%22%3A%22vdkfrost%22%2C%22language_code%22%3A%22ru%22%2C%22is_premium%22%3Atrue%7D&auth_date=1662771648&hash=c501b71e775f74ce10e377dea85a7ea24ecd640b223ea86dfe453e0eaed2e2b2"
	sampleHash     = "c501b71e775f74ce10e377dea85a7ea24ecd640b223ea86dfe453e0eaed2e2b2"

	testBotToken        = "12345:TEST_BOT_TOKEN"
	testThirdPartyToken = "67890:DELEGATED_TOKEN"
)

var testNow = time.Unix(1700000000, 0)

func fixedClock() Option {
	return WithClock(func() time.Time { return testNow })
}

// encodeQuery renders fields in the given order, escaping values only.
func encodeQuery(fields ...Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+"="+url.QueryEscape(f.Value))
	}
	return strings.Join(parts, "&")
}

// signedQuery appends the hash a given secret produces for fields.
func signedQuery(t *testing.T, secret []byte, fields ...Field) string {
	t.Helper()
	hash := hex.EncodeToString(computeHash(NewFieldSet(fields...), secret))
	return encodeQuery(fields...) + "&hash=" + hash
}

func authDateAt(ts time.Time) Field {
	return Field{Name: "auth_date", Value: strconv.FormatInt(ts.Unix(), 10)}
}

func mustParse(t *testing.T, raw string) FieldSet {
	t.Helper()
	fs, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return fs
}

func escape(s string) string { return url.QueryEscape(s) }
