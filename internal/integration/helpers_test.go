package integration

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"os"
	"sort"
	"strings"
	"testing"

	"telegram_initdata/internal/db"
	"telegram_initdata/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// connect skips the test unless DATABASE_URL points at a scratch database.
func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := db.Connect(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Apply(context.Background(), pool, migrations.FS))
	return pool
}

func cleanupUser(t *testing.T, pool *pgxpool.Pool, tgID int64) {
	t.Helper()
	_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE tg_id = $1`, tgID)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE tg_id = $1`, tgID)
	})
}

func signInitData(botToken string, fields map[string]string) string {
	var parts []string
	vals := url.Values{}
	for k, v := range fields {
		parts = append(parts, k+"="+v)
		vals.Set(k, v)
	}
	sort.Strings(parts)

	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	mac = hmac.New(sha256.New, mac.Sum(nil))
	mac.Write([]byte(strings.Join(parts, "\n")))
	vals.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return vals.Encode()
}
