package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"telegram_initdata/internal/config"
	"telegram_initdata/internal/http/handlers"
	"telegram_initdata/internal/initdata"
	"telegram_initdata/internal/logger"
	"telegram_initdata/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botToken = "middleware-bot-token"

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(fields map[string]string) string {
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

func perform(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSimpleRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/x", SimpleRateLimit("test", 2, time.Minute, ClientIPKey), func(c *gin.Context) { c.Status(200) })

	assert.Equal(t, 200, perform(r, "GET", "/x", nil).Code)
	assert.Equal(t, 200, perform(r, "GET", "/x", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, "GET", "/x", nil).Code)
}

func TestSimpleRateLimit_EmptyKeySkips(t *testing.T) {
	r := gin.New()
	r.GET("/x", SimpleRateLimit("test", 1, time.Minute, TgIDKey), func(c *gin.Context) { c.Status(200) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, perform(r, "GET", "/x", nil).Code)
	}
}

func TestJWT(t *testing.T) {
	tokens := service.NewTokenIssuer("secret", time.Hour)
	r := gin.New()
	r.GET("/me", JWT(tokens), func(c *gin.Context) {
		claims := c.MustGet(handlers.CtxClaims).(*service.Claims)
		c.JSON(200, gin.H{"sub": claims.Subject, "tg_id": c.GetInt64(ctxTgID)})
	})

	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/me", http.Header{"Authorization": {"Bearer nope"}}).Code)

	token, _, err := tokens.Issue(77, &initdata.InitData{AuthDate: time.Now()})
	require.NoError(t, err)
	w := perform(r, "GET", "/me", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"sub":"77","tg_id":77}`, w.Body.String())
}

func TestInitData(t *testing.T) {
	auth := service.NewAuthenticator(&config.Config{
		Scheme:   config.SchemeStandard,
		BotToken: botToken,
		MaxAge:   time.Hour,
	})
	r := gin.New()
	r.GET("/init", InitData(auth), func(c *gin.Context) {
		data := c.MustGet(handlers.CtxInitData).(*initdata.InitData)
		c.JSON(200, gin.H{"id": data.User.ID, "tg_id": c.GetInt64(ctxTgID)})
	})

	raw := signed(map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":9,"first_name":"N"}`,
	})

	w := perform(r, "GET", "/init", http.Header{"Authorization": {"tma " + raw}})
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":9,"tg_id":9}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/init", nil).Code)

	w = perform(r, "GET", "/init", http.Header{"Authorization": {"tma " + raw + "&extra=1"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"reason":"invalid_signature"`)

	w = perform(r, "GET", "/init", http.Header{"Authorization": {"tma " + strings.Repeat("a", handlers.MaxInitDataLen+1)}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestID(t *testing.T) {
	var seen context.Context
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		seen = c.Request.Context()
		c.Status(200)
	})

	w := perform(r, "GET", "/x", nil)
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotSame(t, logger.Get(), logger.WithContext(seen))

	given := uuid.NewString()
	w = perform(r, "GET", "/x", http.Header{RequestIDHeader: {given}})
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))

	w = perform(r, "GET", "/x", http.Header{RequestIDHeader: {"not-a-uuid"}})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://app.example"))
	r.GET("/x", func(c *gin.Context) { c.Status(200) })

	w := perform(r, "GET", "/x", http.Header{"Origin": {"https://app.example"}})
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, "GET", "/x", http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, "OPTIONS", "/x", http.Header{"Origin": {"https://app.example"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
}
