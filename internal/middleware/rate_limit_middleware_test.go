package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taployalty/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newMiddlewareTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	require.NoError(t, err)
	log.SetOutput(io.Discard)
	return log
}

type fakeCounter struct {
	counts      map[string]int64
	expires     map[string]time.Duration
	incrErr     error
	expireErr   error
	expireCalls int
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{
		counts:  make(map[string]int64),
		expires: make(map[string]time.Duration),
	}
}

func (f *fakeCounter) Increment(_ context.Context, key string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounter) SetExpire(_ context.Context, key string, expiration time.Duration) error {
	f.expireCalls++
	if f.expireErr != nil {
		return f.expireErr
	}
	f.expires[key] = expiration
	return nil
}

func rateLimitedRouter(counter RateLimitCounter, limit int, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RateLimitMiddleware(counter, limit, log))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func doRequest(router *gin.Engine) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/ping", nil)
	request.RemoteAddr = "203.0.113.7:1234"
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRateLimitAllowsUnderTheLimit(t *testing.T) {
	counter := newFakeCounter()
	router := rateLimitedRouter(counter, 3, newMiddlewareTestLogger(t))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router).Code)
	}
}

func TestRateLimitBlocksOverTheLimit(t *testing.T) {
	counter := newFakeCounter()
	router := rateLimitedRouter(counter, 2, newMiddlewareTestLogger(t))

	assert.Equal(t, http.StatusOK, doRequest(router).Code)
	assert.Equal(t, http.StatusOK, doRequest(router).Code)

	blocked := doRequest(router)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Contains(t, blocked.Body.String(), "RATE_LIMITED")
}

func TestRateLimitWindowStartsWithFirstRequest(t *testing.T) {
	counter := newFakeCounter()
	router := rateLimitedRouter(counter, 5, newMiddlewareTestLogger(t))

	doRequest(router)
	doRequest(router)
	doRequest(router)

	assert.Equal(t, 1, counter.expireCalls, "the TTL is set once, when the counter key is created")
	assert.Equal(t, time.Minute, counter.expires["rate_limit:203.0.113.7"])
}

func TestRateLimitFailsOpenOnCounterErrors(t *testing.T) {
	counter := newFakeCounter()
	counter.incrErr = errors.New("connection refused")
	router := rateLimitedRouter(counter, 1, newMiddlewareTestLogger(t))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router).Code,
			"requests pass when the counter is unreachable")
	}
}

func TestRateLimitDefaultsNonPositiveLimit(t *testing.T) {
	counter := newFakeCounter()
	router := rateLimitedRouter(counter, 0, newMiddlewareTestLogger(t))

	// The default limit applies; well under it, everything passes.
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router).Code)
	}
}
