package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter"

	"agoranet.io/agora/lib/common"
)

func TestRateLimitMiddleware(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  2,
	})

	router := mux.NewRouter()
	router.Use(RateLimitMiddleware(rule))
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	for i := 0; i < 2; i++ {
		resp, err := http.Get(ts.URL)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)
	}

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 429, resp.StatusCode)
}

func TestRateLimitMiddlewareExemptIP(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  1,
	})
	rule.ByIPAddress["127.0.0.1"] = limiter.Rate{}

	router := mux.NewRouter()
	router.Use(RateLimitMiddleware(rule))
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	for i := 0; i < 5; i++ {
		resp, err := http.Get(ts.URL)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)
	}
}
