package api

import (
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"agoranet.io/agora/lib/common"
)

// RateLimitMiddleware limits requests by client ip. Overrides in the
// rule get their own limiter, an override with Limit 0 passes through.
func RateLimitMiddleware(rule common.RateLimitRule) mux.MiddlewareFunc {
	defaultMiddleware := stdlib.NewMiddleware(
		limiter.New(memory.NewStore(), rule.Default),
	)

	byIPAddress := map[string]*stdlib.Middleware{}
	for ip, rate := range rule.ByIPAddress {
		if rate.Limit < 1 {
			byIPAddress[ip] = nil
			continue
		}
		byIPAddress[ip] = stdlib.NewMiddleware(
			limiter.New(memory.NewStore(), rate),
		)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			middleware := defaultMiddleware
			if m, found := byIPAddress[ip]; found {
				if m == nil {
					next.ServeHTTP(w, r)
					return
				}
				middleware = m
			}

			middleware.Handler(next).ServeHTTP(w, r)
		})
	}
}
