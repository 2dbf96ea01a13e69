package common

import (
	"time"

	"github.com/ulule/limiter"
)

// RateLimitAPI is the default limit for the http API.
var RateLimitAPI limiter.Rate = limiter.Rate{
	Period: 1 * time.Minute,
	Limit:  100,
}

// RateLimitRule is the default rate plus per-ip overrides. An override
// with Limit 0 exempts that ip.
type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}
