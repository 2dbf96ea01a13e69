package httpcache

import (
	"errors"
)

const (
	MemoryAdapterName = "mem"
	RedisAdapterName  = "redis"
)

// DefaultPoolSize bounds the lru adapter when no size is configured.
const DefaultPoolSize = 10000

func NewAdapter(name string, poolSize int, redisAddrs map[string]string) (Adapter, error) {
	switch name {
	case MemoryAdapterName:
		if poolSize < 1 {
			poolSize = DefaultPoolSize
		}
		return NewMemCacheAdapter(poolSize), nil
	case RedisAdapterName:
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: redisAddrs}), nil
	default:
		return nil, errors.New("adapter not found")
	}
}
