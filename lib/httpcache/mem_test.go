package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var _ Adapter = (*MemCacheAdapter)(nil)
var _ Adapter = (*RedisCacheAdapter)(nil)

func TestMemCacheAdapter(t *testing.T) {
	a := NewMemCacheAdapter(10)
	now := time.Now()

	key := "key"
	resp := &Response{
		Value:      []byte("hello"),
		Expiration: now,
	}

	a.Set(key, resp, now)

	cachedResp, ok := a.Get(key)
	require.Equal(t, true, ok)
	require.Equal(t, resp, cachedResp)
}

func TestMemCacheAdapterEviction(t *testing.T) {
	a := NewMemCacheAdapter(2)

	a.Set("a", &Response{Value: []byte("a")}, time.Time{})
	a.Set("b", &Response{Value: []byte("b")}, time.Time{})
	a.Set("c", &Response{Value: []byte("c")}, time.Time{})

	_, ok := a.Get("a")
	require.False(t, ok)

	cachedResp, ok := a.Get("c")
	require.True(t, ok)
	require.Equal(t, []byte("c"), cachedResp.Value)
}

func TestMemCacheAdapterRemove(t *testing.T) {
	a := NewMemCacheAdapter(10)

	a.Set("key", &Response{Value: []byte("hello")}, time.Time{})
	a.Remove("key")

	_, ok := a.Get("key")
	require.False(t, ok)
}
