package storage

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/errors"
)

func TestLevelDBBackendNewGetSet(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	type record struct {
		Name  string `json:"name"`
		Count uint64 `json:"count"`
	}

	input := record{Name: "findme", Count: 10}
	require.NoError(t, st.New("r-0", input))

	var fetched record
	require.NoError(t, st.Get("r-0", &fetched))
	require.Equal(t, input, fetched)

	// create-only: a second New for the same key must fail
	err := st.New("r-0", record{Name: "findme", Count: 99})
	require.Equal(t, errors.StorageRecordAlreadyExists, err)

	// Set requires the key to exist
	err = st.Set("r-1", input)
	require.Equal(t, errors.StorageRecordDoesNotExist, err)

	input.Count = 11
	require.NoError(t, st.Set("r-0", input))
	require.NoError(t, st.Get("r-0", &fetched))
	require.Equal(t, uint64(11), fetched.Count)
}

func TestLevelDBBackendSetsIsAtomicPrecondition(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	require.NoError(t, st.New("a", 1))

	// one missing key fails the whole batch, nothing is written
	err := st.Sets(Item{Key: "a", Value: 2}, Item{Key: "b", Value: 3})
	require.Equal(t, errors.StorageRecordDoesNotExist, err)

	var a int
	require.NoError(t, st.Get("a", &a))
	require.Equal(t, 1, a)

	require.NoError(t, st.New("b", 0))
	require.NoError(t, st.Sets(Item{Key: "a", Value: 2}, Item{Key: "b", Value: 3}))

	var b int
	require.NoError(t, st.Get("a", &a))
	require.NoError(t, st.Get("b", &b))
	require.Equal(t, 2, a)
	require.Equal(t, 3, b)
}

func TestLevelDBBackendNews(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	expected := map[string]string{}
	var items []Item
	for i := 0; i < 100; i++ {
		key := uuid.New().String()
		value := uuid.New().String()
		expected[key] = value
		items = append(items, Item{Key: key, Value: value})
	}

	require.NoError(t, st.News(items...))

	for key, value := range expected {
		var fetched string
		require.NoError(t, st.Get(key, &fetched))
		require.Equal(t, value, fetched)
	}

	// one colliding key fails the whole batch
	var key string
	for key = range expected {
		break
	}
	err := st.News(Item{Key: uuid.New().String(), Value: "x"}, Item{Key: key, Value: "y"})
	require.Equal(t, errors.StorageRecordAlreadyExists, err)
}

func TestLevelDBBackendIterator(t *testing.T) {
	st := NewTestMemoryLevelDBBackend()
	defer st.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.New(fmt.Sprintf("it-%03d", i), i))
	}
	require.NoError(t, st.New("other-000", 99))

	var keys []string
	iterFunc, closeFunc := st.GetIterator("it-", false)
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		keys = append(keys, string(item.Key))
	}
	closeFunc()

	require.Equal(t, []string{"it-000", "it-001", "it-002", "it-003", "it-004"}, keys)

	keys = nil
	iterFunc, closeFunc = st.GetIterator("it-", true)
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		keys = append(keys, string(item.Key))
	}
	closeFunc()

	require.Equal(t, []string{"it-004", "it-003", "it-002", "it-001", "it-000"}, keys)
}

func TestNewConfigFromString(t *testing.T) {
	{
		config, err := NewConfigFromString("memory://")
		require.NoError(t, err)
		require.Equal(t, "memory", config.Scheme)
	}

	{
		config, err := NewConfigFromString("file:///tmp/agora-db")
		require.NoError(t, err)
		require.Equal(t, "file", config.Scheme)
		require.Equal(t, "/tmp/agora-db", config.Path)
	}

	{
		_, err := NewConfigFromString("redis://localhost")
		require.Error(t, err)
	}
}
