package vote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/storage"
)

func TestChainClockTick(t *testing.T) {
	clock := NewChainClock(5)
	require.Equal(t, uint64(5), clock.Height())
	require.Equal(t, uint64(6), clock.Tick())
	require.Equal(t, uint64(6), clock.Height())
}

func TestChainHeightPersistence(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	// fresh ledger starts at zero
	height, err := LoadChainHeight(st)
	require.Nil(t, err)
	require.Equal(t, uint64(0), height)

	clock := NewChainClock(height)
	for i := 0; i < 3; i++ {
		require.Nil(t, SaveChainHeight(st, clock.Tick()))
	}

	// a restarted clock resumes where the ticker left off
	height, err = LoadChainHeight(st)
	require.Nil(t, err)
	require.Equal(t, uint64(3), height)

	restarted := NewChainClock(height)
	require.Equal(t, uint64(3), restarted.Height())
	require.Equal(t, uint64(4), restarted.Tick())
}
