package vote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/storage"
)

func TestMintEqualSignal(t *testing.T) {
	registry := org.NewRegistry()
	registry.AddOrganization(1, "GSUPERVISOR")
	registry.AddMember(1, "GCAROL", common.Signal(100))
	registry.AddMember(1, "GALICE", common.Signal(1))
	registry.AddMember(1, "GBOB", common.Signal(50))

	items, total, err := mintEqualSignal(registry, 7, 1)
	require.Nil(t, err)

	// one signal per member regardless of stake
	require.Equal(t, common.Signal(3), total)
	require.Equal(t, 4, len(items))

	require.Equal(t, GetRecordKey(7, "GALICE"), items[0].Key)
	require.Equal(t, GetRecordKey(7, "GBOB"), items[1].Key)
	require.Equal(t, GetRecordKey(7, "GCAROL"), items[2].Key)
	require.Equal(t, GetTurnoutKey(7), items[3].Key)

	record := items[0].Value.(Record)
	require.Equal(t, common.Signal(1), record.Magnitude)
	require.Equal(t, NotYet, record.View)
}

func TestMintWeightedSignal(t *testing.T) {
	registry := org.NewRegistry()
	registry.AddOrganization(1, "GSUPERVISOR")
	registry.AddMember(1, "GALICE", common.Signal(10))
	registry.AddMember(1, "GBOB", common.Signal(30))

	items, total, err := mintWeightedSignal(registry, 7, 1)
	require.Nil(t, err)

	require.Equal(t, common.Signal(40), total)
	require.Equal(t, 3, len(items))

	require.Equal(t, common.Signal(10), items[0].Value.(Record).Magnitude)
	require.Equal(t, common.Signal(30), items[1].Value.(Record).Magnitude)
	require.Equal(t, GetTurnoutKey(7), items[2].Key)
}

func TestMintUnavailableGroup(t *testing.T) {
	registry := org.NewRegistry()

	_, _, err := mintEqualSignal(registry, 7, 99)
	require.Equal(t, errors.EqualGroupUnavailable.Code, err.(*errors.Error).Code)

	_, _, err = mintWeightedSignal(registry, 7, 99)
	require.Equal(t, errors.WeightedGroupUnavailable.Code, err.(*errors.Error).Code)
}

func TestMintUnknownMode(t *testing.T) {
	registry := org.NewRegistry()
	registry.AddOrganization(1, "GSUPERVISOR")

	_, _, err := mintSignal(registry, 7, org.Rep{Mode: "QUADRATIC", ID: 1})
	require.Equal(t, errors.BadRequestParameter.Code, err.(*errors.Error).Code)
}

func TestMintTwiceForSameVoteFails(t *testing.T) {
	st := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	registry := org.NewRegistry()
	registry.AddOrganization(1, "GSUPERVISOR")
	registry.AddMember(1, "GALICE", common.Signal(10))

	items, _, err := mintSignal(registry, 7, org.NewWeightedRep(1))
	require.Nil(t, err)
	require.Nil(t, st.News(items...))

	// the turnout key is create-only, so re-minting the same id cannot commit
	items, _, err = mintSignal(registry, 7, org.NewWeightedRep(1))
	require.Nil(t, err)
	require.Equal(t, errors.StorageRecordAlreadyExists, st.News(items...))
}
