package vote

import (
	"fmt"

	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/storage"
)

const (
	StatePrefix           string = "vs-"
	RecordPrefix          string = "vr-"
	TurnoutPrefix         string = "vt-"
	ThresholdConfigPrefix string = "tc-"

	VoteIDCounterKey      string = "vote-id-counter"
	ThresholdIDCounterKey string = "threshold-id-counter"
	OpenVoteCounterKey    string = "open-vote-counter"
	ChainHeightCounterKey string = "chain-height-counter"
)

const maxIDStringLength int = 20

// ids are zero padded so lexicographic key order equals numeric order
func formatID(id uint64) string {
	f := fmt.Sprintf("%%0%dd", maxIDStringLength)
	return fmt.Sprintf(f, id)
}

func GetStateKey(voteID uint64) string {
	return StatePrefix + formatID(voteID)
}

func GetRecordKey(voteID uint64, address string) string {
	return RecordPrefix + formatID(voteID) + "-" + address
}

func GetRecordKeyPrefix(voteID uint64) string {
	return RecordPrefix + formatID(voteID) + "-"
}

func GetTurnoutKey(voteID uint64) string {
	return TurnoutPrefix + formatID(voteID)
}

func GetThresholdConfigKey(thresholdID uint64) string {
	return ThresholdConfigPrefix + formatID(thresholdID)
}

// getCounter reads a persisted counter; a counter that was never written
// is zero.
func getCounter(st *storage.LevelDBBackend, key string) (value uint64, err error) {
	if err = st.Get(key, &value); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return 0, nil
		}
		return
	}

	return
}

func putCounter(st *storage.LevelDBBackend, key string, value uint64) error {
	return st.Put(key, value)
}
