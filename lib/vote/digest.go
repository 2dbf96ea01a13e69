package vote

import (
	"agoranet.io/agora/lib/common"
)

// stateDigest is the canonical encoding of an aggregate. Optional fields
// carry an explicit presence flag so `absent` and `zero` never hash to
// the same value.
type stateDigest struct {
	Topic            string
	OrgMode          string
	OrgID            uint64
	Turnout          uint64
	ThresholdInFavor uint64
	HasAgainst       bool
	ThresholdAgainst uint64
	InFavor          uint64
	Against          uint64
	Initialized      uint64
	HasEnds          bool
	Ends             uint64
}

// StateDigest hashes the aggregate canonically; two ledgers that executed
// the same ordered calls at the same heights produce equal digests.
func StateDigest(s State) string {
	d := stateDigest{
		Topic:            string(s.Topic),
		OrgMode:          string(s.Org.Mode),
		OrgID:            s.Org.ID,
		Turnout:          uint64(s.TotalPossibleTurnout),
		ThresholdInFavor: uint64(s.Threshold.InFavor),
		InFavor:          uint64(s.InFavor),
		Against:          uint64(s.Against),
		Initialized:      s.Initialized,
	}
	if s.Threshold.Against != nil {
		d.HasAgainst = true
		d.ThresholdAgainst = uint64(*s.Threshold.Against)
	}
	if s.Ends != nil {
		d.HasEnds = true
		d.Ends = *s.Ends
	}

	return common.MustMakeObjectHashString(d)
}
