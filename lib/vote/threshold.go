package vote

import (
	"agoranet.io/agora/lib/common"
)

// Threshold is a pass/fail rule over absolute signal magnitude. The
// against bound is optional; when set, reaching it rejects the vote.
type Threshold struct {
	InFavor common.Signal  `json:"in_favor"`
	Against *common.Signal `json:"against,omitempty"`
}

func NewThreshold(inFavor common.Signal) Threshold {
	return Threshold{InFavor: inFavor}
}

func NewThresholdWithAgainst(inFavor, against common.Signal) Threshold {
	return Threshold{InFavor: inFavor, Against: &against}
}

// ValidFor reports whether both bounds fit inside the total minted signal.
func (t Threshold) ValidFor(turnout common.Signal) bool {
	if t.InFavor > turnout {
		return false
	}
	if t.Against != nil && *t.Against > turnout {
		return false
	}
	return true
}

// PercentThreshold is the same rule with bounds as fractions of turnout,
// resolvable to a Threshold once turnout is known.
type PercentThreshold struct {
	InFavor common.Mill  `json:"in_favor"`
	Against *common.Mill `json:"against,omitempty"`
}

func NewPercentThreshold(inFavor common.Mill) PercentThreshold {
	return PercentThreshold{InFavor: inFavor}
}

func NewPercentThresholdWithAgainst(inFavor, against common.Mill) PercentThreshold {
	return PercentThreshold{InFavor: inFavor, Against: &against}
}

// ToSignal resolves both bounds against the minted turnout, rounding up.
func (t PercentThreshold) ToSignal(turnout common.Signal) (resolved Threshold, err error) {
	if resolved.InFavor, err = t.InFavor.MulCeil(turnout); err != nil {
		return
	}

	if t.Against != nil {
		var against common.Signal
		if against, err = t.Against.MulCeil(turnout); err != nil {
			return
		}
		resolved.Against = &against
	}

	return
}
