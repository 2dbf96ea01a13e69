package vote

import (
	"encoding/json"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/org"
)

// State is the aggregate for one open vote: fixed turnout and threshold,
// running tallies, and temporal metadata. Tallies are mutated only
// through Apply so `InFavor + Against <= TotalPossibleTurnout` holds at
// all times.
type State struct {
	Topic                common.Cid    `json:"topic,omitempty"`
	Org                  org.Rep       `json:"org"`
	TotalPossibleTurnout common.Signal `json:"total_possible_turnout"`
	Threshold            Threshold     `json:"threshold"`
	InFavor              common.Signal `json:"in_favor"`
	Against              common.Signal `json:"against"`
	Initialized          uint64        `json:"initialized"`
	Ends                 *uint64       `json:"ends,omitempty"`
}

func NewState(topic common.Cid, organization org.Rep, turnout common.Signal, threshold Threshold, now uint64, ends *uint64) State {
	return State{
		Topic:                topic,
		Org:                  organization,
		TotalPossibleTurnout: turnout,
		Threshold:            threshold,
		Initialized:          now,
		Ends:                 ends,
	}
}

func (s State) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(s)
	return
}

// Apply moves the member's magnitude from the bucket of their old view to
// the bucket of their new one. Un-voting (going back to NOT-YET) is the
// one disallowed transition; any recomputation that breaks the aggregate
// structurally surfaces as the same rejection.
func (s State) Apply(magnitude common.Signal, oldView, newView View) (applied State, err error) {
	applied = s

	switch oldView {
	case InFavor:
		if applied.InFavor, err = applied.InFavor.Sub(magnitude); err != nil {
			err = errors.UnsupportedVoteChange
			return
		}
	case Against:
		if applied.Against, err = applied.Against.Sub(magnitude); err != nil {
			err = errors.UnsupportedVoteChange
			return
		}
	case NotYet, Abstain:
		// contributed to neither bucket
	}

	switch newView {
	case InFavor:
		if applied.InFavor, err = applied.InFavor.Add(magnitude); err != nil {
			err = errors.UnsupportedVoteChange
		}
	case Against:
		if applied.Against, err = applied.Against.Add(magnitude); err != nil {
			err = errors.UnsupportedVoteChange
		}
	case Abstain:
		// contributes to neither bucket
	default:
		err = errors.UnsupportedVoteChange
	}

	return
}

// Outcome resolves the aggregate against its threshold. The against
// bound is evaluated first: when both bounds are satisfied at once the
// vote is rejected.
func (s State) Outcome() Outcome {
	if s.Threshold.Against != nil && s.Against >= *s.Threshold.Against {
		return OutcomeRejected
	}
	if s.InFavor >= s.Threshold.InFavor {
		return OutcomeApproved
	}
	return OutcomeVoting
}

// Expired is strict: a vote whose end equals the current height is open.
func (s State) Expired(now uint64) bool {
	if s.Ends == nil {
		return false
	}
	return now > *s.Ends
}

// SetEnds returns a copy with a later end height; the caller guarantees
// monotonicity.
func (s State) SetEnds(ends uint64) State {
	s.Ends = &ends
	return s
}

// UpdateTopic replaces the topic; clearing resets the tallies without
// touching member records, so the vote restarts around new content
// without re-minting signal.
func (s State) UpdateTopic(topic common.Cid, clearTallies bool) State {
	s.Topic = topic
	if clearTallies {
		s.InFavor = 0
		s.Against = 0
	}
	return s
}
