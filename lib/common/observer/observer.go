package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// VoteObserver carries the engine's lifecycle events; the surrounding
// environment subscribes to mirror what the ledger just committed.
var VoteObserver = observable.New()

const (
	EventNewVoteStarted = "vote-opened"
	EventVoted          = "voted"
	EventThresholdSet   = "threshold-set"
)
