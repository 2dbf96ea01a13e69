package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"agoranet.io/agora/lib/vote"
)

type Vote struct {
	id      uint64
	state   vote.State
	expired bool
}

// NewVote wraps an aggregate for the wire; `expired` is evaluated by the
// caller against the engine clock since the state alone only knows `ends`.
func NewVote(id uint64, state vote.State, expired bool) *Vote {
	v := &Vote{
		id:      id,
		state:   state,
		expired: expired,
	}
	return v
}

func (v Vote) GetMap() hal.Entry {
	entry := hal.Entry{
		"id":                     v.id,
		"topic":                  string(v.state.Topic),
		"org":                    v.state.Org.String(),
		"total_possible_turnout": v.state.TotalPossibleTurnout,
		"threshold":              v.state.Threshold,
		"in_favor":               v.state.InFavor,
		"against":                v.state.Against,
		"outcome":                v.state.Outcome(),
		"initialized":            v.state.Initialized,
		"expired":                v.expired,
		"digest":                 vote.StateDigest(v.state),
	}
	if v.state.Ends != nil {
		entry["ends"] = *v.state.Ends
	}
	return entry
}

func (v Vote) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("records", hal.NewLink(strings.Replace(URLVoteRecords, "{id}", strconv.FormatUint(v.id, 10), -1)))
	return r
}

func (v Vote) LinkSelf() string {
	return strings.Replace(URLVotes, "{id}", strconv.FormatUint(v.id, 10), -1)
}
