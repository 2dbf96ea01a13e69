package vote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/org"
)

func TestStateApplyMovesMagnitude(t *testing.T) {
	state := NewState("topic", org.NewEqualRep(1), common.Signal(10), NewThreshold(common.Signal(6)), 0, nil)

	applied, err := state.Apply(common.Signal(4), NotYet, InFavor)
	require.Nil(t, err)
	require.Equal(t, common.Signal(4), applied.InFavor)
	require.Equal(t, common.Signal(0), applied.Against)

	applied, err = applied.Apply(common.Signal(4), InFavor, Against)
	require.Nil(t, err)
	require.Equal(t, common.Signal(0), applied.InFavor)
	require.Equal(t, common.Signal(4), applied.Against)

	applied, err = applied.Apply(common.Signal(4), Against, Abstain)
	require.Nil(t, err)
	require.Equal(t, common.Signal(0), applied.InFavor)
	require.Equal(t, common.Signal(0), applied.Against)

	// abstaining contributed nothing, so moving off it only adds
	applied, err = applied.Apply(common.Signal(4), Abstain, InFavor)
	require.Nil(t, err)
	require.Equal(t, common.Signal(4), applied.InFavor)
}

func TestStateApplyTalliesNeverExceedTurnout(t *testing.T) {
	state := NewState("topic", org.NewEqualRep(1), common.Signal(10), NewThreshold(common.Signal(6)), 0, nil)

	views := []View{InFavor, Against, Abstain, Against, InFavor}
	previous := NotYet
	for _, view := range views {
		var err error
		state, err = state.Apply(common.Signal(7), previous, view)
		require.Nil(t, err)
		require.True(t, state.InFavor.MustAdd(state.Against) <= state.TotalPossibleTurnout)
		previous = view
	}
}

func TestStateApplyRejectsUnvote(t *testing.T) {
	state := NewState("topic", org.NewEqualRep(1), common.Signal(10), NewThreshold(common.Signal(6)), 0, nil)

	state, err := state.Apply(common.Signal(4), NotYet, InFavor)
	require.Nil(t, err)

	_, err = state.Apply(common.Signal(4), InFavor, NotYet)
	require.Equal(t, errors.UnsupportedVoteChange, err)
}

func TestStateApplyRejectsUnderflow(t *testing.T) {
	// an old view claiming a bucket that never received the magnitude
	state := NewState("topic", org.NewEqualRep(1), common.Signal(10), NewThreshold(common.Signal(6)), 0, nil)

	_, err := state.Apply(common.Signal(4), InFavor, Against)
	require.Equal(t, errors.UnsupportedVoteChange, err)

	_, err = state.Apply(common.Signal(4), Against, InFavor)
	require.Equal(t, errors.UnsupportedVoteChange, err)
}

func TestStateOutcome(t *testing.T) {
	against := common.Signal(4)

	cases := []struct {
		name     string
		state    State
		expected Outcome
	}{
		{
			"nothing tallied",
			State{TotalPossibleTurnout: 10, Threshold: NewThreshold(6)},
			OutcomeVoting,
		},
		{
			"below the bound",
			State{TotalPossibleTurnout: 10, Threshold: NewThreshold(6), InFavor: 5},
			OutcomeVoting,
		},
		{
			"bound met exactly",
			State{TotalPossibleTurnout: 10, Threshold: NewThreshold(6), InFavor: 6},
			OutcomeApproved,
		},
		{
			"against bound met exactly",
			State{TotalPossibleTurnout: 10, Threshold: Threshold{InFavor: 6, Against: &against}, Against: 4},
			OutcomeRejected,
		},
		{
			"both bounds met, rejection wins",
			State{TotalPossibleTurnout: 10, Threshold: Threshold{InFavor: 6, Against: &against}, InFavor: 6, Against: 4},
			OutcomeRejected,
		},
		{
			"against tallied but no against bound",
			State{TotalPossibleTurnout: 10, Threshold: NewThreshold(6), InFavor: 6, Against: 4},
			OutcomeApproved,
		},
	}

	for _, c := range cases {
		require.Equal(t, c.expected, c.state.Outcome(), c.name)
	}
}

func TestStateExpiredIsStrict(t *testing.T) {
	ends := uint64(10)
	state := NewState("topic", org.NewEqualRep(1), common.Signal(3), NewThreshold(common.Signal(2)), 0, &ends)

	require.False(t, state.Expired(0))
	require.False(t, state.Expired(10))
	require.True(t, state.Expired(11))

	openEnded := NewState("topic", org.NewEqualRep(1), common.Signal(3), NewThreshold(common.Signal(2)), 0, nil)
	require.False(t, openEnded.Expired(0))
	require.False(t, openEnded.Expired(1000000))
}

func TestStateUpdateTopic(t *testing.T) {
	state := NewState("topic", org.NewEqualRep(1), common.Signal(10), NewThreshold(common.Signal(6)), 0, nil)
	state, err := state.Apply(common.Signal(4), NotYet, InFavor)
	require.Nil(t, err)

	kept := state.UpdateTopic("amended", false)
	require.Equal(t, common.Cid("amended"), kept.Topic)
	require.Equal(t, common.Signal(4), kept.InFavor)

	cleared := state.UpdateTopic("rewritten", true)
	require.Equal(t, common.Cid("rewritten"), cleared.Topic)
	require.Equal(t, common.Signal(0), cleared.InFavor)
	require.Equal(t, common.Signal(0), cleared.Against)
	require.Equal(t, state.TotalPossibleTurnout, cleared.TotalPossibleTurnout)
	require.Equal(t, state.Threshold, cleared.Threshold)
}
