package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, VoteStateNotFound, VoteStateNotFound)

	e := VoteStateNotFound
	e0 := VoteStateNotFound.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.SetData("vote-id", uint64(33))
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsUniqueCodes(t *testing.T) {
	all := []*Error{
		StorageCoreError,
		StorageRecordDoesNotExist,
		StorageRecordAlreadyExists,
		BadRequestParameter,
		NotOrganizationSupervisor,
		VoteStateNotFound,
		ThresholdNotFound,
		NoSignalForVoter,
		VoteExpired,
		ThresholdExceedsBounds,
		NoVoteDirectionChange,
		UnsupportedVoteChange,
		EqualGroupUnavailable,
		WeightedGroupUnavailable,
		MaximumIssuanceReached,
		SignalUnderZero,
		InvalidFraction,
	}

	seen := map[uint]bool{}
	for _, e := range all {
		require.False(t, seen[e.Code], "duplicated error code", e.Code)
		seen[e.Code] = true
	}
}
