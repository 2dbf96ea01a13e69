package errors

var (
	StorageCoreError           = NewError(100, "storage error")
	StorageRecordDoesNotExist  = NewError(101, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(102, "record already exists in storage")
	BadRequestParameter        = NewError(103, "found invalid request parameter")

	NotOrganizationSupervisor = NewError(110, "caller is not the organization supervisor")
	VoteStateNotFound         = NewError(111, "vote state does not exist for vote id")
	ThresholdNotFound         = NewError(112, "threshold config does not exist for threshold id")
	NoSignalForVoter          = NewError(113, "no signal was minted for the voter")
	VoteExpired               = NewError(114, "vote is past its expiration height")
	ThresholdExceedsBounds    = NewError(115, "threshold exceeds total minted signal")
	NoVoteDirectionChange     = NewError(116, "new vote direction equals the old direction")
	UnsupportedVoteChange     = NewError(117, "vote direction change is not supported")
	EqualGroupUnavailable     = NewError(118, "equal group membership unavailable for organization")
	WeightedGroupUnavailable  = NewError(119, "weighted group membership unavailable for organization")

	MaximumIssuanceReached = NewError(120, "maximum signal issuance reached")
	SignalUnderZero        = NewError(121, "signal would go under zero")
	InvalidFraction        = NewError(122, "fraction is over the denominator")
)
