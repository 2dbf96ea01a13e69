package httputils

import (
	"net/http"

	"agoranet.io/agora/lib/errors"
)

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageCoreError.Code:           http.StatusInternalServerError,
		errors.StorageRecordDoesNotExist.Code:  http.StatusNotFound,
		errors.StorageRecordAlreadyExists.Code: http.StatusConflict,
		errors.BadRequestParameter.Code:        http.StatusBadRequest,
		errors.NotOrganizationSupervisor.Code:  http.StatusForbidden,
		errors.VoteStateNotFound.Code:          http.StatusNotFound,
		errors.ThresholdNotFound.Code:          http.StatusNotFound,
		errors.NoSignalForVoter.Code:           http.StatusNotFound,
		errors.VoteExpired.Code:                http.StatusGone,
		errors.ThresholdExceedsBounds.Code:     http.StatusBadRequest,
		errors.NoVoteDirectionChange.Code:      http.StatusConflict,
		errors.UnsupportedVoteChange.Code:      http.StatusConflict,
		errors.EqualGroupUnavailable.Code:      http.StatusBadRequest,
		errors.WeightedGroupUnavailable.Code:   http.StatusBadRequest,
		errors.MaximumIssuanceReached.Code:     http.StatusBadRequest,
		errors.SignalUnderZero.Code:            http.StatusBadRequest,
		errors.InvalidFraction.Code:            http.StatusBadRequest,
	}
)

// StatusCode returns a proper http status code for the error
func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
