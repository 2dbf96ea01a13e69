package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLVotes       = APIPrefix + APIVersionV1 + "/votes/{id}"
	URLVoteRecords = APIPrefix + APIVersionV1 + "/votes/{id}/records"
	URLVoteRecord  = APIPrefix + APIVersionV1 + "/votes/{id}/records/{address}"
	URLThresholds  = APIPrefix + APIVersionV1 + "/thresholds/{id}"
)
