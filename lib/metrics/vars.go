package metrics

var (
	Vote = NopVoteMetrics()
)
