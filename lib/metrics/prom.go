package metrics

func InitPrometheusMetrics() {
	Vote = PromVoteMetrics()
}
