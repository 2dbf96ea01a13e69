package metrics

const (
	Namespace     = "agora"
	VoteSubsystem = "vote"
	APISubsystem  = "api"
)
