package vote

// View is a member's current stance on a vote.
type View string

const (
	NotYet  View = "NOT-YET"
	InFavor View = "IN-FAVOR"
	Against View = "AGAINST"
	Abstain View = "ABSTAIN"
)

func (v View) IsValid() bool {
	switch v {
	case NotYet, InFavor, Against, Abstain:
		return true
	}
	return false
}

// Outcome is the resolution of a vote against its threshold.
type Outcome string

const (
	OutcomeVoting   Outcome = "VOTING"
	OutcomeApproved Outcome = "APPROVED"
	OutcomeRejected Outcome = "REJECTED"
)
