package vote

import (
	"encoding/json"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
)

// Record is one member's vote for one vote instance. Magnitude is fixed
// at mint time; the view and the justification change on each accepted
// revote.
type Record struct {
	Magnitude     common.Signal `json:"magnitude"`
	View          View          `json:"view"`
	Justification common.Cid    `json:"justification,omitempty"`
}

// RecordEntry pairs a record with the member it belongs to, for
// listings.
type RecordEntry struct {
	Address string `json:"address"`
	Record  Record `json:"record"`
}

func NewRecord(magnitude common.Signal) Record {
	return Record{Magnitude: magnitude, View: NotYet}
}

func (r Record) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(r)
	return
}

// SetView returns the record with the new view and justification.
// Re-submitting the current view is rejected, including a repeated
// NOT-YET.
func (r Record) SetView(view View, justification common.Cid) (Record, error) {
	if r.View == view {
		return r, errors.NoVoteDirectionChange
	}

	r.View = view
	r.Justification = justification
	return r, nil
}
