package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"agoranet.io/agora/lib/vote"
)

type Record struct {
	voteID  uint64
	address string
	record  vote.Record
}

func NewRecord(voteID uint64, address string, record vote.Record) *Record {
	r := &Record{
		voteID:  voteID,
		address: address,
		record:  record,
	}
	return r
}

func (r Record) GetMap() hal.Entry {
	return hal.Entry{
		"address":       r.address,
		"magnitude":     r.record.Magnitude,
		"view":          r.record.View,
		"justification": string(r.record.Justification),
	}
}

func (r Record) Resource() *hal.Resource {
	hr := hal.NewResource(r, r.LinkSelf())
	hr.AddLink("vote", hal.NewLink(strings.Replace(URLVotes, "{id}", strconv.FormatUint(r.voteID, 10), -1)))
	return hr
}

func (r Record) LinkSelf() string {
	link := strings.Replace(URLVoteRecord, "{id}", strconv.FormatUint(r.voteID, 10), -1)
	return strings.Replace(link, "{address}", r.address, -1)
}
