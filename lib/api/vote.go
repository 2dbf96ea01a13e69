package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/httputils"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/vote"
	"agoranet.io/agora/lib/vote/resource"
)

func parseID(r *http.Request) (uint64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.BadRequestParameter.Clone().SetData("id", raw)
	}
	return id, nil
}

// writeVote renders a vote state, stamping expiry against the engine
// clock so clients need not track the chain height themselves.
func (api NetworkHandlerAPI) writeVote(w http.ResponseWriter, voteID uint64, state vote.State) {
	httputils.MustWriteJSON(w, 200, resource.NewVote(voteID, state, state.Expired(api.engine.Height())))
}

func (api NetworkHandlerAPI) GetVoteHandler(w http.ResponseWriter, r *http.Request) {
	voteID, err := parseID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	state, err := api.engine.GetState(voteID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	api.writeVote(w, voteID, state)
}

func (api NetworkHandlerAPI) GetVoteRecordsHandler(w http.ResponseWriter, r *http.Request) {
	voteID, err := parseID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	entries, err := api.engine.GetRecords(voteID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	for _, entry := range entries {
		rs = append(rs, resource.NewRecord(voteID, entry.Address, entry.Record))
	}

	selfLink := strings.Replace(resource.URLVoteRecords, "{id}", strconv.FormatUint(voteID, 10), -1)
	httputils.MustWriteJSON(w, 200, resource.NewResourceList(rs, selfLink))
}

func (api NetworkHandlerAPI) GetVoteRecordHandler(w http.ResponseWriter, r *http.Request) {
	voteID, err := parseID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	address := mux.Vars(r)["address"]

	record, err := api.engine.GetRecord(voteID, address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewRecord(voteID, address, record))
}

// VotePost is the body of a vote-opening command. Exactly one of
// `threshold` and `percent` must be set.
type VotePost struct {
	Source    string                 `json:"source"`
	Topic     common.Cid             `json:"topic"`
	Org       org.Rep                `json:"org"`
	Threshold *vote.Threshold        `json:"threshold,omitempty"`
	Percent   *vote.PercentThreshold `json:"percent,omitempty"`
	Duration  uint64                 `json:"duration,omitempty"`
}

func (api NetworkHandlerAPI) PostVoteHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var post VotePost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}
	if len(post.Source) == 0 || (post.Threshold == nil) == (post.Percent == nil) {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}
	if !api.supervisors.IsOrganizationSupervisor(post.Org.ID, post.Source) {
		httputils.WriteJSONError(w, errors.NotOrganizationSupervisor)
		return
	}

	var voteID uint64
	var err error
	if post.Threshold != nil {
		voteID, err = api.engine.OpenVote(post.Topic, post.Org, *post.Threshold, post.Duration)
	} else {
		voteID, err = api.engine.OpenPercentVote(post.Topic, post.Org, *post.Percent, post.Duration)
	}
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	state, err := api.engine.GetState(voteID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	api.writeVote(w, voteID, state)
}

// RecordPost is the body of a vote submission; the source votes for
// itself, so no supervisor check applies.
type RecordPost struct {
	Source        string     `json:"source"`
	View          vote.View  `json:"view"`
	Justification common.Cid `json:"justification,omitempty"`
}

func (api NetworkHandlerAPI) PostVoteRecordHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	voteID, err := parseID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var post RecordPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}
	if len(post.Source) == 0 || !post.View.IsValid() {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	if err := api.engine.SubmitVote(voteID, post.Source, post.View, post.Justification); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	record, err := api.engine.GetRecord(voteID, post.Source)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewRecord(voteID, post.Source, record))
}

type ExtendPost struct {
	Source string `json:"source"`
	Blocks uint64 `json:"blocks"`
}

func (api NetworkHandlerAPI) PostVoteExtendHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	voteID, err := parseID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var post ExtendPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	state, err := api.engine.GetState(voteID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	if !api.supervisors.IsOrganizationSupervisor(state.Org.ID, post.Source) {
		httputils.WriteJSONError(w, errors.NotOrganizationSupervisor)
		return
	}

	if err := api.engine.ExtendVote(voteID, post.Blocks); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	state, err = api.engine.GetState(voteID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	api.writeVote(w, voteID, state)
}

type TopicPost struct {
	Source       string     `json:"source"`
	Topic        common.Cid `json:"topic"`
	ClearTallies bool       `json:"clear_tallies,omitempty"`
}

func (api NetworkHandlerAPI) PostVoteTopicHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	voteID, err := parseID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var post TopicPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	state, err := api.engine.GetState(voteID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	if !api.supervisors.IsOrganizationSupervisor(state.Org.ID, post.Source) {
		httputils.WriteJSONError(w, errors.NotOrganizationSupervisor)
		return
	}

	if err := api.engine.UpdateVoteTopic(voteID, post.Topic, post.ClearTallies); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	state, err = api.engine.GetState(voteID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	api.writeVote(w, voteID, state)
}
