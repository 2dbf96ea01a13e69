package api

import (
	"encoding/json"
	"net/http"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/httputils"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/vote"
	"agoranet.io/agora/lib/vote/resource"
)

func (api NetworkHandlerAPI) GetThresholdHandler(w http.ResponseWriter, r *http.Request) {
	thresholdID, err := parseID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	config, err := api.engine.GetThresholdConfig(thresholdID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewThresholdConfig(config))
}

// ThresholdPost is the body of a threshold registration. Exactly one of
// `signal` and `percent` must be set.
type ThresholdPost struct {
	Source  string                 `json:"source"`
	Org     org.Rep                `json:"org"`
	Signal  *vote.Threshold        `json:"signal,omitempty"`
	Percent *vote.PercentThreshold `json:"percent,omitempty"`
}

func (api NetworkHandlerAPI) PostThresholdHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var post ThresholdPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}
	if len(post.Source) == 0 {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}
	if !api.supervisors.IsOrganizationSupervisor(post.Org.ID, post.Source) {
		httputils.WriteJSONError(w, errors.NotOrganizationSupervisor)
		return
	}

	input := vote.ThresholdInput{Org: post.Org, Signal: post.Signal, Percent: post.Percent}
	thresholdID, err := api.engine.RegisterThreshold(input)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	config, err := api.engine.GetThresholdConfig(thresholdID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewThresholdConfig(config))
}

type InvokePost struct {
	Source   string     `json:"source"`
	Topic    common.Cid `json:"topic"`
	Duration uint64     `json:"duration,omitempty"`
}

func (api NetworkHandlerAPI) PostThresholdInvokeHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	thresholdID, err := parseID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var post InvokePost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	config, err := api.engine.GetThresholdConfig(thresholdID)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	if !api.supervisors.IsOrganizationSupervisor(config.Org.ID, post.Source) {
		httputils.WriteJSONError(w, errors.NotOrganizationSupervisor)
		return
	}

	voteID, err := api.engine.InvokeThreshold(thresholdID, post.Topic, post.Duration)
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
