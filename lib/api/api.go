package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"agoranet.io/agora/lib/httputils"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/vote"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetNodeInfoPattern           = "/"
	GetVoteHandlerPattern        = "/votes/{id}"
	GetVoteRecordsHandlerPattern = "/votes/{id}/records"
	GetVoteRecordHandlerPattern  = "/votes/{id}/records/{address}"
	GetThresholdHandlerPattern   = "/thresholds/{id}"
	PostVoteHandlerPattern       = "/votes"
	PostVoteRecordHandlerPattern = "/votes/{id}/records"
	PostVoteExtendHandlerPattern = "/votes/{id}/extend"
	PostVoteTopicHandlerPattern  = "/votes/{id}/topic"
	PostThresholdHandlerPattern  = "/thresholds"
	PostThresholdInvokePattern   = "/thresholds/{id}/invoke"
)

// NetworkHandlerAPI exposes the vote engine over http. Commands carry
// the acting account in their body; privileged ones are checked against
// the supervisor registry before they reach the engine.
type NetworkHandlerAPI struct {
	engine      *vote.Engine
	supervisors org.SupervisorChecker
	urlPrefix   string
	version     string
	cache       CacheClient
}

// CacheClient wraps read-only handlers with a response cache.
type CacheClient interface {
	WrapHandlerFunc(http.HandlerFunc) http.HandlerFunc
}

func NewNetworkHandlerAPI(engine *vote.Engine, supervisors org.SupervisorChecker, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		engine:      engine,
		supervisors: supervisors,
		urlPrefix:   urlPrefix,
		version:     APIVersionV1,
	}
}

// SetCache enables response caching on the GET endpoints.
func (api *NetworkHandlerAPI) SetCache(cache CacheClient) {
	api.cache = cache
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// AddAPIHandlers registers every endpoint on the router. Requests that
// match no route get an RFC 7807 body instead of the default plain text.
func (api NetworkHandlerAPI) AddAPIHandlers(router *mux.Router) {
	wrap := func(handlerFunc http.HandlerFunc) http.HandlerFunc {
		if api.cache == nil {
			return handlerFunc
		}
		return api.cache.WrapHandlerFunc(handlerFunc)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := httputils.NewStatusProblem(http.StatusNotFound).SetInstance(r.URL.Path)
		httputils.MustWriteJSON(w, http.StatusNotFound, p)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := httputils.NewDetailedStatusProblem(
			http.StatusMethodNotAllowed,
			fmt.Sprintf("method %s is not allowed on this resource", r.Method),
		).SetInstance(r.URL.Path)
		httputils.MustWriteJSON(w, http.StatusMethodNotAllowed, p)
	})

	router.HandleFunc(GetNodeInfoPattern, api.GetNodeInfoHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetVoteHandlerPattern), wrap(api.GetVoteHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetVoteRecordsHandlerPattern), wrap(api.GetVoteRecordsHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetVoteRecordHandlerPattern), wrap(api.GetVoteRecordHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetThresholdHandlerPattern), wrap(api.GetThresholdHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostVoteHandlerPattern), api.PostVoteHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostVoteRecordHandlerPattern), api.PostVoteRecordHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostVoteExtendHandlerPattern), api.PostVoteExtendHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostVoteTopicHandlerPattern), api.PostVoteTopicHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostThresholdHandlerPattern), api.PostThresholdHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostThresholdInvokePattern), api.PostThresholdInvokeHandler).Methods("POST")
}
