package api

import (
	"net/http/httptest"

	"github.com/gorilla/mux"

	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/vote"
	"agoranet.io/agora/lib/vote/resource"
)

func prepareAPIServer() (*httptest.Server, *vote.Engine, *vote.ManualClock, *org.Registry) {
	engine, clock, registry := vote.NewTestEngine()
	apiHandler := NewNetworkHandlerAPI(engine, registry, resource.APIPrefix)

	router := mux.NewRouter()
	apiHandler.AddAPIHandlers(router)
	ts := httptest.NewServer(router)

	return ts, engine, clock, registry
}
