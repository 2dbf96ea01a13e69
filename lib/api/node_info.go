package api

import (
	"net/http"

	"agoranet.io/agora/lib/httputils"
	"agoranet.io/agora/lib/version"
)

type NodeInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
}

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	info := NodeInfo{
		Name:    "agora",
		Version: version.Version,
		Commit:  version.GitCommit,
	}

	httputils.MustWriteJSON(w, 200, info)
}
