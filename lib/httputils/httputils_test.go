package httputils

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/errors"
)

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusNotFound, StatusCode(errors.VoteStateNotFound))
	require.Equal(t, http.StatusGone, StatusCode(errors.VoteExpired))
	require.Equal(t, http.StatusConflict, StatusCode(errors.NoVoteDirectionChange))
	require.Equal(t, http.StatusForbidden, StatusCode(errors.NotOrganizationSupervisor))
	require.Equal(t, http.StatusInternalServerError, StatusCode(errors.StorageCoreError))
	require.Equal(t, http.StatusInternalServerError, StatusCode(json.Unmarshal([]byte("x"), &struct{}{})))
}

func TestWriteJSONProblem(t *testing.T) {
	w := httptest.NewRecorder()
	p := NewDetailedStatusProblem(http.StatusMethodNotAllowed, "method DELETE is not allowed on this resource").SetInstance("/api/v1/votes/1")
	MustWriteJSON(w, http.StatusMethodNotAllowed, p)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var decoded Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	require.Equal(t, "about:blank", decoded.Type)
	require.Equal(t, "method DELETE is not allowed on this resource", decoded.Detail)
	require.Equal(t, "/api/v1/votes/1", decoded.Instance)
}

func TestWriteJSONError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/expired", func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, errors.VoteExpired)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/expired")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusGone, resp.StatusCode)
	require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var p Problem
	require.NoError(t, json.Unmarshal(body, &p))
	require.Equal(t, errors.VoteExpired.Message, p.Title)
	require.Equal(t, http.StatusGone, p.Status)
}
