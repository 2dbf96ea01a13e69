package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/httputils"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/vote"
)

func requestJSON(t *testing.T, method, url, body string) (int, map[string]interface{}) {
	var resp *http.Response
	var err error
	if method == "GET" {
		resp, err = http.Get(url)
	} else {
		resp, err = http.Post(url, "application/json", strings.NewReader(body))
	}
	require.NoError(t, err)
	defer resp.Body.Close()

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(readByte, &decoded))

	return resp.StatusCode, decoded
}

func TestGetVote(t *testing.T) {
	ts, engine, clock, registry := prepareAPIServer()
	defer ts.Close()
	vote.TestMakeEqualOrg(registry, 1)

	voteID, err := engine.OpenVote("topic", org.NewEqualRep(1), vote.NewThreshold(common.Signal(2)), 10)
	require.NoError(t, err)

	status, body := requestJSON(t, "GET", ts.URL+"/api/v1/votes/1", "")
	require.Equal(t, 200, status)
	require.Equal(t, float64(voteID), body["id"])
	require.Equal(t, "topic", body["topic"])
	require.Equal(t, string(vote.OutcomeVoting), body["outcome"])
	require.Equal(t, "3", body["total_possible_turnout"])
	require.Equal(t, false, body["expired"])
	require.NotEmpty(t, body["digest"])

	// past `ends` the resource reports expiry without the client
	// needing the chain height
	clock.SetHeight(11)
	status, body = requestJSON(t, "GET", ts.URL+"/api/v1/votes/1", "")
	require.Equal(t, 200, status)
	require.Equal(t, true, body["expired"])

	status, _ = requestJSON(t, "GET", ts.URL+"/api/v1/votes/99", "")
	require.Equal(t, 404, status)

	status, _ = requestJSON(t, "GET", ts.URL+"/api/v1/votes/not-a-number", "")
	require.Equal(t, 400, status)
}

func TestGetVoteRecords(t *testing.T) {
	ts, engine, _, registry := prepareAPIServer()
	defer ts.Close()
	vote.TestMakeEqualOrg(registry, 1)

	voteID, err := engine.OpenVote("topic", org.NewEqualRep(1), vote.NewThreshold(common.Signal(2)), 0)
	require.NoError(t, err)
	require.NoError(t, engine.SubmitVote(voteID, "GALICE", vote.InFavor, "cid-a"))

	status, body := requestJSON(t, "GET", ts.URL+"/api/v1/votes/1/records", "")
	require.Equal(t, 200, status)

	embedded := body["_embedded"].(map[string]interface{})
	records := embedded["records"].([]interface{})
	require.Equal(t, 3, len(records))

	first := records[0].(map[string]interface{})
	require.Equal(t, "GALICE", first["address"])
	require.Equal(t, string(vote.InFavor), first["view"])

	status, body = requestJSON(t, "GET", ts.URL+"/api/v1/votes/1/records/GBOB", "")
	require.Equal(t, 200, status)
	require.Equal(t, string(vote.NotYet), body["view"])

	status, _ = requestJSON(t, "GET", ts.URL+"/api/v1/votes/1/records/GMALLORY", "")
	require.Equal(t, 404, status)
}

func TestPostVote(t *testing.T) {
	ts, _, _, registry := prepareAPIServer()
	defer ts.Close()
	supervisor, _ := vote.TestMakeEqualOrg(registry, 1)

	body := `{"source":"` + supervisor + `","topic":"cid-topic","org":{"mode":"EQUAL","id":1},"threshold":{"in_favor":"2"},"duration":10}`
	status, decoded := requestJSON(t, "POST", ts.URL+"/api/v1/votes", body)
	require.Equal(t, 200, status)
	require.Equal(t, float64(1), decoded["id"])
	require.Equal(t, "cid-topic", decoded["topic"])
	require.Equal(t, float64(10), decoded["ends"])

	// only the supervisor may open
	body = `{"source":"GALICE","topic":"cid-topic","org":{"mode":"EQUAL","id":1},"threshold":{"in_favor":"2"}}`
	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes", body)
	require.Equal(t, 403, status)

	// exactly one threshold representation
	body = `{"source":"` + supervisor + `","topic":"c","org":{"mode":"EQUAL","id":1}}`
	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes", body)
	require.Equal(t, 400, status)

	// a threshold no member set can reach
	body = `{"source":"` + supervisor + `","topic":"c","org":{"mode":"EQUAL","id":1},"threshold":{"in_favor":"5"}}`
	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes", body)
	require.Equal(t, 400, status)
}

func TestPostVotePercent(t *testing.T) {
	ts, _, _, registry := prepareAPIServer()
	defer ts.Close()
	supervisor := vote.TestMakeWeightedOrg(registry, 1)

	body := `{"source":"` + supervisor + `","topic":"c","org":{"mode":"WEIGHTED","id":1},"percent":{"in_favor":"750000"}}`
	status, decoded := requestJSON(t, "POST", ts.URL+"/api/v1/votes", body)
	require.Equal(t, 200, status)
	require.Equal(t, "40", decoded["total_possible_turnout"])

	threshold := decoded["threshold"].(map[string]interface{})
	require.Equal(t, "30", threshold["in_favor"])
}

func TestPostVoteRecord(t *testing.T) {
	ts, engine, clock, registry := prepareAPIServer()
	defer ts.Close()
	vote.TestMakeEqualOrg(registry, 1)

	_, err := engine.OpenVote("topic", org.NewEqualRep(1), vote.NewThreshold(common.Signal(2)), 10)
	require.NoError(t, err)

	status, decoded := requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/records", `{"source":"GALICE","view":"IN-FAVOR","justification":"cid-j"}`)
	require.Equal(t, 200, status)
	require.Equal(t, string(vote.InFavor), decoded["view"])
	require.Equal(t, "cid-j", decoded["justification"])

	// same direction again
	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/records", `{"source":"GALICE","view":"IN-FAVOR"}`)
	require.Equal(t, 409, status)

	// not a member
	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/records", `{"source":"GMALLORY","view":"IN-FAVOR"}`)
	require.Equal(t, 404, status)

	// garbage direction
	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/records", `{"source":"GALICE","view":"MAYBE"}`)
	require.Equal(t, 400, status)

	clock.SetHeight(11)
	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/records", `{"source":"GBOB","view":"IN-FAVOR"}`)
	require.Equal(t, 410, status)
}

func TestPostThresholdAndInvoke(t *testing.T) {
	ts, _, _, registry := prepareAPIServer()
	defer ts.Close()
	supervisor, _ := vote.TestMakeEqualOrg(registry, 1)

	body := `{"source":"` + supervisor + `","org":{"mode":"EQUAL","id":1},"signal":{"in_favor":"2"}}`
	status, decoded := requestJSON(t, "POST", ts.URL+"/api/v1/thresholds", body)
	require.Equal(t, 200, status)
	require.Equal(t, float64(1), decoded["id"])

	status, decoded = requestJSON(t, "GET", ts.URL+"/api/v1/thresholds/1", "")
	require.Equal(t, 200, status)
	require.Equal(t, "EQUAL:1", decoded["org"])

	status, decoded = requestJSON(t, "POST", ts.URL+"/api/v1/thresholds/1/invoke", `{"source":"`+supervisor+`","topic":"cid-t","duration":5}`)
	require.Equal(t, 200, status)
	require.Equal(t, "cid-t", decoded["topic"])
	require.Equal(t, float64(5), decoded["ends"])

	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/thresholds/1/invoke", `{"source":"GALICE","topic":"cid-t"}`)
	require.Equal(t, 403, status)

	status, _ = requestJSON(t, "GET", ts.URL+"/api/v1/thresholds/99", "")
	require.Equal(t, 404, status)

	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/thresholds", `{"source":"GALICE","org":{"mode":"EQUAL","id":1},"signal":{"in_favor":"2"}}`)
	require.Equal(t, 403, status)
}

func TestPostVoteExtend(t *testing.T) {
	ts, engine, clock, registry := prepareAPIServer()
	defer ts.Close()
	supervisor, _ := vote.TestMakeEqualOrg(registry, 1)

	_, err := engine.OpenVote("topic", org.NewEqualRep(1), vote.NewThreshold(common.Signal(2)), 10)
	require.NoError(t, err)

	clock.SetHeight(8)
	status, decoded := requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/extend", `{"source":"`+supervisor+`","blocks":5}`)
	require.Equal(t, 200, status)
	require.Equal(t, float64(13), decoded["ends"])

	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/extend", `{"source":"GALICE","blocks":50}`)
	require.Equal(t, 403, status)
}

func TestUnmatchedRoutesGetProblemBodies(t *testing.T) {
	ts, _, _, _ := prepareAPIServer()
	defer ts.Close()

	{ // unknown path
		resp, err := http.Get(ts.URL + "/api/v1/nothing-here")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, 404, resp.StatusCode)
		require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var p httputils.Problem
		require.NoError(t, json.Unmarshal(readByte, &p))
		require.Equal(t, 404, p.Status)
		require.Equal(t, "/api/v1/nothing-here", p.Instance)
	}

	{ // known path, unsupported method
		resp, err := http.Post(ts.URL+"/api/v1/votes/1/records/GALICE", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, 405, resp.StatusCode)
		require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var p httputils.Problem
		require.NoError(t, json.Unmarshal(readByte, &p))
		require.Equal(t, 405, p.Status)
		require.Contains(t, p.Detail, "POST")
	}
}

func TestPostVoteTopic(t *testing.T) {
	ts, engine, _, registry := prepareAPIServer()
	defer ts.Close()
	supervisor, _ := vote.TestMakeEqualOrg(registry, 1)

	voteID, err := engine.OpenVote("v1", org.NewEqualRep(1), vote.NewThreshold(common.Signal(2)), 0)
	require.NoError(t, err)
	require.NoError(t, engine.SubmitVote(voteID, "GALICE", vote.InFavor, ""))

	status, decoded := requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/topic", `{"source":"`+supervisor+`","topic":"v2","clear_tallies":true}`)
	require.Equal(t, 200, status)
	require.Equal(t, "v2", decoded["topic"])
	require.Equal(t, "0", decoded["in_favor"])

	status, _ = requestJSON(t, "POST", ts.URL+"/api/v1/votes/1/topic", `{"source":"GALICE","topic":"v3"}`)
	require.Equal(t, 403, status)
}
