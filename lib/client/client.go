package client

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"agoranet.io/agora/lib/common"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlVotes           = "/votes"
	UrlVote            = "/votes/{id}"
	UrlVoteRecords     = "/votes/{id}/records"
	UrlVoteRecord      = "/votes/{id}/records/{address}"
	UrlVoteExtend      = "/votes/{id}/extend"
	UrlVoteTopic       = "/votes/{id}/topic"
	UrlThresholds      = "/thresholds"
	UrlThreshold       = "/thresholds/{id}"
	UrlThresholdInvoke = "/thresholds/{id}/invoke"
)

type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

func NewClient(url string) *Client {
	httpClient, err := common.NewHTTP2Client(0, 0, true)
	if err != nil {
		panic(err)
	}
	return &Client{
		URL:  url,
		HTTP: httpClient,
	}
}

// NewPersistentClient retries failed requests per the given setting.
func NewPersistentClient(url string, retrySetting *common.RetrySetting) *Client {
	httpClient, err := common.NewPersistentHTTP2Client(0, 0, true, retrySetting)
	if err != nil {
		panic(err)
	}
	return &Client{
		URL:  url,
		HTTP: httpClient,
	}
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		err = decoder.Decode(&p)
		if err != nil {
			return
		}
		return Error{Problem: p}
	}

	err = decoder.Decode(&response)
	if err != nil {
		return
	}
	return
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Get(url, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Post(url, body, headers)
}

func jsonHeaders() http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	return headers
}

func replaceID(pattern string, id uint64) string {
	return strings.Replace(pattern, "{id}", strconv.FormatUint(id, 10), -1)
}

func (c *Client) LoadVote(id uint64) (v Vote, err error) {
	resp, err := c.Get(replaceID(UrlVote, id), jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &v)
	return
}

func (c *Client) LoadVoteRecords(id uint64) (page RecordsPage, err error) {
	resp, err := c.Get(replaceID(UrlVoteRecords, id), jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &page)
	return
}

func (c *Client) LoadVoteRecord(id uint64, address string) (record Record, err error) {
	url := strings.Replace(replaceID(UrlVoteRecord, id), "{address}", address, -1)
	resp, err := c.Get(url, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &record)
	return
}

func (c *Client) LoadThreshold(id uint64) (config ThresholdConfig, err error) {
	resp, err := c.Get(replaceID(UrlThreshold, id), jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &config)
	return
}

func (c *Client) post(path string, body interface{}, response interface{}) (err error) {
	var encoded []byte
	if encoded, err = json.Marshal(body); err != nil {
		return
	}

	resp, err := c.Post(path, encoded, jsonHeaders())
	if err != nil {
		return
	}
	return c.toResponse(resp, response)
}

func (c *Client) OpenVote(body interface{}) (v Vote, err error) {
	err = c.post(UrlVotes, body, &v)
	return
}

func (c *Client) SubmitRecord(id uint64, body interface{}) (v Vote, err error) {
	err = c.post(replaceID(UrlVoteRecords, id), body, &v)
	return
}

func (c *Client) ExtendVote(id uint64, body interface{}) (v Vote, err error) {
	err = c.post(replaceID(UrlVoteExtend, id), body, &v)
	return
}

func (c *Client) UpdateVoteTopic(id uint64, body interface{}) (v Vote, err error) {
	err = c.post(replaceID(UrlVoteTopic, id), body, &v)
	return
}

func (c *Client) RegisterThreshold(body interface{}) (config ThresholdConfig, err error) {
	err = c.post(UrlThresholds, body, &config)
	return
}

func (c *Client) InvokeThreshold(id uint64, body interface{}) (v Vote, err error) {
	err = c.post(replaceID(UrlThresholdInvoke, id), body, &v)
	return
}
