package client

import (
	"encoding/json"
	"fmt"
)

type Problem struct {
	Type     string                     `json:"type"`
	Title    string                     `json:"title"`
	Status   int                        `json:"status"`
	Detail   string                     `json:"detail,omitempty"`
	Instance string                     `json:"instance,omitempty"`
	Extras   map[string]json.RawMessage `json:"extras,omitempty"`
}

type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Problem.Title, e.Problem.Status)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Vote struct {
	Links struct {
		Self    Link `json:"self"`
		Records Link `json:"records"`
	} `json:"_links"`

	ID                   uint64    `json:"id"`
	Topic                string    `json:"topic"`
	Org                  string    `json:"org"`
	TotalPossibleTurnout string    `json:"total_possible_turnout"`
	Threshold            Threshold `json:"threshold"`
	InFavor              string    `json:"in_favor"`
	Against              string    `json:"against"`
	Outcome              string    `json:"outcome"`
	Initialized          uint64    `json:"initialized"`
	Ends                 *uint64   `json:"ends,omitempty"`
	Expired              bool      `json:"expired"`
	Digest               string    `json:"digest"`
}

type Threshold struct {
	InFavor string  `json:"in_favor"`
	Against *string `json:"against,omitempty"`
}

type Record struct {
	Links struct {
		Self Link `json:"self"`
		Vote Link `json:"vote"`
	} `json:"_links"`

	Address       string `json:"address"`
	Magnitude     string `json:"magnitude"`
	View          string `json:"view"`
	Justification string `json:"justification,omitempty"`
}

type RecordsPage struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`
	Embedded struct {
		Records []Record `json:"records"`
	} `json:"_embedded"`
}

type ThresholdConfig struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	ID      uint64            `json:"id"`
	Org     string            `json:"org"`
	Signal  *Threshold        `json:"signal,omitempty"`
	Percent *PercentThreshold `json:"percent,omitempty"`
}

type PercentThreshold struct {
	InFavor string  `json:"in_favor"`
	Against *string `json:"against,omitempty"`
}
