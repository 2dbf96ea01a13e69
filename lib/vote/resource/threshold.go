package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"agoranet.io/agora/lib/vote"
)

type ThresholdConfig struct {
	config vote.ThresholdConfig
}

func NewThresholdConfig(config vote.ThresholdConfig) *ThresholdConfig {
	t := &ThresholdConfig{
		config: config,
	}
	return t
}

func (t ThresholdConfig) GetMap() hal.Entry {
	entry := hal.Entry{
		"id":  t.config.ID,
		"org": t.config.Org.String(),
	}
	if t.config.Signal != nil {
		entry["signal"] = *t.config.Signal
	}
	if t.config.Percent != nil {
		entry["percent"] = *t.config.Percent
	}
	return entry
}

func (t ThresholdConfig) Resource() *hal.Resource {
	return hal.NewResource(t, t.LinkSelf())
}

func (t ThresholdConfig) LinkSelf() string {
	return strings.Replace(URLThresholds, "{id}", strconv.FormatUint(t.config.ID, 10), -1)
}
