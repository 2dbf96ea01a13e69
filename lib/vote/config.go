package vote

import (
	"encoding/json"

	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/org"
)

// ThresholdInput is a threshold rule submitted for registration: exactly
// one of the absolute or the percentage representation.
type ThresholdInput struct {
	Org     org.Rep           `json:"org"`
	Signal  *Threshold        `json:"signal,omitempty"`
	Percent *PercentThreshold `json:"percent,omitempty"`
}

func NewSignalThresholdInput(o org.Rep, t Threshold) ThresholdInput {
	return ThresholdInput{Org: o, Signal: &t}
}

func NewPercentThresholdInput(o org.Rep, t PercentThreshold) ThresholdInput {
	return ThresholdInput{Org: o, Percent: &t}
}

func (t ThresholdInput) IsWellFormed() error {
	if !t.Org.Mode.IsValid() {
		return errors.BadRequestParameter
	}
	if (t.Signal == nil) == (t.Percent == nil) {
		return errors.BadRequestParameter
	}
	return nil
}

// ThresholdConfig is a registered, immutable threshold rule. Updating a
// rule means registering a new id.
type ThresholdConfig struct {
	ID      uint64            `json:"id"`
	Org     org.Rep           `json:"org"`
	Signal  *Threshold        `json:"signal,omitempty"`
	Percent *PercentThreshold `json:"percent,omitempty"`
}

func NewThresholdConfig(id uint64, input ThresholdInput) ThresholdConfig {
	return ThresholdConfig{
		ID:      id,
		Org:     input.Org,
		Signal:  input.Signal,
		Percent: input.Percent,
	}
}

func (t ThresholdConfig) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(t)
	return
}
