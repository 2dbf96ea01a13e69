package org

import (
	"encoding/json"
	"io/ioutil"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
)

// Membership is the on-disk description of the organizations a node
// serves: who supervises each one and who holds how much stake.
type Membership struct {
	Organizations []Organization `json:"organizations"`
}

type Organization struct {
	ID         uint64        `json:"id"`
	Supervisor string        `json:"supervisor"`
	Members    []Stakeholder `json:"members"`
}

func (m Membership) IsWellFormed() error {
	seen := map[uint64]struct{}{}
	for _, o := range m.Organizations {
		if _, found := seen[o.ID]; found {
			return errors.BadRequestParameter.Clone().SetData("organization", o.ID)
		}
		seen[o.ID] = struct{}{}

		if len(o.Supervisor) < 1 {
			return errors.BadRequestParameter.Clone().SetData("organization", o.ID)
		}

		members := map[string]struct{}{}
		var total common.Signal
		for _, s := range o.Members {
			if len(s.Address) < 1 {
				return errors.BadRequestParameter.Clone().SetData("organization", o.ID)
			}
			if _, found := members[s.Address]; found {
				return errors.BadRequestParameter.Clone().SetData("member", s.Address)
			}
			members[s.Address] = struct{}{}

			if s.Stake > common.MaximumIssuance {
				return errors.MaximumIssuanceReached.Clone().SetData("member", s.Address)
			}
			var err error
			if total, err = total.Add(s.Stake); err != nil {
				return errors.MaximumIssuanceReached.Clone().SetData("organization", o.ID)
			}
		}
	}

	return nil
}

// NewMembershipFromJSON parses and validates an encoded Membership.
func NewMembershipFromJSON(encoded []byte) (membership Membership, err error) {
	if err = json.Unmarshal(encoded, &membership); err != nil {
		return
	}
	err = membership.IsWellFormed()
	return
}

// NewMembershipFromFile reads a Membership from a json file.
func NewMembershipFromFile(path string) (Membership, error) {
	encoded, err := ioutil.ReadFile(path)
	if err != nil {
		return Membership{}, err
	}

	return NewMembershipFromJSON(encoded)
}

// NewRegistryFromJSON builds a registry from an encoded Membership.
func NewRegistryFromJSON(encoded []byte) (*Registry, error) {
	membership, err := NewMembershipFromJSON(encoded)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry()
	for _, o := range membership.Organizations {
		registry.AddOrganization(o.ID, o.Supervisor)
		for _, s := range o.Members {
			registry.AddMember(o.ID, s.Address, s.Stake)
		}
	}

	return registry, nil
}

// NewRegistryFromFile reads a Membership from a json file.
func NewRegistryFromFile(path string) (*Registry, error) {
	encoded, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return NewRegistryFromJSON(encoded)
}
