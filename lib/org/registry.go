package org

import (
	"sort"

	"agoranet.io/agora/lib/common"
)

// Registry is an in-process stake source, used by the node runner and by
// tests. Production deployments are expected to plug their own
// GroupProvider; the engine never assumes this one.
type Registry struct {
	supervisors map[uint64]string
	members     map[uint64][]Stakeholder
}

func NewRegistry() *Registry {
	return &Registry{
		supervisors: map[uint64]string{},
		members:     map[uint64][]Stakeholder{},
	}
}

// AddOrganization registers a supervisor for the organization id.
// Adding an organization twice replaces its supervisor.
func (r *Registry) AddOrganization(orgID uint64, supervisor string) {
	r.supervisors[orgID] = supervisor
	if _, found := r.members[orgID]; !found {
		r.members[orgID] = nil
	}
}

// AddMember appends a member with stake; the member list is kept sorted
// by address so every traversal is canonical.
func (r *Registry) AddMember(orgID uint64, address string, stake common.Signal) {
	holders := append(r.members[orgID], Stakeholder{Address: address, Stake: stake})
	sort.Slice(holders, func(i, j int) bool { return holders[i].Address < holders[j].Address })
	r.members[orgID] = holders
}

func (r *Registry) GetEqualGroup(orgID uint64) ([]string, bool) {
	holders, found := r.members[orgID]
	if !found {
		return nil, false
	}

	members := make([]string, 0, len(holders))
	for _, h := range holders {
		members = append(members, h.Address)
	}
	return members, true
}

func (r *Registry) GetWeightedGroup(orgID uint64) (common.Signal, []Stakeholder, bool) {
	holders, found := r.members[orgID]
	if !found {
		return 0, nil, false
	}

	var total common.Signal
	for _, h := range holders {
		// Add panics on inputs above the cap, so screen the stake first.
		if h.Stake > common.MaximumIssuance {
			return 0, nil, false
		}
		var err error
		if total, err = total.Add(h.Stake); err != nil {
			return 0, nil, false
		}
	}

	return total, holders, true
}

func (r *Registry) IsOrganizationSupervisor(orgID uint64, address string) bool {
	supervisor, found := r.supervisors[orgID]
	return found && supervisor == address
}
