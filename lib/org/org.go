//
// Organization membership is owned by a separate registry; this package
// only defines how the voting engine sees it: a group of member addresses,
// optionally weighted by stake, selected by a `Rep` at vote-open time.
//
package org

import (
	"fmt"

	"agoranet.io/agora/lib/common"
)

// Mode selects how signal is minted from a group.
type Mode string

const (
	// one member, one unit of signal
	Equal Mode = "EQUAL"
	// signal equals stake, 1:1
	Weighted Mode = "WEIGHTED"
)

func (m Mode) IsValid() bool {
	return m == Equal || m == Weighted
}

// Rep pairs an organization id with the minting mode applied to it.
type Rep struct {
	Mode Mode   `json:"mode"`
	ID   uint64 `json:"id"`
}

func NewEqualRep(id uint64) Rep {
	return Rep{Mode: Equal, ID: id}
}

func NewWeightedRep(id uint64) Rep {
	return Rep{Mode: Weighted, ID: id}
}

func (r Rep) String() string {
	return fmt.Sprintf("%s:%d", r.Mode, r.ID)
}

// Stakeholder is one member of a weighted group.
type Stakeholder struct {
	Address string        `json:"address"`
	Stake   common.Signal `json:"stake"`
}

// GroupProvider is the stake source. Both lookups distinguish
// "unavailable" (ok == false) from an empty group.
type GroupProvider interface {
	// GetEqualGroup returns the member addresses of the organization.
	GetEqualGroup(orgID uint64) (members []string, ok bool)

	// GetWeightedGroup returns the total stake issued and the
	// (member, stake) pairs of the organization.
	GetWeightedGroup(orgID uint64) (total common.Signal, holders []Stakeholder, ok bool)
}

// SupervisorChecker answers whether an already-authenticated account may
// run privileged operations for an organization. Signature verification
// happened upstream; this is pure policy.
type SupervisorChecker interface {
	IsOrganizationSupervisor(orgID uint64, address string) bool
}
