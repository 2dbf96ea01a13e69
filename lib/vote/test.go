package vote

import (
	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/storage"
)

func NewTestEngine() (*Engine, *ManualClock, *org.Registry) {
	st := storage.NewTestMemoryLevelDBBackend()
	clock := NewManualClock(0)
	registry := org.NewRegistry()

	return NewEngine(st, clock, registry), clock, registry
}

// TestMakeEqualOrg sets up an organization with three equally weighted
// members under the returned supervisor.
func TestMakeEqualOrg(registry *org.Registry, orgID uint64) (supervisor string, members []string) {
	supervisor = "GSUPERVISOR"
	members = []string{"GALICE", "GBOB", "GCAROL"}

	registry.AddOrganization(orgID, supervisor)
	for _, m := range members {
		registry.AddMember(orgID, m, common.Signal(1))
	}

	return
}

// TestMakeWeightedOrg sets up an organization with stakes {A:10, B:30}.
func TestMakeWeightedOrg(registry *org.Registry, orgID uint64) (supervisor string) {
	supervisor = "GSUPERVISOR"

	registry.AddOrganization(orgID, supervisor)
	registry.AddMember(orgID, "GALICE", common.Signal(10))
	registry.AddMember(orgID, "GBOB", common.Signal(30))

	return
}
