package vote

import (
	"sort"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/storage"
)

// Signal minting converts a stake-source snapshot into per-member vote
// records plus one turnout record for the vote id. The records are
// returned as storage items so the caller commits them in the same
// create-only batch as the vote state; the turnout key existing already
// means the vote id was minted before, so a second mint cannot
// double-issue.

func mintEqualSignal(groups org.GroupProvider, voteID uint64, orgID uint64) (items []storage.Item, total common.Signal, err error) {
	members, ok := groups.GetEqualGroup(orgID)
	if !ok {
		err = errors.EqualGroupUnavailable.Clone().SetData("organization", orgID)
		return
	}

	// 1 person 1 vote despite any weightings in org
	if total, err = common.Signal(1).MultUint64(uint64(len(members))); err != nil {
		return
	}

	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)

	for _, address := range sorted {
		items = append(items, storage.Item{
			Key:   GetRecordKey(voteID, address),
			Value: NewRecord(common.Signal(1)),
		})
	}
	items = append(items, storage.Item{Key: GetTurnoutKey(voteID), Value: total})

	return
}

func mintWeightedSignal(groups org.GroupProvider, voteID uint64, orgID uint64) (items []storage.Item, total common.Signal, err error) {
	total, holders, ok := groups.GetWeightedGroup(orgID)
	if !ok {
		err = errors.WeightedGroupUnavailable.Clone().SetData("organization", orgID)
		return
	}

	if total > common.MaximumIssuance {
		err = errors.MaximumIssuanceReached
		return
	}

	sorted := make([]org.Stakeholder, len(holders))
	copy(sorted, holders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Address < sorted[j].Address })

	for _, holder := range sorted {
		items = append(items, storage.Item{
			Key:   GetRecordKey(voteID, holder.Address),
			Value: NewRecord(holder.Stake),
		})
	}
	items = append(items, storage.Item{Key: GetTurnoutKey(voteID), Value: total})

	return
}

func mintSignal(groups org.GroupProvider, voteID uint64, organization org.Rep) ([]storage.Item, common.Signal, error) {
	switch organization.Mode {
	case org.Weighted:
		return mintWeightedSignal(groups, voteID, organization.ID)
	case org.Equal:
		return mintEqualSignal(groups, voteID, organization.ID)
	}

	return nil, 0, errors.BadRequestParameter.Clone().SetData("mode", string(organization.Mode))
}
