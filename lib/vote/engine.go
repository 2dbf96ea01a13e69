package vote

import (
	"encoding/json"
	"strings"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/observer"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/metrics"
	"agoranet.io/agora/lib/org"
	"agoranet.io/agora/lib/storage"
)

// Engine is the vote state machine over the ledger. The surrounding
// environment serializes calls: each one runs to completion with
// exclusive access to the storage backend.
type Engine struct {
	st     *storage.LevelDBBackend
	clock  Clock
	groups org.GroupProvider
}

func NewEngine(st *storage.LevelDBBackend, clock Clock, groups org.GroupProvider) *Engine {
	return &Engine{st: st, clock: clock, groups: groups}
}

// generateVoteID walks the persisted counter forward past occupied ids;
// the final value is persisted only once the open commits.
func (e *Engine) generateVoteID() (id uint64, err error) {
	var counter uint64
	if counter, err = getCounter(e.st, VoteIDCounterKey); err != nil {
		return
	}

	id = counter + 1
	for {
		var exists bool
		if exists, err = e.st.Has(GetStateKey(id)); err != nil {
			return
		}
		if !exists {
			return
		}
		id++
	}
}

func (e *Engine) generateThresholdID() (id uint64, err error) {
	var counter uint64
	if counter, err = getCounter(e.st, ThresholdIDCounterKey); err != nil {
		return
	}

	id = counter + 1
	for {
		var exists bool
		if exists, err = e.st.Has(GetThresholdConfigKey(id)); err != nil {
			return
		}
		if !exists {
			return
		}
		id++
	}
}

// open mints signal for a fresh vote id, resolves the threshold against
// the minted turnout and commits records, turnout and state in one
// create-only batch; a failure before the batch leaves the ledger
// untouched.
func (e *Engine) open(topic common.Cid, organization org.Rep, resolve func(common.Signal) (Threshold, error), duration uint64) (voteID uint64, err error) {
	now := e.clock.Height()

	var ends *uint64
	if duration > 0 {
		end := now + duration
		ends = &end
	}

	if voteID, err = e.generateVoteID(); err != nil {
		return
	}

	var items []storage.Item
	var turnout common.Signal
	if items, turnout, err = mintSignal(e.groups, voteID, organization); err != nil {
		return
	}

	var threshold Threshold
	if threshold, err = resolve(turnout); err != nil {
		return
	}
	if !threshold.ValidFor(turnout) {
		err = errors.ThresholdExceedsBounds
		return
	}

	state := NewState(topic, organization, turnout, threshold, now, ends)
	items = append(items, storage.Item{Key: GetStateKey(voteID), Value: state})

	if err = e.st.News(items...); err != nil {
		return
	}

	if err = putCounter(e.st, VoteIDCounterKey, voteID); err != nil {
		return
	}

	var openVotes uint64
	if openVotes, err = getCounter(e.st, OpenVoteCounterKey); err != nil {
		return
	}
	if err = putCounter(e.st, OpenVoteCounterKey, openVotes+1); err != nil {
		return
	}
	metrics.Vote.SetOpenVotes(openVotes + 1)

	observer.VoteObserver.Trigger(observer.EventNewVoteStarted, voteID)
	log.Debug("vote opened",
		"vote-id", voteID,
		"organization", organization,
		"turnout", turnout,
		"initialized", now,
	)

	return
}

// OpenVote opens a vote with an absolute signal threshold. A zero
// duration opens it without an expiry.
func (e *Engine) OpenVote(topic common.Cid, organization org.Rep, threshold Threshold, duration uint64) (uint64, error) {
	return e.open(topic, organization, func(common.Signal) (Threshold, error) {
		return threshold, nil
	}, duration)
}

// OpenPercentVote opens a vote whose threshold is a fraction of the
// minted turnout, resolved with ceiling rounding.
func (e *Engine) OpenPercentVote(topic common.Cid, organization org.Rep, threshold PercentThreshold, duration uint64) (uint64, error) {
	return e.open(topic, organization, func(turnout common.Signal) (Threshold, error) {
		return threshold.ToSignal(turnout)
	}, duration)
}

// RegisterThreshold stores an immutable threshold config and returns its
// fresh id; updating a rule means registering again.
func (e *Engine) RegisterThreshold(input ThresholdInput) (thresholdID uint64, err error) {
	if err = input.IsWellFormed(); err != nil {
		return
	}

	if thresholdID, err = e.generateThresholdID(); err != nil {
		return
	}

	config := NewThresholdConfig(thresholdID, input)
	if err = e.st.New(GetThresholdConfigKey(thresholdID), config); err != nil {
		return
	}
	if err = putCounter(e.st, ThresholdIDCounterKey, thresholdID); err != nil {
		return
	}
	metrics.Vote.AddRegisteredThresholds()

	observer.VoteObserver.Trigger(observer.EventThresholdSet, thresholdID)
	log.Debug("threshold registered", "threshold-id", thresholdID, "organization", config.Org)

	return
}

// InvokeThreshold opens a vote from a registered config, dispatching on
// the stored rule representation.
func (e *Engine) InvokeThreshold(thresholdID uint64, topic common.Cid, duration uint64) (uint64, error) {
	config, err := e.GetThresholdConfig(thresholdID)
	if err != nil {
		return 0, err
	}

	if config.Signal != nil {
		return e.OpenVote(topic, config.Org, *config.Signal, duration)
	}
	return e.OpenPercentVote(topic, config.Org, *config.Percent, duration)
}

// SubmitVote records a member's direction, revising any earlier one. The
// member record and the aggregate are committed in a single batch.
func (e *Engine) SubmitVote(voteID uint64, voter string, direction View, justification common.Cid) (err error) {
	var state State
	if state, err = e.GetState(voteID); err != nil {
		return
	}

	if state.Expired(e.clock.Height()) {
		return errors.VoteExpired
	}

	var oldRecord Record
	if err = e.st.Get(GetRecordKey(voteID, voter), &oldRecord); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.NoSignalForVoter
		}
		return
	}

	var newRecord Record
	if newRecord, err = oldRecord.SetView(direction, justification); err != nil {
		return
	}

	var newState State
	if newState, err = state.Apply(oldRecord.Magnitude, oldRecord.View, direction); err != nil {
		return
	}

	if err = e.st.Sets(
		storage.Item{Key: GetRecordKey(voteID, voter), Value: newRecord},
		storage.Item{Key: GetStateKey(voteID), Value: newState},
	); err != nil {
		return
	}
	metrics.Vote.AddAppliedVotes()

	observer.VoteObserver.Trigger(observer.EventVoted, voteID, voter, direction)
	log.Debug("vote applied",
		"vote-id", voteID,
		"voter", voter,
		"direction", direction,
		"in-favor", newState.InFavor,
		"against", newState.Against,
	)

	return
}

// ExtendVote moves the end height later, never earlier; extending an
// open-ended vote is a no-op.
func (e *Engine) ExtendVote(voteID uint64, blocksFromNow uint64) (err error) {
	var state State
	if state, err = e.GetState(voteID); err != nil {
		return
	}

	if state.Ends == nil {
		return nil
	}

	newEnd := e.clock.Height() + blocksFromNow
	if *state.Ends >= newEnd {
		return nil
	}

	if err = e.st.Set(GetStateKey(voteID), state.SetEnds(newEnd)); err != nil {
		return
	}
	log.Debug("vote extended", "vote-id", voteID, "ends", newEnd)

	return
}

// UpdateVoteTopic replaces the topic, optionally resetting the tallies.
// Member records keep their directions either way.
func (e *Engine) UpdateVoteTopic(voteID uint64, topic common.Cid, clearTallies bool) (err error) {
	var state State
	if state, err = e.GetState(voteID); err != nil {
		return
	}

	if err = e.st.Set(GetStateKey(voteID), state.UpdateTopic(topic, clearTallies)); err != nil {
		return
	}
	log.Debug("vote topic updated", "vote-id", voteID, "cleared", clearTallies)

	return
}

// GetState returns the aggregate for a vote id.
func (e *Engine) GetState(voteID uint64) (state State, err error) {
	if err = e.st.Get(GetStateKey(voteID), &state); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.VoteStateNotFound
		}
	}
	return
}

// GetRecord returns the member's vote record for a vote id.
func (e *Engine) GetRecord(voteID uint64, voter string) (record Record, err error) {
	if err = e.st.Get(GetRecordKey(voteID, voter), &record); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.NoSignalForVoter
		}
	}
	return
}

// GetRecords returns every member record of a vote in address order.
func (e *Engine) GetRecords(voteID uint64) (entries []RecordEntry, err error) {
	if _, err = e.GetState(voteID); err != nil {
		return
	}

	prefix := GetRecordKeyPrefix(voteID)
	iterFunc, closeFunc := e.st.GetIterator(prefix, false)
	defer closeFunc()

	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var record Record
		if err = json.Unmarshal(item.Value, &record); err != nil {
			return
		}

		entries = append(entries, RecordEntry{
			Address: strings.TrimPrefix(string(item.Key), prefix),
			Record:  record,
		})
	}

	return
}

// GetTurnout returns the total signal minted for a vote id.
func (e *Engine) GetTurnout(voteID uint64) (turnout common.Signal, err error) {
	if err = e.st.Get(GetTurnoutKey(voteID), &turnout); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.VoteStateNotFound
		}
	}
	return
}

// GetThresholdConfig returns a registered threshold config.
func (e *Engine) GetThresholdConfig(thresholdID uint64) (config ThresholdConfig, err error) {
	if err = e.st.Get(GetThresholdConfigKey(thresholdID), &config); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.ThresholdNotFound
		}
	}
	return
}

// GetOutcome resolves the aggregate against its threshold; it reads
// nothing beyond the aggregate itself.
func (e *Engine) GetOutcome(voteID uint64) (Outcome, error) {
	state, err := e.GetState(voteID)
	if err != nil {
		return "", err
	}
	return state.Outcome(), nil
}

// Height reports the engine clock, so callers rendering a state can
// evaluate expiry without another read.
func (e *Engine) Height() uint64 {
	return e.clock.Height()
}

// IsExpired reports whether the vote is past its end height.
func (e *Engine) IsExpired(voteID uint64) (bool, error) {
	state, err := e.GetState(voteID)
	if err != nil {
		return false, err
	}
	return state.Expired(e.clock.Height()), nil
}

// OpenVoteCount returns the diagnostic count of opened votes.
func (e *Engine) OpenVoteCount() (uint64, error) {
	return getCounter(e.st, OpenVoteCounterKey)
}

// Digest returns the canonical hash of the aggregate, for comparing
// independent re-executions of the same call sequence.
func (e *Engine) Digest(voteID uint64) (string, error) {
	state, err := e.GetState(voteID)
	if err != nil {
		return "", err
	}
	return StateDigest(state), nil
}
