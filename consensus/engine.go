package consensus

import (
	"errors"
	"fmt"
	"sync"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/event"
	"github.com/consentry-dev/consentry/history"
	"github.com/consentry-dev/consentry/registry"
	"github.com/consentry-dev/consentry/reputation"
	"github.com/consentry-dev/consentry/storage"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

// Engine runs quorum voting over privileged OS operations. Ballots are
// collected through Cast; Finalize runs the evaluator, so the embedding
// runtime decides whether verdicts are derived eagerly after every ballot
// or once voting has settled.
//
// All methods are safe for concurrent use. A state-changing call either
// persists completely or leaves the store untouched, and notifications are
// delivered only after the change set persisted.
type Engine struct {
	mu   sync.Mutex
	cfg  Config
	log  *zap.Logger
	sink event.Sink
}

// New creates an Engine over cfg.Store and verifies the storage schema
// version, stamping fresh storage with the current one.
func New(cfg Config) (*Engine, error) {
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		cfg:  cfg,
		log:  cfg.Logger,
		sink: cfg.Sink,
	}
	if err := e.checkSchema(); err != nil {
		return nil, err
	}

	e.log.Info("consensus engine initialized",
		zap.Uint32("minimumVotes", cfg.MinimumVotes),
		zap.Stringer("rule", cfg.Rule),
		zap.Uint32("approvalThreshold", cfg.ApprovalThreshold),
		zap.Uint32("fixedMajority", cfg.FixedMajority))
	return e, nil
}

// notify stamps and delivers envelopes. Called only after a successful
// persist.
func (e *Engine) notify(height uint64, evs ...event.Event) {
	for _, ev := range evs {
		e.sink.Notify(event.Envelope{ID: uuid.New(), Height: height, Event: ev})
	}
}

// Register adds a node account to the voter registry with the given role
// and seeds its reputation with the configured baseline. Registration is
// one-shot: a second attempt fails with ErrAlreadyRegistered.
func (e *Engine) Register(node util.Uint160, role common.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %d", role)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cache := storage.NewMemCached(e.cfg.Store)

	_, ok, err := registry.Get(cache, node)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}
	if ok {
		return ErrAlreadyRegistered
	}

	height := e.cfg.Clock.Height()
	err = registry.Put(cache, registry.Node{ID: node, Role: role, RegisteredAt: height})
	if err != nil {
		return fmt.Errorf("store node: %w", err)
	}
	if err := reputation.Init(cache, node, e.cfg.BaselineReputation); err != nil {
		return fmt.Errorf("seed reputation: %w", err)
	}
	if err := cache.Persist(); err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	e.notify(height, event.NodeRegistered{Node: node, Role: role})
	e.log.Info("node registered",
		zap.String("node", address.Uint160ToString(node)),
		zap.Stringer("role", role))
	return nil
}

// Submit records a new privileged operation in the pending set and returns
// its identifier. Any authenticated account may ask; only registered nodes
// decide. Structurally broken requests fail with ErrInvalidOperation.
func (e *Engine) Submit(requester util.Uint160, typ common.OpType, class common.Class, payload []byte, device string) (uint64, error) {
	if !typ.Valid() || !class.Valid() || len(payload) == 0 {
		return 0, ErrInvalidOperation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cache := storage.NewMemCached(e.cfg.Store)

	id, err := nextID(cache)
	if err != nil {
		return 0, fmt.Errorf("reserve id: %w", err)
	}

	height := e.cfg.Clock.Height()
	op := common.Operation{
		Requester: requester,
		Type:      typ,
		Class:     class,
		Payload:   payload,
		Device:    device,
		Height:    height,
	}
	if err := putPending(cache, id, op); err != nil {
		return 0, fmt.Errorf("store operation: %w", err)
	}

	digest, err := op.Digest()
	if err != nil {
		return 0, fmt.Errorf("digest operation: %w", err)
	}

	if err := cache.Persist(); err != nil {
		return 0, fmt.Errorf("persist: %w", err)
	}

	e.notify(height, event.OperationSubmitted{
		ID:        id,
		Requester: requester,
		Type:      typ,
		Device:    device,
		Digest:    digest,
	})
	e.log.Info("operation submitted",
		zap.Uint64("id", id),
		zap.Stringer("type", typ),
		zap.Stringer("class", class),
		zap.String("device", device),
		zap.String("digest", common.DigestString(digest)))
	return id, nil
}

// Cast records the ballot of a registered node on a pending operation. The
// first recorded choice of a node is final; casting again fails with
// ErrAlreadyVoted. Ballots on finalized operations fail with
// ErrConsensusReached.
func (e *Engine) Cast(id uint64, voter util.Uint160, choice common.Vote, reason string) error {
	if !choice.Valid() {
		return fmt.Errorf("invalid vote %d", choice)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cache := storage.NewMemCached(e.cfg.Store)

	node, ok, err := registry.Get(cache, voter)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}
	if !ok {
		return ErrNodeNotRegistered
	}

	_, ok, err = getPending(cache, id)
	if err != nil {
		return fmt.Errorf("read operation: %w", err)
	}
	if !ok {
		finalized, err := history.Has(cache, id)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if finalized {
			return ErrConsensusReached
		}
		return ErrOperationNotFound
	}

	voted, err := hasVote(cache, id, voter)
	if err != nil {
		return fmt.Errorf("read votes: %w", err)
	}
	if voted {
		return ErrAlreadyVoted
	}

	height := e.cfg.Clock.Height()
	err = putVote(cache, id, common.NodeVote{
		Voter:  voter,
		Role:   node.Role,
		Choice: choice,
		Reason: reason,
		Height: height,
	})
	if err != nil {
		return fmt.Errorf("store vote: %w", err)
	}
	if err := cache.Persist(); err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	e.notify(height, event.VoteCast{ID: id, Voter: voter, Role: node.Role, Choice: choice})
	e.log.Info("vote cast",
		zap.Uint64("id", id),
		zap.String("voter", address.Uint160ToString(voter)),
		zap.Stringer("role", node.Role),
		zap.Stringer("choice", choice))
	return nil
}

// Finalize runs the consensus check on a pending operation. Below quorum it
// changes nothing and returns a nil result, unless the ballot count already
// hit the finalization cap. Ids outside the pending set fail with
// ErrOperationNotFound whether they were finalized earlier or never
// existed. Given the same ballots, the outcome does not depend on how often
// Finalize was tried before.
func (e *Engine) Finalize(id uint64) (*common.ConsensusResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := storage.NewMemCached(e.cfg.Store)

	op, ok, err := getPending(cache, id)
	if err != nil {
		return nil, fmt.Errorf("read operation: %w", err)
	}
	if !ok {
		return nil, ErrOperationNotFound
	}

	res, evs, err := e.evaluate(cache, id, op)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	if err := cache.Persist(); err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}

	e.notify(e.cfg.Clock.Height(), evs...)
	return res, nil
}

// SetTrust records the advisory trust level of a device tag, silently
// clamping values above registry.MaxTrust. The stored level is returned.
func (e *Engine) SetTrust(device string, level uint32) (uint32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := storage.NewMemCached(e.cfg.Store)

	stored, err := registry.SetTrust(cache, device, level)
	if err != nil {
		return 0, fmt.Errorf("store trust: %w", err)
	}
	if err := cache.Persist(); err != nil {
		return 0, fmt.Errorf("persist: %w", err)
	}

	e.notify(e.cfg.Clock.Height(), event.TrustUpdated{Device: device, Level: stored})
	e.log.Info("device trust updated",
		zap.String("device", device),
		zap.Uint32("level", stored))
	return stored, nil
}

// SetStateRoot records the OS state root computed by a registered node.
// Unregistered updaters fail with ErrInsufficientPermissions.
func (e *Engine) SetStateRoot(updater util.Uint160, root util.Uint256) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := storage.NewMemCached(e.cfg.Store)

	_, ok, err := registry.Get(cache, updater)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}
	if !ok {
		return ErrInsufficientPermissions
	}

	if err := storage.Put(cache, []byte{stateRootKey}, root.BytesBE()); err != nil {
		return fmt.Errorf("store state root: %w", err)
	}
	if err := cache.Persist(); err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	e.notify(e.cfg.Clock.Height(), event.StateRootUpdated{Root: root, Updater: updater})
	e.log.Info("state root updated",
		zap.String("root", root.StringLE()),
		zap.String("updater", address.Uint160ToString(updater)))
	return nil
}

// IsRegistered reports whether node is in the voter registry.
func (e *Engine) IsRegistered(node util.Uint160) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok, err := registry.Get(e.cfg.Store, node)
	return ok, err
}

// RoleOf returns the role of a registered node.
func (e *Engine) RoleOf(node util.Uint160) (common.Role, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok, err := registry.Get(e.cfg.Store, node)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNodeNotRegistered
	}
	return n.Role, nil
}

// ReputationOf returns the reputation score of a registered node.
func (e *Engine) ReputationOf(node util.Uint160) (uint32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	score, ok, err := reputation.Score(e.cfg.Store, node)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNodeNotRegistered
	}
	return score, nil
}

// Nodes returns the voter registry in account order.
func (e *Engine) Nodes() ([]registry.Node, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return registry.List(e.cfg.Store)
}

// TrustOf returns the advisory trust level of a device tag. The second
// return is false when no level was ever recorded.
func (e *Engine) TrustOf(device string) (uint32, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return registry.Trust(e.cfg.Store, device)
}

// Devices returns every recorded device trust entry in tag order.
func (e *Engine) Devices() ([]registry.Device, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return registry.Devices(e.cfg.Store)
}

// Operation returns a pending operation by id.
func (e *Engine) Operation(id uint64) (common.Operation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	op, ok, err := getPending(e.cfg.Store, id)
	if err != nil {
		return common.Operation{}, err
	}
	if !ok {
		return common.Operation{}, ErrOperationNotFound
	}
	return op, nil
}

// Pending returns every operation awaiting a verdict in id order.
func (e *Engine) Pending() ([]PendingOperation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return listPending(e.cfg.Store)
}

// Votes returns the ballots of a pending operation in voter account order.
// Ballots of finalized operations are purged, so referencing one fails with
// ErrConsensusReached.
func (e *Engine) Votes(id uint64) ([]common.NodeVote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok, err := getPending(e.cfg.Store, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		finalized, err := history.Has(e.cfg.Store, id)
		if err != nil {
			return nil, err
		}
		if finalized {
			return nil, ErrConsensusReached
		}
		return nil, ErrOperationNotFound
	}
	return listVotes(e.cfg.Store, id)
}

// Archived returns the archive entry of a finalized operation. Pending and
// unknown ids fail with ErrOperationNotFound.
func (e *Engine) Archived(id uint64) (history.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok, err := history.Get(e.cfg.Store, id)
	if err != nil {
		return history.Entry{}, err
	}
	if !ok {
		return history.Entry{}, ErrOperationNotFound
	}
	return entry, nil
}

// Result returns the consensus result of a finalized operation. Pending and
// unknown ids fail with ErrOperationNotFound.
func (e *Engine) Result(id uint64) (common.ConsensusResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok, err := history.Get(e.cfg.Store, id)
	if err != nil {
		return common.ConsensusResult{}, err
	}
	if !ok {
		return common.ConsensusResult{}, ErrOperationNotFound
	}
	return entry.Result, nil
}

// History returns every archived entry in submission order.
func (e *Engine) History() ([]history.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return history.List(e.cfg.Store)
}

// StateRoot returns the last recorded OS state root. The zero root means
// none was recorded yet.
func (e *Engine) StateRoot() (util.Uint256, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, err := e.cfg.Store.Get([]byte{stateRootKey})
	if errors.Is(err, storage.ErrKeyNotFound) {
		return util.Uint256{}, nil
	}
	if err != nil {
		return util.Uint256{}, err
	}
	return util.Uint256DecodeBytesBE(data)
}
