package consensus

import (
	"errors"
	"fmt"

	"github.com/consentry-dev/consentry/event"
	"github.com/consentry-dev/consentry/reputation"
	"github.com/consentry-dev/consentry/storage"
	"go.uber.org/zap"
)

// Rule is an enumeration for verdict rules.
type Rule int

const (
	// RulePercentage approves an operation when the approval share of
	// non-abstaining ballots reaches ApprovalThreshold percent. This is
	// the canonical rule.
	RulePercentage Rule = iota

	// RuleAbsolute approves an operation when at least FixedMajority
	// approving ballots were cast.
	RuleAbsolute
)

// String implements fmt.Stringer.
func (r Rule) String() string {
	switch r {
	case RulePercentage:
		return "percentage"
	case RuleAbsolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// Default engine parameters. Zero values in Config select these.
const (
	DefaultMinimumVotes       = 3
	DefaultApprovalThreshold  = 60
	DefaultFixedMajority      = 3
	DefaultReward             = 1
	DefaultPenalty            = 2
	DefaultTrustFloor         = 50
	DefaultBaselineReputation = 100
)

// Config collects the collaborators and consensus parameters of an Engine.
type Config struct {
	// Store persists all engine state. Required. The engine does not own
	// the store; closing it is up to the caller.
	Store storage.Store

	// Clock supplies logical heights. Required.
	Clock Clock

	// Sink receives engine notifications. Discarded by default.
	Sink event.Sink

	// Logger receives engine diagnostics. Disabled by default.
	Logger *zap.Logger

	// MinimumVotes is the quorum size: ballots of any kind needed before
	// a verdict may be derived.
	MinimumVotes uint32

	// Rule selects how the verdict is derived from the tally.
	Rule Rule

	// ApprovalThreshold is the approval percentage required by
	// RulePercentage, in the 1..100 range.
	ApprovalThreshold uint32

	// FixedMajority is the approving ballot count required by
	// RuleAbsolute.
	FixedMajority uint32

	// Reward and Penalty set how far a score moves after finalization,
	// TrustFloor is the score under which a node is flagged.
	Reward     uint32
	Penalty    uint32
	TrustFloor uint32

	// BaselineReputation seeds the score of newly registered nodes.
	BaselineReputation uint32

	// FinalizeCap force-finalizes an operation once its ballot count
	// reaches the cap even without quorum. Zero derives the cap from the
	// registered node count at evaluation time.
	FinalizeCap uint32
}

func (c *Config) normalize() error {
	if c.Store == nil {
		return errors.New("nil store")
	}
	if c.Clock == nil {
		return errors.New("nil clock")
	}
	if c.Sink == nil {
		c.Sink = event.NopSink{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.MinimumVotes == 0 {
		c.MinimumVotes = DefaultMinimumVotes
	}
	if c.ApprovalThreshold == 0 {
		c.ApprovalThreshold = DefaultApprovalThreshold
	}
	if c.ApprovalThreshold > 100 {
		return fmt.Errorf("approval threshold %d out of range", c.ApprovalThreshold)
	}
	if c.FixedMajority == 0 {
		c.FixedMajority = DefaultFixedMajority
	}
	if c.Reward == 0 {
		c.Reward = DefaultReward
	}
	if c.Penalty == 0 {
		c.Penalty = DefaultPenalty
	}
	if c.TrustFloor == 0 {
		c.TrustFloor = DefaultTrustFloor
	}
	if c.BaselineReputation == 0 {
		c.BaselineReputation = DefaultBaselineReputation
	}

	switch c.Rule {
	case RulePercentage, RuleAbsolute:
	default:
		return fmt.Errorf("unknown rule %d", c.Rule)
	}
	return nil
}

func (c *Config) reputationParams() reputation.Params {
	return reputation.Params{
		Reward:     c.Reward,
		Penalty:    c.Penalty,
		TrustFloor: c.TrustFloor,
	}
}
