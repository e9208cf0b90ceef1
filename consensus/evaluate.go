package consensus

import (
	"fmt"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/event"
	"github.com/consentry-dev/consentry/history"
	"github.com/consentry-dev/consentry/registry"
	"github.com/consentry-dev/consentry/reputation"
	"github.com/consentry-dev/consentry/storage"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"go.uber.org/zap"
)

// tally is the ballot count snapshot of one operation. Abstentions are part
// of total only.
type tally struct {
	total   uint32
	approve uint32
	deny    uint32
}

func tallyVotes(votes []common.NodeVote) tally {
	var t tally
	for i := range votes {
		t.total++
		switch votes[i].Choice {
		case common.VoteApprove:
			t.approve++
		case common.VoteDeny:
			t.deny++
		}
	}
	return t
}

// verdict derives the approval decision from a tally under the configured
// rule. Without quorum the verdict is always denial. An all-abstain tally
// counts as zero percent approval.
func (e *Engine) verdict(t tally, thresholdMet bool) bool {
	if !thresholdMet {
		return false
	}

	switch e.cfg.Rule {
	case RuleAbsolute:
		return t.approve >= e.cfg.FixedMajority
	default:
		voting := t.approve + t.deny
		if voting == 0 {
			return false
		}
		return t.approve*100/voting >= e.cfg.ApprovalThreshold
	}
}

// evaluate runs the consensus check over the recorded ballots of a pending
// operation. Below quorum it returns a nil result and changes nothing,
// unless the ballot count already hit the finalization cap. On finalization
// it archives the operation with its result, purges the ballots, applies
// reputation feedback and returns the events to emit.
func (e *Engine) evaluate(s storage.Store, id uint64, op common.Operation) (*common.ConsensusResult, []event.Event, error) {
	votes, err := listVotes(s, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list votes: %w", err)
	}

	t := tallyVotes(votes)
	thresholdMet := t.total >= e.cfg.MinimumVotes

	if !thresholdMet {
		limit := e.cfg.FinalizeCap
		if limit == 0 {
			limit, err = registry.Count(s)
			if err != nil {
				return nil, nil, fmt.Errorf("count nodes: %w", err)
			}
		}
		// An operation nobody voted on never finalizes.
		if t.total == 0 || t.total < limit {
			return nil, nil, nil
		}
	}

	res := common.ConsensusResult{
		Approved:     e.verdict(t, thresholdMet),
		ApproveVotes: t.approve,
		DenyVotes:    t.deny,
		TotalVotes:   t.total,
		ThresholdMet: thresholdMet,
	}

	if err := history.Put(s, history.Entry{ID: id, Operation: op, Result: res}); err != nil {
		return nil, nil, fmt.Errorf("archive operation: %w", err)
	}
	if err := deletePending(s, id); err != nil {
		return nil, nil, fmt.Errorf("remove pending operation: %w", err)
	}
	if err := purgeVotes(s, id); err != nil {
		return nil, nil, fmt.Errorf("purge votes: %w", err)
	}

	changes, err := reputation.Apply(s, votes, res.Approved, e.cfg.reputationParams())
	if err != nil {
		return nil, nil, fmt.Errorf("update reputation: %w", err)
	}

	evs := []event.Event{event.ConsensusReached{ID: id, Result: res}}
	if res.Approved {
		evs = append(evs, event.OperationExecuted{ID: id, Type: op.Type})
	}
	for _, ch := range changes {
		if ch.Flagged {
			evs = append(evs, event.MaliciousNodeDetected{Node: ch.Node, Reputation: ch.Score})
			e.log.Warn("node under trust floor",
				zap.String("node", address.Uint160ToString(ch.Node)),
				zap.Uint32("reputation", ch.Score))
		}
	}

	e.log.Info("operation finalized",
		zap.Uint64("id", id),
		zap.Bool("approved", res.Approved),
		zap.Uint32("approve", t.approve),
		zap.Uint32("deny", t.deny),
		zap.Uint32("total", t.total),
		zap.Bool("quorum", thresholdMet))

	return &res, evs, nil
}
