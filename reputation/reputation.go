package reputation

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/storage"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

const scoreKeyPrefix = 'r'

// Params tunes how scores move after a finalization.
type Params struct {
	// Reward is added to the score of a voter aligned with the verdict.
	Reward uint32

	// Penalty is subtracted from the score of a voter misaligned with the
	// verdict, saturating at zero.
	Penalty uint32

	// TrustFloor is the score under which a node is flagged.
	TrustFloor uint32
}

// Change describes one score movement produced by Apply.
type Change struct {
	Node    util.Uint160
	Aligned bool
	Score   uint32
	Flagged bool
}

func scoreKey(id util.Uint160) []byte {
	return append([]byte{scoreKeyPrefix}, id[:]...)
}

// Init seeds the baseline score of a freshly registered node.
func Init(s storage.Store, id util.Uint160, baseline uint32) error {
	return put(s, id, baseline)
}

// Score returns the current reputation score of id. The second return is
// false when no score was ever recorded.
func Score(s storage.Store, id util.Uint160) (uint32, bool, error) {
	data, err := s.Get(scoreKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(data) != 4 {
		return 0, false, fmt.Errorf("invalid reputation record of %d bytes", len(data))
	}
	return binary.LittleEndian.Uint32(data), true, nil
}

// Apply moves the score of every non-abstaining voter according to whether
// its ballot matched the verdict, one Change per moved score in ballot
// order. Nodes left under the trust floor come back flagged.
func Apply(s storage.Store, votes []common.NodeVote, approved bool, prm Params) ([]Change, error) {
	changes := make([]Change, 0, len(votes))
	for i := range votes {
		v := &votes[i]
		if v.Choice == common.VoteAbstain {
			continue
		}

		aligned := (v.Choice == common.VoteApprove) == approved

		score, _, err := Score(s, v.Voter)
		if err != nil {
			return nil, err
		}

		if aligned {
			score += prm.Reward
		} else if score > prm.Penalty {
			score -= prm.Penalty
		} else {
			score = 0
		}

		if err := put(s, v.Voter, score); err != nil {
			return nil, err
		}

		changes = append(changes, Change{
			Node:    v.Voter,
			Aligned: aligned,
			Score:   score,
			Flagged: score < prm.TrustFloor,
		})
	}
	return changes, nil
}

func put(s storage.Store, id util.Uint160, score uint32) error {
	raw := make([]byte, 4)
	binary.LittleEndian.PutUint32(raw, score)
	return storage.Put(s, scoreKey(id), raw)
}
