package consensus

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/storage"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func votePrefix(id uint64) []byte {
	key := make([]byte, 9)
	key[0] = voteKeyPrefix
	binary.BigEndian.PutUint64(key[1:], id)
	return key
}

func voteKey(id uint64, voter util.Uint160) []byte {
	return append(votePrefix(id), voter[:]...)
}

func putVote(s storage.Store, id uint64, v common.NodeVote) error {
	data, err := common.Marshal(&v)
	if err != nil {
		return fmt.Errorf("marshal vote: %w", err)
	}
	return storage.Put(s, voteKey(id, v.Voter), data)
}

func hasVote(s storage.Store, id uint64, voter util.Uint160) (bool, error) {
	_, err := s.Get(voteKey(id, voter))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// listVotes returns the ballots of an operation in voter account order. The
// tally never depends on this order.
func listVotes(s storage.Store, id uint64) ([]common.NodeVote, error) {
	var (
		votes  []common.NodeVote
		decErr error
	)
	err := s.Seek(votePrefix(id), func(k, v []byte) bool {
		var nv common.NodeVote
		if decErr = common.Unmarshal(v, &nv); decErr != nil {
			return false
		}
		votes = append(votes, nv)
		return true
	})
	if err != nil {
		return nil, err
	}
	if decErr != nil {
		return nil, fmt.Errorf("list votes: %w", decErr)
	}
	return votes, nil
}

// purgeVotes removes every ballot of an operation.
func purgeVotes(s storage.Store, id uint64) error {
	var keys [][]byte
	err := s.Seek(votePrefix(id), func(k, v []byte) bool {
		keys = append(keys, bytes.Clone(k))
		return true
	})
	if err != nil {
		return err
	}

	for _, k := range keys {
		if err := storage.Delete(s, k); err != nil {
			return err
		}
	}
	return nil
}
