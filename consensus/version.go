package consensus

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consentry-dev/consentry/storage"
)

// schemaVersion is the storage layout version this build understands.
const schemaVersion = 1

// checkSchema verifies the schema version of the underlying store. Fresh
// storage is stamped with the current version, a mismatching one is
// rejected so that an incompatible layout is never read half-way.
func (e *Engine) checkSchema() error {
	data, err := e.cfg.Store.Get([]byte{versionKey})
	if errors.Is(err, storage.ErrKeyNotFound) {
		raw := make([]byte, 4)
		binary.LittleEndian.PutUint32(raw, schemaVersion)
		if err := storage.Put(e.cfg.Store, []byte{versionKey}, raw); err != nil {
			return fmt.Errorf("stamp schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if len(data) != 4 {
		return fmt.Errorf("invalid schema version record of %d bytes", len(data))
	}
	if v := binary.LittleEndian.Uint32(data); v != schemaVersion {
		return fmt.Errorf("unsupported storage schema version %d (expected %d)", v, schemaVersion)
	}
	return nil
}
