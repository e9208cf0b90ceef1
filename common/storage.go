package common

import (
	"github.com/nspcc-dev/neo-go/pkg/io"
)

// Marshal serializes s into its canonical binary form.
func Marshal(s io.Serializable) ([]byte, error) {
	w := io.NewBufBinWriter()
	s.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// Unmarshal deserializes s from data produced by Marshal.
func Unmarshal(data []byte, s io.Serializable) error {
	r := io.NewBinReaderFromBuf(data)
	s.DecodeBinary(r)
	return r.Err
}
