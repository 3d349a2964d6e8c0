package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"mazebots.ai/internal/sim/cell"
)

// EncodeCells encodes a flat run of cell flags into base64(varint pairs).
// The pairs are (flags, run_len) repeated.
func EncodeCells(types []cell.Type) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(types) {
		t := types[i]
		run := 1
		for j := i + 1; j < len(types) && types[j] == t && run < 1<<31; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(t))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func DecodeCells(b64 string) ([]cell.Type, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []cell.Type
	for i := 0; i < len(raw); {
		t, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if t > uint64(cell.OpenAll) {
			return nil, fmt.Errorf("cell flags out of range: %d", t)
		}
		if run == 0 || run > 1<<31 {
			return nil, fmt.Errorf("bad run length %d", run)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, cell.Type(t))
		}
	}
	return out, nil
}
