package series

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/Conqxeror/veloxx/value"
)

// RowKey is a hash of one row's values across a set of key columns, used by
// GroupBy and Join to bucket rows before falling back to an exact Value
// comparison. Grounded on the teacher's bucketed partition index
// (internal/pindex/bucketed/bucketed_partition_index.go), which hashes a
// row's key columns into a bucket id via xxhash before doing an exact
// comparison within the bucket; the algorithm here is the same two-phase
// hash-then-compare shape applied to in-memory Series instead of
// partitions.
type RowKey uint64

// HashRow computes a RowKey for row i across the given key Series, which
// must all share row i's DataFrame (equal length, i in range).
func HashRow(keys []*Series, i int) RowKey {
	h := xxhash.New()
	var buf [8]byte
	for _, s := range keys {
		if !s.valid.get(i) {
			h.Write([]byte{0})
			continue
		}
		h.Write([]byte{1})
		switch s.dtype {
		case value.I32:
			binary.LittleEndian.PutUint32(buf[:4], uint32(s.i32[i]))
			h.Write(buf[:4])
		case value.F64:
			binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(s.f64[i]))
			h.Write(buf[:8])
		case value.Bool:
			if s.b[i] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		case value.String:
			h.Write([]byte(s.str[i]))
		case value.DateTime:
			binary.LittleEndian.PutUint64(buf[:8], uint64(s.dt[i]))
			h.Write(buf[:8])
		}
	}
	return RowKey(h.Sum64())
}

// RowEqual reports whether row i of keysA and row j of keysB hold identical
// values across all key columns pairwise, including null-equals-null.
// Callers use this after HashRow buckets two candidate rows together, to
// rule out hash collisions exactly.
func RowEqual(keysA []*Series, i int, keysB []*Series, j int) bool {
	if len(keysA) != len(keysB) {
		return false
	}
	for k := range keysA {
		if !keysA[k].At(i).Equal(keysB[k].At(j)) {
			return false
		}
	}
	return true
}
