package osmpbf

import (
	"sort"

	"github.com/AMDmi3/osmium/osmpbf/internal/pbfproto"
)

// interimStringTable implements spec.md §4.2: a content-addressed interner
// that hands out interim ids (1-based, monotonic, insertion order) during
// encoding, then computes a frequency-sorted permutation to final ids once
// a block's full multiset of strings is known.
//
// No encoded field is allowed to carry an interim id past the flush
// boundary; every encoder that records a string must have its reference
// rewritten by mapID during flush (see Encoder.remapStringIDs).
type interimStringTable struct {
	ids    map[string]int32 // string -> interim id
	order  []string         // order[i] is the string for interim id i+1
	counts []int

	finalOf []int32 // interim id -> final id, valid only after finalize
}

func newInterimStringTable() *interimStringTable {
	return &interimStringTable{ids: make(map[string]int32)}
}

// record returns s's interim id, allocating one on first use. The empty
// string never participates and always returns 0.
func (t *interimStringTable) record(s string) int32 {
	if s == "" {
		return 0
	}
	if id, ok := t.ids[s]; ok {
		t.counts[id-1]++
		return id
	}
	id := int32(len(t.order) + 1)
	t.ids[s] = id
	t.order = append(t.order, s)
	t.counts = append(t.counts, 1)
	return id
}

// finalizeTable sorts interim strings by descending usage count (ties
// broken by ascending byte-wise comparison for determinism), writes them
// into out at indices 1..N with index 0 bound to the empty string, and
// builds the interim->final id map used by subsequent calls to mapID.
func (t *interimStringTable) finalizeTable(out *pbfproto.StringTable) {
	n := len(t.order)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := t.counts[order[a]], t.counts[order[b]]
		if ca != cb {
			return ca > cb
		}
		return t.order[order[a]] < t.order[order[b]]
	})

	out.S = make([][]byte, n+1)
	out.S[0] = []byte("")
	t.finalOf = make([]int32, n+1) // indexed by interim id; finalOf[0] stays 0
	for finalIdx, interimIdx := range order {
		finalID := int32(finalIdx + 1)
		out.S[finalID] = []byte(t.order[interimIdx])
		t.finalOf[interimIdx+1] = finalID
	}
}

// mapID returns the final id for an interim id. Valid only after
// finalizeTable has run for the current block. interimID 0 (the empty
// string, e.g. an empty user name or relation role) maps to 0.
func (t *interimStringTable) mapID(interimID int32) int32 {
	return t.finalOf[interimID]
}

func (t *interimStringTable) clear() {
	t.ids = make(map[string]int32)
	t.order = t.order[:0]
	t.counts = t.counts[:0]
	t.finalOf = nil
}

func (t *interimStringTable) len() int {
	return len(t.order)
}
