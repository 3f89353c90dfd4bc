// Package party defines participant identifiers shared across the
// secret-sharing, Paillier, and GG20 packages.
package party

import (
	"sort"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/curve"
)

// ID identifies a single protocol participant. IDs are opaque strings
// but, per GG20's Shamir-sharing convention, are expected to map to
// a dense ordinal range starting at 1 via Scalar below.
type ID string

// IDSlice is a sortable collection of IDs.
type IDSlice []ID

func (s IDSlice) Len() int           { return len(s) }
func (s IDSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s IDSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Sorted returns a sorted copy of s.
func (s IDSlice) Sorted() IDSlice {
	out := make(IDSlice, len(s))
	copy(out, s)
	sort.Sort(out)
	return out
}

// Ordinals assigns each ID in s its 1-based position in sorted order,
// matching the original source's convention of numbering participants
// 1..n and using that number directly as their Shamir x-coordinate.
func (s IDSlice) Ordinals() map[ID]uint64 {
	sorted := s.Sorted()
	out := make(map[ID]uint64, len(sorted))
	for i, id := range sorted {
		out[id] = uint64(i + 1)
	}
	return out
}

// Scalar returns the Z_q representation of id's ordinal position
// within all, for use as a Shamir evaluation point.
func (id ID) Scalar(all IDSlice) curve.Scalar {
	ordinals := all.Ordinals()
	ordinal, ok := ordinals[id]
	if !ok {
		panic("party: id not present in party set")
	}
	return curve.NewScalar(new(saferith.Nat).SetUint64(ordinal))
}
