// Package commitment implements a simple hash-based commitment
// scheme for committing to values before revealing them. The GG20
// rounds in pkg/gg20 do not use it.
package commitment

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/cronokirby/saferith"
)

// ErrMismatch is returned by Verify when the opened values do not
// hash to the committed digest.
var ErrMismatch = errors.New("commitment: opening does not match commitment")

// randomBits is the size of the nonce appended to committed values,
// matching the original source's RANDOM_BITS_REQUIRED.
const randomBits = 256

// Commitment is the digest produced by Commit.
type Commitment struct {
	Digest *saferith.Nat
}

// Opening is the full set of committed values (including the random
// nonce), to be revealed alongside the Commitment for verification.
type Opening struct {
	Values []*saferith.Nat
}

// Commit hashes values, concatenated with a fresh random nonce, and
// returns the resulting digest plus the opening needed to verify it
// later.
func Commit(values []*saferith.Nat) (Commitment, Opening, error) {
	buf := make([]byte, randomBits/8)
	if _, err := rand.Read(buf); err != nil {
		return Commitment{}, Opening{}, err
	}
	nonce := new(saferith.Nat).SetBytes(buf)

	inputs := make([]*saferith.Nat, len(values)+1)
	copy(inputs, values)
	inputs[len(values)] = nonce

	return Commitment{Digest: hashValues(inputs)}, Opening{Values: inputs}, nil
}

// Verify recomputes the digest of opening.Values and compares it
// against c.
func Verify(c Commitment, opening Opening) error {
	if hashValues(opening.Values).Eq(c.Digest) != 1 {
		return ErrMismatch
	}
	return nil
}

func hashValues(values []*saferith.Nat) *saferith.Nat {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Big().String()
	}
	joined := strings.Join(parts, "#")
	sum := sha256.Sum256([]byte(joined))
	return new(saferith.Nat).SetBytes(sum[:])
}

func (c Commitment) String() string {
	return fmt.Sprintf("0x%s", c.Digest.Big().Text(16))
}
