package commitment_test

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/commitment"
	"github.com/stretchr/testify/require"
)

func TestCommitAndVerify(t *testing.T) {
	values := []*saferith.Nat{
		new(saferith.Nat).SetUint64(1),
		new(saferith.Nat).SetUint64(2),
		new(saferith.Nat).SetUint64(3),
	}

	c, opening, err := commitment.Commit(values)
	require.NoError(t, err)
	require.NoError(t, commitment.Verify(c, opening))
}

func TestVerifyRejectsTamperedOpening(t *testing.T) {
	values := []*saferith.Nat{new(saferith.Nat).SetUint64(1)}

	c, opening, err := commitment.Commit(values)
	require.NoError(t, err)

	opening.Values[0] = new(saferith.Nat).SetUint64(999)
	require.ErrorIs(t, commitment.Verify(c, opening), commitment.ErrMismatch)
}

func TestCommitIsRandomized(t *testing.T) {
	values := []*saferith.Nat{new(saferith.Nat).SetUint64(7)}

	c1, _, err := commitment.Commit(values)
	require.NoError(t, err)
	c2, _, err := commitment.Commit(values)
	require.NoError(t, err)

	require.NotEqual(t, c1.Digest.Big().String(), c2.Digest.Big().String())
}
