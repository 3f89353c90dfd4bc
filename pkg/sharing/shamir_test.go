package sharing_test

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/curve"
	"github.com/luxfi/gg20/pkg/sharing"
	"github.com/stretchr/testify/require"
)

func TestSplitAndRecoverAllShares(t *testing.T) {
	secret := curve.NewScalar(new(saferith.Nat).SetUint64(1234))
	shares, err := sharing.Split(secret, 6, 3)
	require.NoError(t, err)
	require.Len(t, shares, 6)

	recovered, err := sharing.Recover(shares)
	require.NoError(t, err)
	require.True(t, secret.Equal(recovered))
}

func TestRecoverThresholdShares(t *testing.T) {
	secret := curve.NewScalar(new(saferith.Nat).SetUint64(1234))
	shares, err := sharing.Split(secret, 6, 3)
	require.NoError(t, err)

	recovered, err := sharing.Recover(shares[:3])
	require.NoError(t, err)
	require.True(t, secret.Equal(recovered))
}

func TestRecoverBelowThresholdYieldsWrongSecret(t *testing.T) {
	secret := curve.NewScalar(new(saferith.Nat).SetUint64(1234))
	shares, err := sharing.Split(secret, 8, 4)
	require.NoError(t, err)

	recovered, err := sharing.Recover(shares[:3])
	require.NoError(t, err)
	require.False(t, secret.Equal(recovered))
}

func TestRecoverRejectsDuplicateIndices(t *testing.T) {
	secret := curve.NewScalar(new(saferith.Nat).SetUint64(1234))
	shares, err := sharing.Split(secret, 4, 3)
	require.NoError(t, err)

	dup := append([]sharing.Share{}, shares[0], shares[0])
	_, err = sharing.Recover(dup)
	require.ErrorIs(t, err, sharing.ErrDuplicateShareIndex)
}

func TestRecoverRejectsEmptyShares(t *testing.T) {
	_, err := sharing.Recover(nil)
	require.ErrorIs(t, err, sharing.ErrInsufficientShares)
}
