package paillier_test

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/paillier"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	pub, priv, err := paillier.GenerateKeyPair(128)
	require.NoError(t, err)

	message := new(saferith.Nat).SetUint64(503871685875809544)
	ct, err := pub.Encrypt(message)
	require.NoError(t, err)
	require.NotEqual(t, message.Big().String(), ct.C.Big().String())

	decrypted, err := priv.Decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, 1, decrypted.Eq(message))
}

func TestHomomorphicAdd(t *testing.T) {
	pub, priv, err := paillier.GenerateKeyPair(128)
	require.NoError(t, err)

	a := new(saferith.Nat).SetUint64(5)
	b := new(saferith.Nat).SetUint64(6)

	ctA, err := pub.Encrypt(a)
	require.NoError(t, err)

	ctSum, err := pub.HomomorphicAdd(ctA, b)
	require.NoError(t, err)

	decrypted, err := priv.Decrypt(ctSum)
	require.NoError(t, err)
	require.Equal(t, uint64(11), decrypted.Big().Uint64())
}

func TestHomomorphicMultiply(t *testing.T) {
	pub, priv, err := paillier.GenerateKeyPair(128)
	require.NoError(t, err)

	message := new(saferith.Nat).SetUint64(25)
	constant := new(saferith.Nat).SetUint64(11)

	ct, err := pub.Encrypt(message)
	require.NoError(t, err)

	product, err := pub.HomomorphicMultiply(ct, constant)
	require.NoError(t, err)
	decrypted, err := priv.Decrypt(product)
	require.NoError(t, err)
	require.Equal(t, uint64(275), decrypted.Big().Uint64())
}

func TestEncryptRejectsOversizedPlaintext(t *testing.T) {
	pub, _, err := paillier.GenerateKeyPair(128)
	require.NoError(t, err)

	huge := new(saferith.Nat).Lsh(new(saferith.Nat).SetUint64(1), 4096, -1)
	_, err = pub.Encrypt(huge)
	require.ErrorIs(t, err, paillier.ErrPlaintextTooLarge)
}

func TestDecryptRejectsOutOfRangeCiphertext(t *testing.T) {
	pub, priv, err := paillier.GenerateKeyPair(128)
	require.NoError(t, err)

	tooBig := new(saferith.Nat).SetNat(pub.NSquared.Nat())
	tooBig.Add(tooBig, new(saferith.Nat).SetUint64(1), -1)
	_, err = priv.Decrypt(paillier.Ciphertext{C: tooBig})
	require.ErrorIs(t, err, paillier.ErrInvalidCiphertext)
}

func TestEncryptIsRandomized(t *testing.T) {
	pub, _, err := paillier.GenerateKeyPair(128)
	require.NoError(t, err)

	message := new(saferith.Nat).SetUint64(42)
	ct1, err := pub.Encrypt(message)
	require.NoError(t, err)
	ct2, err := pub.Encrypt(message)
	require.NoError(t, err)

	require.NotEqual(t, ct1.C.Big().String(), ct2.C.Big().String())
}
