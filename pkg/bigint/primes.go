package bigint

import (
	"crypto/rand"

	"github.com/cronokirby/saferith"
)

// MillerRabinRounds is the number of independent witnesses used by
// IsPrime, matching the confidence level used throughout this module's
// key generation.
const MillerRabinRounds = 25

// smallPrimes is the trial-division table: every prime <= 997.
var smallPrimes = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59,
	61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127,
	131, 137, 139, 149, 151, 157, 163, 167, 173, 179, 181, 191,
	193, 197, 199, 211, 223, 227, 229, 233, 239, 241, 251, 257, 263,
	269, 271, 277, 281, 283, 293, 307, 311, 313, 317, 331, 337, 347,
	349, 353, 359, 367, 373, 379, 383, 389, 397, 401, 409, 419, 421,
	431, 433, 439, 443, 449, 457, 461, 463, 467, 479, 487, 491, 499,
	503, 509, 521, 523, 541, 547, 557, 563, 569, 571, 577, 587, 593,
	599, 601, 607, 613, 617, 619, 631, 641, 643, 647, 653, 659, 661,
	673, 677, 683, 691, 701, 709, 719, 727, 733, 739, 743, 751, 757,
	761, 769, 773, 787, 797, 809, 811, 821, 823, 827, 829, 839, 853,
	857, 859, 863, 877, 881, 883, 887, 907, 911, 919, 929, 937, 941,
	947, 953, 967, 971, 977, 983, 991, 997,
}

// IsPrime reports whether candidate is prime, using trial division
// against smallPrimes followed by MillerRabinRounds rounds of
// Miller-Rabin with uniformly sampled witnesses.
func IsPrime(candidate *saferith.Nat) bool {
	last := new(saferith.Nat).SetUint64(smallPrimes[len(smallPrimes)-1])
	if candidate.Cmp(last) <= 0 {
		v := candidate.Big().Uint64()
		for _, p := range smallPrimes {
			if v == p {
				return true
			}
		}
		return false
	}

	for _, p := range smallPrimes {
		pNat := new(saferith.Nat).SetUint64(p)
		rem := new(saferith.Nat).Mod(candidate, saferith.ModulusFromNat(pNat))
		if rem.EqZero() == 1 {
			return false
		}
	}

	return millerRabin(candidate, MillerRabinRounds)
}

func millerRabin(candidate *saferith.Nat, rounds int) bool {
	mod := saferith.ModulusFromNat(candidate)
	one := new(saferith.Nat).SetUint64(1)
	two := new(saferith.Nat).SetUint64(2)

	candidateMinusOne := new(saferith.Nat).ModSub(candidate, one, mod)
	d := new(saferith.Nat).SetNat(candidateMinusOne)
	r := 0
	for isEven(d) {
		d = new(saferith.Nat).Rsh(d, 1, -1)
		r++
	}

	upperBound := new(saferith.Nat).ModSub(candidateMinusOne, one, mod)

	for i := 0; i < rounds; i++ {
		witness, err := RandomInRange(two, upperBound)
		if err != nil {
			return false
		}

		x := new(saferith.Nat).Exp(witness, d, mod)
		if x.Eq(one) == 1 {
			continue
		}

		passed := false
		y := new(saferith.Nat).SetNat(x)
		for j := 0; j < r-1; j++ {
			if y.Eq(candidateMinusOne) == 1 {
				passed = true
				break
			}
			y = new(saferith.Nat).ModMul(y, y, mod)
		}
		if !passed && y.Eq(candidateMinusOne) != 1 {
			return false
		}
	}

	return true
}

func isEven(n *saferith.Nat) bool {
	two := new(saferith.Nat).SetUint64(2)
	rem := new(saferith.Nat).Mod(n, saferith.ModulusFromNat(two))
	return rem.EqZero() == 1
}

// PrimeOfNBits samples a uniformly random n-bit candidate and advances
// by 1 or 2 until a prime is found, matching the original source's
// prime_of_n_bits.
func PrimeOfNBits(n int) (*saferith.Nat, error) {
	buf := make([]byte, (n+7)/8)
	for {
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		candidate := new(saferith.Nat).SetBytes(buf)

		for !IsPrime(candidate) {
			if isEven(candidate) {
				candidate = new(saferith.Nat).Add(candidate, new(saferith.Nat).SetUint64(1), -1)
			} else {
				candidate = new(saferith.Nat).Add(candidate, new(saferith.Nat).SetUint64(2), -1)
			}
		}
		return candidate, nil
	}
}
