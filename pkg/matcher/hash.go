package matcher

import "math/bits"

// mulMod returns a*b mod m without overflowing for any m > 0.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// addMod returns a+b mod m. Both operands must already be in [0, m).
func addMod(a, b, m uint64) uint64 {
	s := a + b
	if s < a || s >= m {
		s -= m
	}
	return s
}

// subMod returns a-b mod m. Both operands must already be in [0, m).
func subMod(a, b, m uint64) uint64 {
	if a >= b {
		return a - b
	}
	return m - (b - a)
}

// powMod computes base^exp mod m by square-and-multiply.
func powMod(base, exp, m uint64) uint64 {
	result := uint64(1) % m
	sq := base % m
	for ; exp > 0; exp >>= 1 {
		if exp&1 != 0 {
			result = mulMod(result, sq, m)
		}
		sq = mulMod(sq, sq, m)
	}
	return result
}

// hasher holds the per-search constants of the rolling hash.
type hasher struct {
	base uint64 // base reduced mod modulus
	mod  uint64
	h    uint64 // base^(m-1) mod modulus
}

func newHasher(base, modulus uint64, m int) hasher {
	return hasher{
		base: base % modulus,
		mod:  modulus,
		h:    powMod(base, uint64(m-1), modulus),
	}
}

func (hs hasher) ord(r rune) uint64 {
	return uint64(r) % hs.mod
}

// sum hashes s with Horner's rule.
func (hs hasher) sum(s []rune) uint64 {
	var v uint64
	for _, r := range s {
		v = addMod(mulMod(v, hs.base, hs.mod), hs.ord(r), hs.mod)
	}
	return v
}

// roll drops out from the front of the window and appends in.
func (hs hasher) roll(v uint64, out, in rune) uint64 {
	v = subMod(v, mulMod(hs.ord(out), hs.h, hs.mod), hs.mod)
	return addMod(mulMod(v, hs.base, hs.mod), hs.ord(in), hs.mod)
}
