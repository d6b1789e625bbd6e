package skein512

// Threefish-512: Nw=8 64-bit words, Nb=64 bytes, 72 rounds.
//
// Same unrolled-by-hand technique as skein256's block function and
// blake2b.go's compress(): named locals, eight mixing rounds per loop
// pass with a key injection after every four. The word permutation between rounds has period
// four here (vs. period two for Threefish-256), so the pairing pattern
// below cycles through four distinct shapes instead of two before the
// rotation-constant table repeats at row 8.

const (
	nw512     = 8
	nb512     = 64
	rounds512 = 72
)

// Rotation constants for Threefish-512, 8 rows x 4 columns. Reproduced
// verbatim from the published Skein 1.3 specification.
const (
	r512_0_0, r512_0_1, r512_0_2, r512_0_3 = 46, 36, 19, 37
	r512_1_0, r512_1_1, r512_1_2, r512_1_3 = 33, 27, 14, 42
	r512_2_0, r512_2_1, r512_2_2, r512_2_3 = 17, 49, 36, 39
	r512_3_0, r512_3_1, r512_3_2, r512_3_3 = 44, 9, 54, 56
	r512_4_0, r512_4_1, r512_4_2, r512_4_3 = 39, 30, 34, 24
	r512_5_0, r512_5_1, r512_5_2, r512_5_3 = 13, 50, 10, 17
	r512_6_0, r512_6_1, r512_6_2, r512_6_3 = 25, 29, 39, 43
	r512_7_0, r512_7_1, r512_7_2, r512_7_3 = 8, 35, 56, 22
)

func rotl64(x uint64, n uint) uint64 {
	return (x << n) | (x >> (64 - n))
}

func mix512(x, y uint64, rho uint) (uint64, uint64) {
	x = x + y
	y = rotl64(y, rho) ^ x
	return x, y
}

// threefish512Block runs the Threefish-512 permutation on one 64-byte
// block under key g and tweak words ts, returning the raw cipher
// output for the caller to XOR with the plaintext block (spec §4.1).
//
// observe, if non-nil, is called after every individual mixing round
// with the round's 1-based index and the live state words -- see
// skein256's threefish256Block for the shared rationale.
func threefish512Block(g *[nw512]uint64, ts [3]uint64, block *[nb512]byte, observe func(round int, state []uint64)) [nw512]uint64 {
	var ks [nw512 + 1]uint64
	parity := uint64(c240)
	for i := 0; i < nw512; i++ {
		ks[i] = g[i]
		parity ^= g[i]
	}
	ks[nw512] = parity

	var w [nw512]uint64
	for i := 0; i < nw512; i++ {
		w[i] = leUint64(block[i*8 : i*8+8])
	}

	x0 := w[0] + ks[0]
	x1 := w[1] + ks[1]
	x2 := w[2] + ks[2]
	x3 := w[3] + ks[3]
	x4 := w[4] + ks[4]
	x5 := w[5] + ks[5] + ts[0]
	x6 := w[6] + ks[6] + ts[1]
	x7 := w[7] + ks[7]

	inject := func(s uint64) {
		x0 += ks[(s+0)%(nw512+1)]
		x1 += ks[(s+1)%(nw512+1)]
		x2 += ks[(s+2)%(nw512+1)]
		x3 += ks[(s+3)%(nw512+1)]
		x4 += ks[(s+4)%(nw512+1)]
		x5 += ks[(s+5)%(nw512+1)] + ts[s%3]
		x6 += ks[(s+6)%(nw512+1)] + ts[(s+1)%3]
		x7 += ks[(s+7)%(nw512+1)] + s
	}

	round := 0
	show := func() {
		if observe != nil {
			round++
			observe(round, []uint64{x0, x1, x2, x3, x4, x5, x6, x7})
		}
	}

	for r := 0; r < rounds512/8; r++ {
		x0, x1 = mix512(x0, x1, r512_0_0)
		x2, x3 = mix512(x2, x3, r512_0_1)
		x4, x5 = mix512(x4, x5, r512_0_2)
		x6, x7 = mix512(x6, x7, r512_0_3)
		show()

		x2, x1 = mix512(x2, x1, r512_1_0)
		x4, x7 = mix512(x4, x7, r512_1_1)
		x6, x5 = mix512(x6, x5, r512_1_2)
		x0, x3 = mix512(x0, x3, r512_1_3)
		show()

		x4, x1 = mix512(x4, x1, r512_2_0)
		x6, x3 = mix512(x6, x3, r512_2_1)
		x0, x5 = mix512(x0, x5, r512_2_2)
		x2, x7 = mix512(x2, x7, r512_2_3)
		show()

		x6, x1 = mix512(x6, x1, r512_3_0)
		x0, x7 = mix512(x0, x7, r512_3_1)
		x2, x5 = mix512(x2, x5, r512_3_2)
		x4, x3 = mix512(x4, x3, r512_3_3)
		show()
		inject(uint64(2*r + 1))

		x0, x1 = mix512(x0, x1, r512_4_0)
		x2, x3 = mix512(x2, x3, r512_4_1)
		x4, x5 = mix512(x4, x5, r512_4_2)
		x6, x7 = mix512(x6, x7, r512_4_3)
		show()

		x2, x1 = mix512(x2, x1, r512_5_0)
		x4, x7 = mix512(x4, x7, r512_5_1)
		x6, x5 = mix512(x6, x5, r512_5_2)
		x0, x3 = mix512(x0, x3, r512_5_3)
		show()

		x4, x1 = mix512(x4, x1, r512_6_0)
		x6, x3 = mix512(x6, x3, r512_6_1)
		x0, x5 = mix512(x0, x5, r512_6_2)
		x2, x7 = mix512(x2, x7, r512_6_3)
		show()

		x6, x1 = mix512(x6, x1, r512_7_0)
		x0, x7 = mix512(x0, x7, r512_7_1)
		x2, x5 = mix512(x2, x5, r512_7_2)
		x4, x3 = mix512(x4, x3, r512_7_3)
		show()
		inject(uint64(2*r + 2))
	}

	return [nw512]uint64{
		x0 ^ w[0], x1 ^ w[1], x2 ^ w[2], x3 ^ w[3],
		x4 ^ w[4], x5 ^ w[5], x6 ^ w[6], x7 ^ w[7],
	}
}

func leUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLEUint64(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

const c240 = 0x1bd11bdaa9fc1a22
