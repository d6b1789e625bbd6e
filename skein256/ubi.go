package skein256

import "github.com/go-skein/skein/internal/tweak"

// ubi256 runs a complete Unique Block Iteration pass of type typ over
// input, starting from chaining value g, and returns the resulting
// chaining value (spec §4.2). It is used for the single-block CFG and
// OUT passes; the streaming MSG pass is driven incrementally by
// Digest.Write/Final in skein256.go since it must straddle multiple calls.
func ubi256(g [nw256]uint64, input []byte, typ tweak.Type, observe func(round int, state []uint64)) [nw256]uint64 {
	t := tweak.New(typ)

	if len(input) == 0 {
		t.SetFinal()
		var block [nb256]byte
		return threefish256Block(&g, t.Words(), &block, observe)
	}

	pos := 0
	for pos < len(input) {
		remaining := len(input) - pos
		var block [nb256]byte
		var n int
		if remaining <= nb256 {
			n = copy(block[:], input[pos:])
			t.SetFinal()
		} else {
			n = copy(block[:], input[pos:pos+nb256])
		}
		t.Advance(uint64(n))
		g = threefish256Block(&g, t.Words(), &block, observe)
		t.ClearFirst()
		pos += n
	}
	return g
}
