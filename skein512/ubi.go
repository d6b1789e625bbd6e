package skein512

import "github.com/go-skein/skein/internal/tweak"

// ubi512 runs a complete Unique Block Iteration pass of type typ over
// input, starting from chaining value g (spec §4.2). See skein256's
// ubi256 for the shared rationale; duplicated per state size because
// the block function's word width is fixed per package.
func ubi512(g [nw512]uint64, input []byte, typ tweak.Type, observe func(round int, state []uint64)) [nw512]uint64 {
	t := tweak.New(typ)

	if len(input) == 0 {
		t.SetFinal()
		var block [nb512]byte
		return threefish512Block(&g, t.Words(), &block, observe)
	}

	pos := 0
	for pos < len(input) {
		remaining := len(input) - pos
		var block [nb512]byte
		var n int
		if remaining <= nb512 {
			n = copy(block[:], input[pos:])
			t.SetFinal()
		} else {
			n = copy(block[:], input[pos:pos+nb512])
		}
		t.Advance(uint64(n))
		g = threefish512Block(&g, t.Words(), &block, observe)
		t.ClearFirst()
		pos += n
	}
	return g
}
