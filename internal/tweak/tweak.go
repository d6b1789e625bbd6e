// Package tweak implements the 128-bit UBI tweak value shared by all
// Skein state sizes: the position counter, the first/final block
// flags, and the type-tag field that keeps the configuration, message,
// and output passes from colliding with one another.
package tweak

// Type identifies which UBI pass a block belongs to. Changing the type
// field changes every subsequent compression output, which is the
// point of UBI: each type is an independent keyed permutation.
type Type uint64

// The type values Skein defines. Plain hashing only ever uses Cfg, Msg
// and Out; the rest exist for the keyed/tree modes this port doesn't
// implement (spec Non-goals).
const (
	Key   Type = 0
	Cfg   Type = 4
	Pers  Type = 8
	PK    Type = 12
	KDF   Type = 16
	Nonce Type = 20
	Msg   Type = 48
	Out   Type = 63
)

const (
	firstBlockFlag uint64 = 1 << 62
	finalBlockFlag uint64 = 1 << 63
)

// T is the pair (T0, T1) threaded through every Threefish call in a UBI
// pass. T1 packs the type tag below its top two bits, which carry the
// first/final block flags -- the same relative layout as the published
// tweak word, shifted to leave room for flags at bits 62 and 63.
type T struct {
	T0, T1 uint64
}

// New starts a tweak for a fresh UBI pass of the given type, with the
// first-block flag set and the position counter at zero.
func New(typ Type) T {
	return T{T0: 0, T1: uint64(typ)<<56 | firstBlockFlag}
}

// Advance adds n to the position counter, the first step of processing
// a block (spec §4.1 step 1).
func (t *T) Advance(n uint64) {
	t.T0 += n
}

// ClearFirst clears the first-block flag after the first block of a
// pass has been processed (spec §4.1 step 8).
func (t *T) ClearFirst() {
	t.T1 &^= firstBlockFlag
}

// SetFinal sets the final-block flag for the last block of a pass.
func (t *T) SetFinal() {
	t.T1 |= finalBlockFlag
}

// IsFinal reports whether the final-block flag is set.
func (t T) IsFinal() bool {
	return t.T1&finalBlockFlag != 0
}

// Words returns the three tweak words fed into key injection:
// ts[0]=T0, ts[1]=T1, ts[2]=T0^T1 (spec §4.1 step 2).
func (t T) Words() [3]uint64 {
	return [3]uint64{t.T0, t.T1, t.T0 ^ t.T1}
}
