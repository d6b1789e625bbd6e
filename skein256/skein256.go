// Package skein256 implements the 256-bit-state member of the Skein
// hash family: a Threefish-256 block cipher driven by Unique Block
// Iteration (UBI) chaining across a configuration, message and output
// pass (spec §2, §4.3). It produces digests of any positive multiple
// of 8 bits, with a memoized fast path for the natural 256-bit output
// size.
package skein256

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/go-skein/skein/internal/tweak"
)

// BlockSize is Nb, the Threefish-256 block size in bytes.
const BlockSize = nb256

// NaturalHashBits is the state size; a single OUT pass suffices when
// the requested digest length equals this.
const NaturalHashBits = 256

var (
	// ErrBadHashLen is returned by Init/NewDigest when hashBitLen is
	// not a positive multiple of 8 (spec §7 BAD_HASHLEN).
	ErrBadHashLen = errors.New("skein256: hashBitLen must be a positive multiple of 8")
	// ErrBadState is returned when Update or Final is called on a
	// context that hasn't been initialized, or Final is called twice
	// (spec §7 BAD_STATE, spec §4.4 state machine).
	ErrBadState = errors.New("skein256: context not initialized or already finalized")
)

// naturalIV256 is the chaining value after the CFG pass for the
// natural 256-bit output with no key, salt or personalization -- the
// fast path spec §4.3 describes as "a precomputed IV (optimisation for
// standard output sizes -- same result)". It is computed once from the
// same CFG pass the general case runs, then memoized, rather than
// hand-transcribed, so it can never drift from the general path.
var (
	naturalIV256     [nw256]uint64
	naturalIV256Once sync.Once
)

func getNaturalIV256() [nw256]uint64 {
	naturalIV256Once.Do(func() {
		// The memoized fast path never calls Observer: it runs the CFG
		// pass at most once, globally, the first time any Digest asks
		// for the natural hash size, so there is no single caller's
		// Observer it would be correct to drive.
		naturalIV256 = computeCfgIV256(NaturalHashBits, nil)
	})
	return naturalIV256
}

func computeCfgIV256(hashBitLen int, observe func(round int, state []uint64)) [nw256]uint64 {
	var cfg [32]byte
	copy(cfg[0:4], "SHA3")
	binary.LittleEndian.PutUint16(cfg[4:6], 1)
	binary.LittleEndian.PutUint64(cfg[8:16], uint64(hashBitLen))
	return ubi256([nw256]uint64{}, cfg[:], tweak.Cfg, observe)
}

// Observer, if set on a Digest, is called after every individual
// mixing round of every block compressed by that Digest (CFG, MSG and
// OUT passes alike) with the round's 1-based index within its block
// and the live state words -- the per-round debug trace
// original_source/skein_block.c fires via Skein_Show_Round, exposed as
// an interface instead of a compile-time macro so tests can attach
// without rebuilding. The memoized natural-IV fast path (see
// getNaturalIV256) never drives it, since it may run the CFG pass
// before this Digest exists.
type Observer func(round int, state []uint64)

// Digest is the (G, T0, T1, hashBitLen, bCnt, B) context from spec §3.
// Zero value is not usable; construct with NewDigest or Init.
type Digest struct {
	g       [nw256]uint64
	msgT    tweak.T
	hashLen int // output length in bits

	buf    [nb256]byte
	offset int // bytes buffered in buf

	done bool // Final has been called

	Observer Observer
}

// NewDigest constructs and initializes a Digest for a digest of
// hashBitLen bits, the one-shot-friendly constructor mirroring
// blake2b.NewDigest.
func NewDigest(hashBitLen int) (*Digest, error) {
	d := new(Digest)
	if err := d.Init(hashBitLen); err != nil {
		return nil, err
	}
	return d, nil
}

// Init performs the CFG pass (or installs the memoized IV) and resets
// the context for a fresh MSG pass (spec §4.3 Init contract).
func (d *Digest) Init(hashBitLen int) error {
	if hashBitLen <= 0 || hashBitLen%8 != 0 {
		return ErrBadHashLen
	}

	obs := d.Observer
	*d = Digest{hashLen: hashBitLen, Observer: obs}

	if hashBitLen == NaturalHashBits {
		d.g = getNaturalIV256()
	} else {
		d.g = computeCfgIV256(hashBitLen, d.Observer)
	}

	d.msgT = tweak.New(tweak.Msg)
	return nil
}

// Write appends data to the running MSG pass (spec §4.3 Update
// contract): every full block is compressed except the last-known-full
// one, which stays buffered until either more data arrives (processed
// non-final) or Final is called (processed final). Write returns
// ErrBadState before Init or after Final, and no error otherwise; it
// implements hash.Hash and io.Writer.
func (d *Digest) Write(p []byte) (n int, err error) {
	if d.hashLen == 0 || d.done {
		return 0, ErrBadState
	}
	total := len(p)
	for len(p) > 0 {
		if d.offset == nb256 {
			d.flush(false)
		}
		free := nb256 - d.offset
		take := len(p)
		if take > free {
			take = free
		}
		copy(d.buf[d.offset:], p[:take])
		d.offset += take
		p = p[take:]
	}
	return total, nil
}

// flush compresses the buffered block and advances the MSG tweak.
func (d *Digest) flush(final bool) {
	if final {
		d.msgT.SetFinal()
	}
	d.msgT.Advance(uint64(d.offset))
	block := d.buf
	if d.offset < nb256 {
		for i := d.offset; i < nb256; i++ {
			block[i] = 0
		}
	}
	d.g = threefish256Block(&d.g, d.msgT.Words(), &block, d.Observer)
	d.msgT.ClearFirst()
	d.offset = 0
}

// Sum appends the digest to b and returns the resulting slice, without
// mutating the receiver -- matching blake2b.Digest.Sum, which snapshots
// state before finalizing so repeated calls to Sum observe the same
// running hash instead of the previous call's Final having consumed it.
func (d *Digest) Sum(b []byte) []byte {
	dCopy := *d
	out, err := dCopy.Final()
	if err != nil {
		return b
	}
	return append(b, out...)
}

// Final flushes the buffered tail with the final-block flag set, then
// runs the OUT pass and truncates to hashBitLen bits (spec §4.3 Final
// contract). Calling Final more than once returns ErrBadState.
func (d *Digest) Final() ([]byte, error) {
	if d.hashLen == 0 || d.done {
		return nil, ErrBadState
	}
	d.flush(true)
	postMsg := d.g
	d.done = true

	outBytes := (d.hashLen + 7) / 8
	out := make([]byte, 0, outBytes+nb256)
	for i := uint64(0); len(out) < outBytes; i++ {
		var ctr [8]byte
		binary.LittleEndian.PutUint64(ctr[:], i)
		g := ubi256(postMsg, ctr[:], tweak.Out, d.Observer)
		for w := 0; w < nw256; w++ {
			var wb [8]byte
			putLEUint64(wb[:], g[w])
			out = append(out, wb[:]...)
		}
	}
	out = out[:outBytes]

	if bits := d.hashLen % 8; bits != 0 {
		out[len(out)-1] &= 0xff >> uint(8-bits)
	}
	return out, nil
}

// FinalBits finalizes a message whose last byte is only partially
// significant: nbits (1..7) high-order bits of b are real data, and a
// single '1' bit is appended at position 7-nbits with the remainder
// zeroed, per the SHA-3 bit-string convention (spec §6). Mid-stream
// partial bytes have no representation in this API -- Write only
// accepts whole bytes -- so FinalBits is the only place bit-level
// input is accepted, preserving the asymmetry spec §9 calls out.
func (d *Digest) FinalBits(b byte, nbits int) ([]byte, error) {
	if nbits < 1 || nbits > 7 {
		return nil, ErrBadState
	}
	mask := byte(0xff << uint(8-nbits))
	padded := (b & mask) | (1 << uint(7-nbits))
	if _, err := d.Write([]byte{padded}); err != nil {
		return nil, err
	}
	return d.Final()
}

// Reset reinitializes the Digest for the same hashBitLen, discarding
// any buffered or finalized state.
func (d *Digest) Reset() {
	d.Init(d.hashLen)
}

// Size returns the digest output size in bytes.
func (d *Digest) Size() int { return (d.hashLen + 7) / 8 }

// BlockSize returns the hash's underlying block size.
func (d *Digest) BlockSize() int { return nb256 }

// Zero scrubs the chaining state and buffer (spec §5: "implementations
// SHOULD offer a scrub operation that zeroes G before deallocation").
func (d *Digest) Zero() {
	for i := range d.g {
		d.g[i] = 0
	}
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.msgT = tweak.T{}
}

// Sum256 is the one-shot front end (spec §6 one-shot API) for the
// natural 256-bit output size.
func Sum256(data []byte) [32]byte {
	d, _ := NewDigest(256)
	d.Write(data)
	out, _ := d.Final()
	var sum [32]byte
	copy(sum[:], out)
	return sum
}

// Hash is the general one-shot front end for an arbitrary hashBitLen.
func Hash(hashBitLen int, data []byte) ([]byte, error) {
	d, err := NewDigest(hashBitLen)
	if err != nil {
		return nil, err
	}
	d.Write(data)
	return d.Final()
}
