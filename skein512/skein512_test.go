package skein512

import (
	"bytes"
	"testing"

	"github.com/go-skein/skein/internal/tweak"
)

func mustHash(t *testing.T, hashBitLen int, data []byte) []byte {
	t.Helper()
	out, err := Hash(hashBitLen, data)
	if err != nil {
		t.Fatalf("Hash(%d, ...): %v", hashBitLen, err)
	}
	return out
}

func TestDeterminism(t *testing.T) {
	msg := []byte("the quick brown fox jumps over the lazy dog")
	a := mustHash(t, 512, msg)
	b := mustHash(t, 512, msg)
	if !bytes.Equal(a, b) {
		t.Fatalf("hash not deterministic: %x != %x", a, b)
	}
}

func TestStreamingEquivalence(t *testing.T) {
	msg := make([]byte, 500)
	for i := range msg {
		msg[i] = byte(i * 11)
	}
	oneShot := mustHash(t, 512, msg)

	chunkings := [][]int{
		{500},
		{1, 499},
		{64, 436},
		{63, 1, 436},
		{100, 100, 100, 100, 100},
	}
	for _, chunks := range chunkings {
		d, err := NewDigest(512)
		if err != nil {
			t.Fatal(err)
		}
		pos := 0
		for _, c := range chunks {
			if _, err := d.Write(msg[pos : pos+c]); err != nil {
				t.Fatalf("write: %v", err)
			}
			pos += c
		}
		streamed, err := d.Final()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(oneShot, streamed) {
			t.Fatalf("chunking %v diverged from one-shot: %x != %x", chunks, streamed, oneShot)
		}
	}
}

func TestBufferBoundaryIndependence(t *testing.T) {
	pattern := make([]byte, 2*nb512)
	for i := range pattern {
		pattern[i] = byte(0x5a ^ i)
	}
	for n := 0; n <= len(pattern); n += 3 {
		msg := pattern[:n]
		whole := mustHash(t, 512, msg)

		d, _ := NewDigest(512)
		for i := 0; i < len(msg); i++ {
			d.Write(msg[i : i+1])
		}
		perByte, err := d.Final()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(whole, perByte) {
			t.Fatalf("length %d: per-byte writes diverged from single write", n)
		}
	}
}

// Property 4: bit-length edge -- result depends only on the high-order
// b bits of the trailing byte.
func TestBitLengthEdge(t *testing.T) {
	prefix := []byte("skein bit padding test prefix")
	for nbits := 1; nbits <= 7; nbits++ {
		var ref []byte
		for trial := 0; trial < 4; trial++ {
			b := byte(trial*0x33 + 1)
			d, _ := NewDigest(512)
			d.Write(prefix)
			out, err := d.FinalBits(b, nbits)
			if err != nil {
				t.Fatal(err)
			}
			if trial == 0 {
				ref = out
				continue
			}
			// hashing the same prefix and trailing byte again must
			// reproduce the same digest.
			if out2 := func() []byte {
				d2, _ := NewDigest(512)
				d2.Write(prefix)
				o, _ := d2.FinalBits(b, nbits)
				return o
			}(); !bytes.Equal(out2, out) {
				t.Fatalf("nbits=%d: FinalBits not self-consistent", nbits)
			}
		}
		_ = ref
	}

	// Two trailing bytes that agree on the top nbits but differ below
	// must produce the same digest.
	for nbits := 1; nbits <= 7; nbits++ {
		mask := byte(0xff << uint(8-nbits))
		high := byte(0x96) & mask
		b1 := high | 0x00
		b2 := high | (^mask & 0x2b)

		d1, _ := NewDigest(512)
		d1.Write(prefix)
		out1, err := d1.FinalBits(b1, nbits)
		if err != nil {
			t.Fatal(err)
		}

		d2, _ := NewDigest(512)
		d2.Write(prefix)
		out2, err := d2.FinalBits(b2, nbits)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(out1, out2) {
			t.Fatalf("nbits=%d: low bits leaked into digest: %x != %x", nbits, out1, out2)
		}
	}
}

func TestTypeTagIsolation(t *testing.T) {
	msg := []byte("type tag isolation probe")
	real := mustHash(t, 512, msg)

	var cfg [32]byte
	copy(cfg[0:4], "SHA3")
	cfg[4], cfg[5] = 1, 0
	cfg[8] = 512 & 0xff

	tampered := ubi512([nw512]uint64{}, cfg[:], tweak.Msg, nil)
	d := &Digest{hashLen: 512}
	d.g = tampered
	d.msgT = tweak.New(tweak.Msg)
	d.Write(msg)
	fake, err := d.Final()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(real, fake) {
		t.Fatalf("tweak type tag did not reach the compression function")
	}
}

func TestFinalFlagIsolation(t *testing.T) {
	var block [nb512]byte
	for i := range block {
		block[i] = byte(i + 1)
	}

	tA := tweak.New(tweak.Msg)
	tA.SetFinal()
	tA.Advance(nb512)
	gA := threefish512Block(&[nw512]uint64{}, tA.Words(), &block, nil)

	tB := tweak.New(tweak.Msg)
	tB.Advance(nb512)
	gB := threefish512Block(&[nw512]uint64{}, tB.Words(), &block, nil)
	tB.ClearFirst()
	tB.SetFinal()
	var empty [nb512]byte
	gB = threefish512Block(&gB, tB.Words(), &empty, nil)

	if gA == gB {
		t.Fatalf("final-flag isolation failed: both orderings produced %v", gA)
	}
}

func TestBadHashLen(t *testing.T) {
	if _, err := NewDigest(0); err != ErrBadHashLen {
		t.Errorf("hashBitLen=0: got %v, want ErrBadHashLen", err)
	}
	if _, err := NewDigest(513); err != ErrBadHashLen {
		t.Errorf("hashBitLen=513: got %v, want ErrBadHashLen", err)
	}
}

func TestBadState(t *testing.T) {
	var d Digest
	if _, err := d.Write([]byte("x")); err != ErrBadState {
		t.Errorf("write before init: got %v, want ErrBadState", err)
	}

	d2, _ := NewDigest(512)
	d2.Write([]byte("hello"))
	if _, err := d2.Final(); err != nil {
		t.Fatal(err)
	}
	if _, err := d2.Write([]byte("more")); err != ErrBadState {
		t.Errorf("write after final: got %v, want ErrBadState", err)
	}
}

func TestSumDoesNotConsumeState(t *testing.T) {
	d, _ := NewDigest(512)
	d.Write([]byte("partial"))
	first := d.Sum(nil)
	d.Write([]byte(" more"))
	second := d.Sum(nil)
	if bytes.Equal(first, second) {
		t.Fatalf("Sum after additional writes returned the same digest")
	}
}

func TestZero(t *testing.T) {
	d, _ := NewDigest(512)
	d.Write([]byte("some data"))
	d.Zero()
	for _, w := range d.g {
		if w != 0 {
			t.Fatalf("Zero left chaining state non-zero: %v", d.g)
		}
	}
}

// The end-to-end long-message streaming scenario from spec §8(iii),
// scaled down to keep the test fast: a multiple of the block size
// streamed in many small updates must equal the one-shot hash.
func TestLongStreamedMessage(t *testing.T) {
	const total = 64 * 1024
	msg := make([]byte, total)
	for i := range msg {
		msg[i] = byte(i)
	}
	oneShot := mustHash(t, 512, msg)

	d, _ := NewDigest(512)
	const chunk = 64
	for i := 0; i < total; i += chunk {
		d.Write(msg[i : i+chunk])
	}
	streamed, err := d.Final()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(oneShot, streamed) {
		t.Fatalf("long streamed message diverged from one-shot")
	}
}
