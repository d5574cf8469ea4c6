package huffman

import (
	"fmt"
	"strings"
)

// BitString is an exact-length bit sequence stored MSB-first.
type BitString struct {
	data []byte
	n    int
}

// ParseBitString builds a BitString from a text of '0' and '1' characters.
func ParseBitString(s string) (BitString, error) {
	bw := newBitsWriter(len(s) / 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bw.writeBit(0)
		case '1':
			bw.writeBit(1)
		default:
			return BitString{}, fmt.Errorf("invalid bit %q at %d", s[i], i)
		}
	}
	bw.flush()
	return BitString{data: bw.buf[1:], n: bw.total}, nil
}

func (b BitString) Len() int {
	return b.n
}

// At returns the i-th bit, 0 or 1.
func (b BitString) At(i int) byte {
	if i < 0 || i >= b.n {
		panic("bit index out of range")
	}
	return (b.data[i/8] >> (7 - uint(i%8))) & 1
}

func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + b.At(i))
	}
	return sb.String()
}

// bitsWriter packs bits MSB-first. buf[0] is reserved for the padding header.
type bitsWriter struct {
	buf     []byte
	bits    byte  // Pending bits, right-aligned
	bitsLen uint8 // Always < 8 between calls
	total   int
}

func newBitsWriter(sizeHint int) *bitsWriter {
	return &bitsWriter{buf: make([]byte, 1, 1+sizeHint)}
}

func (bw *bitsWriter) flushBits() {
	bw.buf = append(bw.buf, bw.bits)
	bw.bits = 0
	bw.bitsLen = 0
}

func (bw *bitsWriter) flush() {
	if bw.bitsLen > 0 {
		bw.bits <<= 8 - bw.bitsLen
		bw.flushBits()
	}
}

func (bw *bitsWriter) writeBit(bit uint64) {
	if bit != 0 {
		bit = 1
	}
	bw.writeBits(bit, 1)
}

// writeBits appends the low bitsLen bits of bits, most significant first.
func (bw *bitsWriter) writeBits(bits uint64, bitsLen uint8) {
	if bitsLen < 1 || bitsLen > maxCodeLen {
		panic("Invalid bitsLen")
	}
	bw.total += int(bitsLen)
	for bitsLen > 0 {
		n := 8 - bw.bitsLen
		if n > bitsLen {
			n = bitsLen
		}
		bitsLen -= n
		bw.bits = bw.bits<<n | byte((bits>>bitsLen)&(1<<n-1))
		bw.bitsLen += n
		if bw.bitsLen == 8 {
			bw.flushBits()
		}
	}
}

// payload flushes the pending bits and fills in the header byte.
func (bw *bitsWriter) payload() PackedPayload {
	bw.flush()
	bw.buf[0] = byte(bw.total % 8)
	return PackedPayload(bw.buf)
}

type bitsReader struct {
	bits BitString
	pos  int
}

func newBitsReader(bits BitString) *bitsReader {
	return &bitsReader{bits: bits}
}

func (br *bitsReader) readBit() (uint64, bool) {
	if br.pos >= br.bits.n {
		return 0, false
	}
	bit := uint64(br.bits.At(br.pos))
	br.pos++
	return bit, true
}
