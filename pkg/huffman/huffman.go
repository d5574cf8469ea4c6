// Package huffman implements a Huffman text codec: a prefix-code tree built
// from symbol frequencies, a bit-packed payload with a padding header, and a
// container bundling both for storage.
package huffman

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Encode compresses text into a container. Empty text gives the empty
// container; a text of one repeated symbol gives a single leaf tree and a
// payload without bits.
func Encode(text string) (*Container, error) {
	freqs := CountFrequencies(text)
	if len(freqs) == 0 {
		return NewEmptyContainer(), nil
	}

	root, err := BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	if root.IsLeaf() {
		return &Container{Tree: root, Payload: PackedPayload{0}}, nil
	}

	table, err := GenerateCodes(root)
	if err != nil {
		return nil, err
	}
	payload, err := Pack(text, table)
	if err != nil {
		return nil, err
	}
	return &Container{Tree: root, Payload: payload}, nil
}

// Decode restores the text stored in c.
func Decode(c *Container) (string, error) {
	bits, err := Unpack(c.Payload)
	if err != nil {
		return "", err
	}

	switch {
	case c.Tree == nil:
		if bits.Len() != 0 {
			return "", fmt.Errorf("%w: %d bits without a tree", ErrCorruptPayload, bits.Len())
		}
		return "", nil
	case c.Tree.IsLeaf():
		if bits.Len() != 0 {
			return "", fmt.Errorf("%w: %d bits for a single-symbol tree", ErrCorruptPayload, bits.Len())
		}
		return repeatSymbol(c.Tree.Symbol, c.Tree.Freq)
	}

	text, err := DecodeBits(bits, c.Tree)
	if err != nil {
		return "", err
	}
	if n := utf8.RuneCountInString(text); n != c.Tree.Freq {
		return "", fmt.Errorf("%w: decoded %d symbols, tree counts %d", ErrCorruptPayload, n, c.Tree.Freq)
	}
	return text, nil
}

// maxRepeatLen bounds the text a single-leaf container may expand to.
const maxRepeatLen = 1<<31 - 1

func repeatSymbol(sym Symbol, count int) (string, error) {
	symLen := utf8.RuneLen(sym)
	if symLen < 0 {
		symLen = utf8.RuneLen(utf8.RuneError)
	}
	if count > maxRepeatLen/symLen {
		return "", fmt.Errorf("%w: %d repeats of %q exceed %d bytes", ErrCorruptPayload, count, sym, maxRepeatLen)
	}
	return strings.Repeat(string(sym), count), nil
}

// Stats describes a container for reporting.
type Stats struct {
	Symbols      int // Symbols in the original text
	Distinct     int
	Bits         int
	PayloadBytes int // Including the header byte
}

func (c *Container) Stats() Stats {
	var st Stats
	if c.Tree != nil {
		st.Symbols = c.Tree.Freq
		st.Distinct = c.Tree.Leaves()
	}
	st.Bits, _ = c.Payload.BitLen()
	st.PayloadBytes = len(c.Payload)
	return st
}
