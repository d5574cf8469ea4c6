package huffman

import (
	"fmt"
	"strings"
)

// DecodeBits walks the tree from the root for every bit, 0 to the left and
// 1 to the right, emitting a symbol at each leaf. The bits must end exactly
// on a symbol boundary. A single leaf root carries no bits at all; Decode
// expands it from the leaf frequency.
func DecodeBits(bits BitString, root *Node) (string, error) {
	if root == nil {
		return "", fmt.Errorf("%w: no root", ErrInvalidTree)
	}
	if root.IsLeaf() {
		if bits.Len() != 0 {
			return "", fmt.Errorf("%w: %d bits for a single-symbol tree", ErrCorruptPayload, bits.Len())
		}
		return "", nil
	}

	var sb strings.Builder
	br := newBitsReader(bits)
	node := root
	for {
		bit, ok := br.readBit()
		if !ok {
			break
		}
		if bit == 0 {
			node = node.Left
		} else {
			node = node.Right
		}
		if node == nil {
			return "", fmt.Errorf("%w: internal node with one child", ErrInvalidTree)
		}
		if node.IsLeaf() {
			sb.WriteRune(node.Symbol)
			node = root
		}
	}
	if node != root {
		return "", fmt.Errorf("%w: bit stream ends inside a code", ErrCorruptPayload)
	}
	return sb.String(), nil
}
