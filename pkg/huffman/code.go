package huffman

import (
	"fmt"
	"sort"
	"strings"
)

const maxCodeLen = 64

// Code is a bit string of Len bits held in the low bits of Bits, most
// significant bit first. The zero Code is the empty bit string.
type Code struct {
	Bits uint64
	Len  uint8
}

func (code Code) String() string {
	var sb strings.Builder
	for i := int(code.Len) - 1; i >= 0; i-- {
		sb.WriteByte('0' + byte(code.Bits>>uint(i)&1))
	}
	return sb.String()
}

// HasPrefix reports whether prefix is a prefix of code.
func (code Code) HasPrefix(prefix Code) bool {
	if prefix.Len > code.Len {
		return false
	}
	return code.Bits>>(code.Len-prefix.Len) == prefix.Bits
}

// CodeTable maps every leaf symbol of a tree to its code.
type CodeTable map[Symbol]Code

// Symbols returns the symbols of the table in ascending order.
func (table CodeTable) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(table))
	for sym := range table {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// EncodedLen returns the number of bits Pack produces for freqs.
func (table CodeTable) EncodedLen(freqs Frequencies) int {
	total := 0
	for sym, freq := range freqs {
		total += int(table[sym].Len) * freq
	}
	return total
}

// GenerateCodes assigns 0 to every left edge and 1 to every right edge. A
// root that is itself a leaf gets the empty code.
func GenerateCodes(root *Node) (CodeTable, error) {
	if root == nil {
		return nil, ErrEmptyInput
	}
	table := make(CodeTable)
	var walk func(node *Node, code Code) error
	walk = func(node *Node, code Code) error {
		if node.IsLeaf() {
			table[node.Symbol] = code
			return nil
		}
		if node.Left == nil || node.Right == nil {
			return fmt.Errorf("%w: internal node with one child", ErrInvalidTree)
		}
		if code.Len == maxCodeLen {
			return fmt.Errorf("%w: tree deeper than %d levels", ErrCodeTooLong, maxCodeLen)
		}
		next := Code{Bits: code.Bits << 1, Len: code.Len + 1}
		if err := walk(node.Left, next); err != nil {
			return err
		}
		next.Bits |= 1
		return walk(node.Right, next)
	}
	if err := walk(root, Code{}); err != nil {
		return nil, err
	}
	return table, nil
}
