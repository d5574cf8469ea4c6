package huffman

import (
	"container/heap"
	"fmt"
)

// Node is a vertex of a Huffman tree. Leaves have no children and carry a
// symbol; internal nodes always have both children and Freq is their sum.
type Node struct {
	_      struct{} `cbor:",toarray"`
	Symbol Symbol
	Freq   int
	Left   *Node
	Right  *Node
}

func NewLeaf(sym Symbol, freq int) *Node {
	return &Node{Symbol: sym, Freq: freq}
}

func NewInternal(left, right *Node) *Node {
	return &Node{Freq: left.Freq + right.Freq, Left: left, Right: right}
}

func (node *Node) IsLeaf() bool {
	return node.Left == nil && node.Right == nil
}

// Leaves returns the number of leaves under node.
func (node *Node) Leaves() int {
	if node == nil {
		return 0
	}
	if node.IsLeaf() {
		return 1
	}
	return node.Left.Leaves() + node.Right.Leaves()
}

// Depth returns the length of the longest root-to-leaf path.
func (node *Node) Depth() int {
	if node == nil || node.IsLeaf() {
		return 0
	}
	left, right := node.Left.Depth(), node.Right.Depth()
	if left > right {
		return left + 1
	}
	return right + 1
}

// validateTree checks the structure of a tree that came from outside
// BuildTree, e.g. a deserialized container.
func validateTree(root *Node) error {
	seen := make(map[Symbol]bool)
	var walk func(node *Node, depth int) error
	walk = func(node *Node, depth int) error {
		if depth > maxCodeLen {
			return fmt.Errorf("%w: deeper than %d levels", ErrInvalidTree, maxCodeLen)
		}
		switch {
		case node.IsLeaf():
			if node.Freq <= 0 {
				return fmt.Errorf("%w: leaf %q has frequency %d", ErrInvalidTree, node.Symbol, node.Freq)
			}
			if seen[node.Symbol] {
				return fmt.Errorf("%w: duplicate leaf %q", ErrInvalidTree, node.Symbol)
			}
			seen[node.Symbol] = true
			return nil
		case node.Left == nil || node.Right == nil:
			return fmt.Errorf("%w: internal node with one child", ErrInvalidTree)
		case node.Freq != node.Left.Freq+node.Right.Freq:
			return fmt.Errorf("%w: internal node frequency %d != %d + %d",
				ErrInvalidTree, node.Freq, node.Left.Freq, node.Right.Freq)
		}
		if err := walk(node.Left, depth+1); err != nil {
			return err
		}
		return walk(node.Right, depth+1)
	}
	return walk(root, 0)
}

type heapItem struct {
	node *Node
	seq  int
}

// nodeHeap orders by frequency, then by insertion sequence.
type nodeHeap []heapItem

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.Freq != h[j].node.Freq {
		return h[i].node.Freq < h[j].node.Freq
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(heapItem))
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// BuildTree merges the two least frequent nodes until one remains. Leaves
// enter the queue in symbol order and merged nodes get increasing sequence
// numbers, so equal frequencies always resolve the same way.
func BuildTree(freqs Frequencies) (*Node, error) {
	if len(freqs) == 0 {
		return nil, ErrEmptyInput
	}

	h := make(nodeHeap, 0, len(freqs))
	seq := 0
	for _, e := range freqs.Sorted() {
		if e.Freq <= 0 {
			return nil, fmt.Errorf("%w: symbol %q has count %d", ErrInvalidFrequency, e.Symbol, e.Freq)
		}
		h = append(h, heapItem{node: NewLeaf(e.Symbol, e.Freq), seq: seq})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		left := heap.Pop(&h).(heapItem)
		right := heap.Pop(&h).(heapItem)
		heap.Push(&h, heapItem{node: NewInternal(left.node, right.node), seq: seq})
		seq++
	}
	return h[0].node, nil
}
