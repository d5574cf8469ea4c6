package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Binary container layout, all integers little-endian:
//
//	magic   = "HUF\x01"
//	tree    = node
//	node    = 0x00                                  (no tree)
//	        | 0x01 symbol:int32 freq:uint64         (leaf)
//	        | 0x02 freq:uint64 left:node right:node (internal)
//	length  = uint32
//	payload = length bytes
const binaryMagic = "HUF\x01"

const (
	tagAbsent   byte = 0
	tagLeaf     byte = 1
	tagInternal byte = 2
)

// BinaryCodec stores containers in a compact pre-order layout.
type BinaryCodec struct{}

func (BinaryCodec) Name() string { return "binary" }

func (BinaryCodec) Marshal(c *Container) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	buf.WriteString(binaryMagic)
	checkErr(&err, writeNode(&buf, c.Tree))
	checkErr(&err, writeIntAsUint32(&buf, len(c.Payload)))
	if err != nil {
		return nil, err
	}
	buf.Write(c.Payload)
	return buf.Bytes(), nil
}

func (BinaryCodec) Unmarshal(data []byte, c *Container) error {
	var err error
	var magic [len(binaryMagic)]byte
	var payloadLen uint32
	r := bytes.NewReader(data)

	checkErrNoEOF(&err, readExact(r, magic[:]))
	if err == nil && string(magic[:]) != binaryMagic {
		err = fmt.Errorf("invalid magic: expected % X got % X", binaryMagic, magic[:])
	}
	var tree *Node
	checkErrNoEOF(&err, readNode(r, &tree, 0))
	checkErrNoEOF(&err, readLE(r, &payloadLen))
	if err == nil && int64(payloadLen) > int64(r.Len()) {
		err = fmt.Errorf("payload length %d exceeds remaining %d bytes", payloadLen, r.Len())
	}
	var payload PackedPayload
	if err == nil {
		payload = make(PackedPayload, payloadLen)
		checkErrNoEOF(&err, readExact(r, payload))
	}
	if err == nil && r.Len() > 0 {
		err = fmt.Errorf("%d trailing bytes", r.Len())
	}
	if err != nil {
		return malformed(err)
	}
	c.Tree = tree
	c.Payload = payload
	return nil
}

func writeNode(w io.Writer, node *Node) error {
	if node == nil {
		return writeLE(w, tagAbsent)
	}
	var err error
	if node.IsLeaf() {
		checkErr(&err, writeLE(w, tagLeaf))
		checkErr(&err, writeLE(w, int32(node.Symbol)))
		checkErr(&err, writeIntAsUint64(w, node.Freq))
		return err
	}
	checkErr(&err, writeLE(w, tagInternal))
	checkErr(&err, writeIntAsUint64(w, node.Freq))
	checkErr(&err, writeNode(w, node.Left))
	checkErr(&err, writeNode(w, node.Right))
	return err
}

func readNode(r *bytes.Reader, res **Node, depth int) error {
	if depth > maxCodeLen {
		return fmt.Errorf("tree deeper than %d levels", maxCodeLen)
	}
	tag, err := r.ReadByte()
	if err != nil {
		return err
	}

	switch tag {
	case tagAbsent:
		*res = nil
		return nil
	case tagLeaf:
		var sym int32
		node := new(Node)
		checkErrNoEOF(&err, readLE(r, &sym))
		checkErrNoEOF(&err, readIntFromUint64(r, &node.Freq))
		node.Symbol = sym
		*res = node
		return err
	case tagInternal:
		node := new(Node)
		checkErrNoEOF(&err, readIntFromUint64(r, &node.Freq))
		checkErrNoEOF(&err, readNode(r, &node.Left, depth+1))
		checkErrNoEOF(&err, readNode(r, &node.Right, depth+1))
		if err == nil && (node.Left == nil || node.Right == nil) {
			err = fmt.Errorf("internal node at depth %d lacks a child", depth)
		}
		*res = node
		return err
	}
	return fmt.Errorf("invalid node tag %02X", tag)
}
