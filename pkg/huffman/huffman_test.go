package huffman

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func rand(seed *int) int {
	*seed = (*seed)*1103515245 + 12345
	return ((*seed) >> 0x10) & 0x7FFF
}

func randomText(size int, alphabet string) string {
	symbols := []rune(alphabet)
	text := make([]rune, size)
	seed := 0
	for i := range text {
		text[i] = symbols[rand(&seed)%len(symbols)]
	}
	return string(text)
}

var roundTripTexts = []string{
	"",
	"A",
	"AAAA",
	"ab",
	"abababab",
	"ABC CCC",
	"aabbbcccc",
	"abracadabra",
	"\x00\x00\x01",
	"Привет, мир! Hello, world!",
	"日本語のテキスト、日本語",
	randomText(0x3000, "abcdefghijklmnopqrstuvwxyz ,.\n"),
	randomText(0x1000, "01"),
	randomText(0x800, "αβγδεζηθ"),
}

func TestRoundTrip(t *testing.T) {
	for _, text := range roundTripTexts {
		c, err := Encode(text)
		if err != nil {
			t.Fatalf("encode %.20q: %v", text, err)
		}
		decoded, err := Decode(c)
		if err != nil {
			t.Fatalf("decode %.20q: %v", text, err)
		}
		if decoded != text {
			t.Errorf("round trip of %.20q gave %.20q", text, decoded)
		}
	}
}

func TestRoundTripScenario(t *testing.T) {
	c, err := Encode("ABC CCC")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(c.Payload, []byte{4, 0x65, 0x70}) {
		t.Errorf("unexpected payload % X", []byte(c.Payload))
	}
	bits, _ := Unpack(c.Payload)
	if bits.String() != "011001010111" {
		t.Errorf("unexpected bits %s", bits)
	}
	text, err := DecodeBits(bits, c.Tree)
	if err != nil || text != "ABC CCC" {
		t.Errorf("got %q, %v", text, err)
	}
	st := c.Stats()
	if st != (Stats{Symbols: 7, Distinct: 4, Bits: 12, PayloadBytes: 3}) {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestSingleSymbol(t *testing.T) {
	c, err := Encode("AAAA")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Tree.IsLeaf() || c.Tree.Freq != 4 || !bytes.Equal(c.Payload, []byte{0}) {
		t.Errorf("unexpected container %+v", c)
	}
	text, err := Decode(c)
	if err != nil || text != "AAAA" {
		t.Errorf("got %q, %v", text, err)
	}
}

func TestEmptyInput(t *testing.T) {
	c, err := Encode("")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, NewEmptyContainer()) {
		t.Errorf("unexpected container %+v", c)
	}
	if text, err := Decode(c); err != nil || text != "" {
		t.Errorf("got %q, %v", text, err)
	}
}

func TestDeterminism(t *testing.T) {
	for _, text := range roundTripTexts {
		c1, _ := Encode(text)
		c2, _ := Encode(text)
		if !reflect.DeepEqual(c1, c2) {
			t.Errorf("%.20q encoded differently", text)
		}
		if c1.Tree == nil || c1.Tree.IsLeaf() {
			continue
		}
		table1, _ := GenerateCodes(c1.Tree)
		table2, _ := GenerateCodes(c2.Tree)
		if !reflect.DeepEqual(table1, table2) {
			t.Errorf("%.20q produced different codes", text)
		}
	}
}

func TestDecodeCorrupt(t *testing.T) {
	ab, _ := Encode("ab")
	tests := []struct {
		name string
		c    *Container
	}{
		{"extra symbol", &Container{Tree: ab.Tree, Payload: PackedPayload{3, 0x40}}},
		{"missing symbol", &Container{Tree: ab.Tree, Payload: PackedPayload{1, 0x00}}},
		{"bits without tree", &Container{Payload: PackedPayload{1, 0x80}}},
		{"bits for single leaf", &Container{Tree: NewLeaf('A', 2), Payload: PackedPayload{1, 0x00}}},
		{"no header", &Container{Tree: ab.Tree}},
	}
	for _, test := range tests {
		if _, err := Decode(test.c); !errors.Is(err, ErrCorruptPayload) {
			t.Errorf("%s: unexpected error %v", test.name, err)
		}
	}
}

func TestDecodeHugeSingleSymbol(t *testing.T) {
	maxInt := int(^uint(0) >> 1)
	tests := []struct {
		sym  Symbol
		freq int
	}{
		{'A', maxInt},
		{'ж', maxRepeatLen/2 + 1},
		{-1, maxRepeatLen/3 + 1},
	}
	for _, test := range tests {
		c := &Container{Tree: NewLeaf(test.sym, test.freq), Payload: PackedPayload{0}}
		blob, err := c.Serialize(BinaryCodec{})
		if err != nil {
			t.Fatal(err)
		}
		c2, err := Deserialize(BinaryCodec{}, blob)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Decode(c2); !errors.Is(err, ErrCorruptPayload) {
			t.Errorf("%q x %d: unexpected error %v", test.sym, test.freq, err)
		}
	}

	if text, err := repeatSymbol('ж', 3); err != nil || text != "жжж" {
		t.Errorf("got %q, %v", text, err)
	}
}

func TestDecodeBitsTruncated(t *testing.T) {
	c, _ := Encode("ABC CCC")
	// A prefix of the stream ending on a code boundary still decodes, one
	// ending inside the code of ' ' does not.
	bits, _ := ParseBitString("0110010101")
	text, err := DecodeBits(bits, c.Tree)
	if err != nil || text != "ABC C" {
		t.Errorf("got %q, %v", text, err)
	}
	bits, _ = ParseBitString("01100101")
	if _, err := DecodeBits(bits, c.Tree); !errors.Is(err, ErrCorruptPayload) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestDecodeBitsInvalidTree(t *testing.T) {
	bits, _ := ParseBitString("1")
	if _, err := DecodeBits(bits, &Node{Freq: 1, Left: NewLeaf('a', 1)}); !errors.Is(err, ErrInvalidTree) {
		t.Errorf("unexpected error %v", err)
	}
	if _, err := DecodeBits(bits, nil); !errors.Is(err, ErrInvalidTree) {
		t.Errorf("unexpected error %v", err)
	}
}
