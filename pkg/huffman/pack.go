package huffman

import "fmt"

// PackedPayload is a header byte followed by the packed data bytes. The
// header holds the bit length modulo 8: a value of 0 means the last data
// byte is fully used, 1..7 give the number of valid high-order bits in it.
type PackedPayload []byte

// BitLen returns the number of meaningful bits in the payload.
func (payload PackedPayload) BitLen() (int, error) {
	if len(payload) == 0 {
		return 0, fmt.Errorf("%w: missing header byte", ErrCorruptPayload)
	}
	header, dataLen := int(payload[0]), len(payload)-1
	if header > 7 {
		return 0, fmt.Errorf("%w: header %d out of range", ErrCorruptPayload, header)
	}
	if dataLen == 0 {
		if header != 0 {
			return 0, fmt.Errorf("%w: header %d without data", ErrCorruptPayload, header)
		}
		return 0, nil
	}
	lastBits := header
	if lastBits == 0 {
		lastBits = 8
	}
	return 8*(dataLen-1) + lastBits, nil
}

// Pack concatenates the codes of the text symbols in order. Every symbol of
// text must have a non-empty code in table.
func Pack(text string, table CodeTable) (PackedPayload, error) {
	bw := newBitsWriter(len(text) / 2)
	for i, sym := range text {
		code, ok := table[sym]
		if !ok {
			return nil, &MissingCodeError{Symbol: sym, Offset: i}
		}
		if code.Len == 0 {
			return nil, fmt.Errorf("%w: symbol %q at offset %d", ErrEmptyCode, sym, i)
		}
		bw.writeBits(code.Bits, code.Len)
	}
	return bw.payload(), nil
}

// Unpack returns the exact bit string Pack wrote into payload.
func Unpack(payload PackedPayload) (BitString, error) {
	n, err := payload.BitLen()
	if err != nil {
		return BitString{}, err
	}
	return BitString{data: payload[1:], n: n}, nil
}
