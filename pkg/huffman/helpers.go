package huffman

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

func unexpectEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func checkErr(err *error, err2 error) {
	if *err == nil {
		*err = err2
	}
}

func checkErrNoEOF(err *error, err2 error) {
	if *err == nil {
		*err = unexpectEOF(err2)
	}
}

func malformed(err error) error {
	if err == nil || errors.Is(err, ErrMalformedBlob) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMalformedBlob, err)
}

// readExact fills buf, reporting a short read as io.ErrUnexpectedEOF.
func readExact(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return unexpectEOF(err)
}

func readLE(r io.Reader, data interface{}) error {
	return binary.Read(r, binary.LittleEndian, data)
}

func writeLE(w io.Writer, data interface{}) error {
	return binary.Write(w, binary.LittleEndian, data)
}

func readIntFromUint64(r io.Reader, val *int) error {
	var v uint64
	if err := readLE(r, &v); err != nil {
		return err
	}
	if v > math.MaxInt64 || uint64(int(v)) != v {
		return errors.New("Value does not fit")
	}
	*val = int(v)
	return nil
}

func writeIntAsUint64(w io.Writer, val int) error {
	if val < 0 {
		return errors.New("Value does not fit")
	}
	return writeLE(w, uint64(val))
}

func writeIntAsUint32(w io.Writer, val int) error {
	if val < 0 || uint64(val) > math.MaxUint32 {
		return errors.New("Value does not fit")
	}
	return writeLE(w, uint32(val))
}
