package huffman

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput       = errors.New("empty input")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrMissingCode      = errors.New("missing code")
	ErrEmptyCode        = errors.New("empty code")
	ErrCodeTooLong      = errors.New("code too long")
	ErrCorruptPayload   = errors.New("corrupt payload")
	ErrInvalidTree      = errors.New("invalid tree")
	ErrMalformedBlob    = errors.New("malformed blob")
	ErrUnknownCodec     = errors.New("unknown codec")
	ErrStorage          = errors.New("storage failure")
)

// MissingCodeError is returned by Pack when the text holds a symbol the code
// table doesn't cover.
type MissingCodeError struct {
	Symbol Symbol
	Offset int // Byte offset of the symbol in the text
}

func (e *MissingCodeError) Error() string {
	return fmt.Sprintf("missing code for symbol %q at offset %d", e.Symbol, e.Offset)
}

func (e *MissingCodeError) Is(target error) bool {
	return target == ErrMissingCode
}

// StorageError records a failed container write or read and the file it
// happened on. Path is empty for plain io.Writer/io.Reader transfers.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
