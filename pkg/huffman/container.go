package huffman

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Container is the unit written to storage: the tree, then the payload.
type Container struct {
	_       struct{} `cbor:",toarray"`
	Tree    *Node
	Payload PackedPayload
}

// NewEmptyContainer returns the container of an empty text.
func NewEmptyContainer() *Container {
	return &Container{Payload: PackedPayload{0}}
}

func (c *Container) validate() error {
	if _, err := c.Payload.BitLen(); err != nil {
		return err
	}
	if c.Tree == nil {
		return nil
	}
	return validateTree(c.Tree)
}

// BlobCodec turns a container into bytes and back.
type BlobCodec interface {
	Name() string
	Marshal(c *Container) ([]byte, error)
	Unmarshal(data []byte, c *Container) error
}

// Serialize checks c and encodes it with codec.
func (c *Container) Serialize(codec BlobCodec) ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return codec.Marshal(c)
}

// Deserialize decodes a blob produced by Serialize with the same codec and
// checks the result.
func Deserialize(codec BlobCodec, blob []byte) (*Container, error) {
	c := new(Container)
	if err := codec.Unmarshal(blob, c); err != nil {
		return nil, malformed(err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var codecs = map[string]BlobCodec{
	"gob":    GobCodec{},
	"binary": BinaryCodec{},
	"cbor":   CBORCodec{},
}

// DefaultCodec is used by the command line tool when no format is given.
var DefaultCodec BlobCodec = GobCodec{}

func CodecByName(name string) (BlobCodec, error) {
	if codec, ok := codecs[strings.ToLower(name)]; ok {
		return codec, nil
	}
	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownCodec, name, strings.Join(CodecNames(), ", "))
}

func CodecNames() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GobCodec stores containers with encoding/gob.
type GobCodec struct{}

func (GobCodec) Name() string { return "gob" }

func (GobCodec) Marshal(c *Container) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (GobCodec) Unmarshal(data []byte, c *Container) error {
	r := bytes.NewReader(data)
	if err := gob.NewDecoder(r).Decode(c); err != nil {
		return malformed(err)
	}
	if r.Len() > 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedBlob, r.Len())
	}
	return nil
}

var (
	cborEncMode = mustEncMode(cbor.CoreDetEncOptions())
	// Every tree level nests one array; leave room for the container itself.
	cborDecMode = mustDecMode(cbor.DecOptions{MaxNestedLevels: maxCodeLen + 8})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// CBORCodec stores containers as CBOR arrays in core deterministic
// encoding, so equal containers always give equal blobs.
type CBORCodec struct{}

func (CBORCodec) Name() string { return "cbor" }

func (CBORCodec) Marshal(c *Container) ([]byte, error) {
	return cborEncMode.Marshal(c)
}

func (CBORCodec) Unmarshal(data []byte, c *Container) error {
	return malformed(cborDecMode.Unmarshal(data, c))
}
