package huffman

import (
	"bufio"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
)

// WriteContainer serializes c completely and then writes the blob to w.
func WriteContainer(w io.Writer, codec BlobCodec, c *Container) error {
	blob, err := c.Serialize(codec)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err = bw.Write(blob); err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

// ReadContainer reads r to the end and decodes the blob.
func ReadContainer(r io.Reader, codec BlobCodec) (*Container, error) {
	blob, err := ioutil.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	c, err := Deserialize(codec, blob)
	if err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}
	return c, nil
}

// SaveContainer writes c to path. The blob goes to a temporary file in the
// same directory first and is renamed over path once complete, so path
// holds either the old content or the whole new blob.
func SaveContainer(path string, codec BlobCodec, c *Container) error {
	blob, err := c.Serialize(codec)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, blob); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// LoadContainer reads the whole file at path and decodes it.
func LoadContainer(path string, codec BlobCodec) (*Container, error) {
	blob, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	c, err := Deserialize(codec, blob)
	if err != nil {
		return nil, &StorageError{Op: "decode", Path: path, Err: err}
	}
	return c, nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := ioutil.TempFile(dir, "."+name+".tmp*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = f.Chmod(0644); err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
