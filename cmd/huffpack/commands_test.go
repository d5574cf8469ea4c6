package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/ei-projects/huffpack/pkg/huffman"
)

// withTempRoot points the process temp directory at a fresh test directory.
func withTempRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	old, had := os.LookupEnv("TMPDIR")
	os.Setenv("TMPDIR", root)
	t.Cleanup(func() {
		if had {
			os.Setenv("TMPDIR", old)
		} else {
			os.Unsetenv("TMPDIR")
		}
	})
	return root
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		t.Errorf("left behind: %s", f.Name())
	}
}

func TestRoundtripFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.txt")
	root := withTempRoot(t)
	if err := ioutil.WriteFile(input, []byte("ABC CCC"), 0644); err != nil {
		t.Fatal(err)
	}
	for _, codec := range []huffman.BlobCodec{huffman.GobCodec{}, huffman.BinaryCodec{}, huffman.CBORCodec{}} {
		if err := roundtripFile(input, "", "utf-8", codec); err != nil {
			t.Errorf("%s: %v", codec.Name(), err)
		}
	}
	assertEmptyDir(t, root)
}

func TestRoundtripFileKeep(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	keep := filepath.Join(dir, "kept.huf")
	if err := ioutil.WriteFile(input, []byte("aabbbcccc"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := roundtripFile(input, keep, "utf-8", huffman.DefaultCodec); err != nil {
		t.Fatal(err)
	}
	c, err := huffman.LoadContainer(keep, huffman.DefaultCodec)
	if err != nil {
		t.Fatal(err)
	}
	if text, err := huffman.Decode(c); err != nil || text != "aabbbcccc" {
		t.Errorf("got %q, %v", text, err)
	}
}

func TestRoundtripFileFailureCleansUp(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.txt")
	root := withTempRoot(t)
	if err := ioutil.WriteFile(input, []byte{0xFF, 0xFE}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := roundtripFile(input, "", "utf-8", huffman.DefaultCodec); err == nil {
		t.Error("invalid UTF-8 input must fail")
	}
	if err := roundtripFile(input+".missing", "", "utf-8", huffman.DefaultCodec); err == nil {
		t.Error("missing input must fail")
	}
	assertEmptyDir(t, root)
}
