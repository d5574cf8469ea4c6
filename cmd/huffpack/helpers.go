package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ei-projects/huffpack/pkg/huffman"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// getPayloadDump renders the header byte, then the data bytes 8 per row in
// hex and in binary. Padding bits of the last byte show as '.'.
func getPayloadDump(payload huffman.PackedPayload) string {
	if len(payload) == 0 {
		return "(no header)\n"
	}
	bitLen, err := payload.BitLen()
	if err != nil {
		return fmt.Sprintf("header %02X: %s\n", payload[0], err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "header %02X: %d bits\n", payload[0], bitLen)
	data := payload[1:]
	for offset := 0; offset < len(data); offset += 8 {
		end := offset + 8
		if end > len(data) {
			end = len(data)
		}
		var hex, bin strings.Builder
		for i := offset; i < end; i++ {
			fmt.Fprintf(&hex, "%02X ", data[i])
			if i > offset {
				bin.WriteByte(' ')
			}
			for bit := 0; bit < 8; bit++ {
				if 8*i+bit >= bitLen {
					bin.WriteByte('.')
				} else {
					bin.WriteByte('0' + data[i]>>(7-uint(bit))&1)
				}
			}
		}
		fmt.Fprintf(&sb, "%08X  %-24s %s\n", offset, hex.String(), bin.String())
	}
	return sb.String()
}

// isUTF8 reports whether name designates UTF-8, which needs no conversion.
func isUTF8(name string) bool {
	name = strings.ToLower(name)
	return name == "" || name == "utf-8" || name == "utf8"
}

func lookupCharset(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", name, err)
	}
	return enc, nil
}

// readText loads the whole file and converts it from charset to UTF-8.
func readText(path, charset string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	if isUTF8(charset) {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s is not valid UTF-8, set --charset", path)
		}
		return string(data), nil
	}
	enc, err := lookupCharset(charset)
	if err != nil {
		return "", err
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s from %s: %w", path, charset, err)
	}
	return string(decoded), nil
}

// writeText converts text from UTF-8 to charset and writes it to path, or
// to stdout when path is empty or "-".
func writeText(path, charset, text string) error {
	data := []byte(text)
	if !isUTF8(charset) {
		enc, err := lookupCharset(charset)
		if err != nil {
			return err
		}
		if data, err = enc.NewEncoder().Bytes(data); err != nil {
			return fmt.Errorf("failed to encode text to %s: %w", charset, err)
		}
	}
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

func codecFromFlags(cmd *cobra.Command) huffman.BlobCodec {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		return huffman.DefaultCodec
	}
	codec, err := huffman.CodecByName(name)
	if err != nil {
		log.Fatalf("Invalid --format: %s", err)
	}
	return codec
}
