package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/ei-projects/huffpack/pkg/huffman"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compressCmd = cobra.Command{
	Use:   "compress <input>",
	Short: "Compress a text file into a container",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		charset, _ := cmd.Flags().GetString("charset")
		if output == "" {
			output = args[0] + ".huf"
		}
		compressFile(args[0], output, charset, codecFromFlags(cmd))
	},
}

var decompressCmd = cobra.Command{
	Use:   "decompress <container>",
	Short: "Restore the text stored in a container",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		charset, _ := cmd.Flags().GetString("charset")
		decompressFile(args[0], output, charset, codecFromFlags(cmd))
	},
}

var roundtripCmd = cobra.Command{
	Use:   "roundtrip <input>",
	Short: "Compress a text file, read the container back and verify it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keep, _ := cmd.Flags().GetString("keep")
		charset, _ := cmd.Flags().GetString("charset")
		if err := roundtripFile(args[0], keep, charset, codecFromFlags(cmd)); err != nil {
			log.Fatalf("Round trip of %s failed: %s", args[0], err)
		}
	},
}

var codesCmd = cobra.Command{
	Use:   "codes <input>",
	Short: "Print the Huffman code of every symbol of a text file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		charset, _ := cmd.Flags().GetString("charset")
		printCodes(args[0], charset)
	},
}

var codecCmds = []*cobra.Command{&compressCmd, &decompressCmd, &roundtripCmd, &codesCmd}

func init() {
	formatHelp := fmt.Sprintf("Container format: %v (default %s)",
		huffman.CodecNames(), huffman.DefaultCodec.Name())
	for _, cmd := range codecCmds {
		cmd.Flags().String("charset", "utf-8", "Charset of the text file")
	}
	for _, cmd := range []*cobra.Command{&compressCmd, &decompressCmd, &roundtripCmd} {
		cmd.Flags().String("format", "", formatHelp)
	}
	compressCmd.Flags().StringP("output", "o", "", "Container path (default <input>.huf)")
	decompressCmd.Flags().StringP("output", "o", "", "Output text path, stdout if empty or -")
	roundtripCmd.Flags().String("keep", "", "Keep the container at this path")
}

func logStats(msg string, c *huffman.Container, blobSize int) {
	st := c.Stats()
	log.WithFields(logrus.Fields{
		"symbols":  st.Symbols,
		"distinct": st.Distinct,
		"bits":     st.Bits,
		"payload":  st.PayloadBytes,
		"blob":     blobSize,
	}).Info(msg)
}

func fileSize(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return int(info.Size())
}

func encodeFile(input, charset string) *huffman.Container {
	text, err := readText(input, charset)
	if err != nil {
		log.Fatalf("Failed to read input: %s", err)
	}
	c, err := huffman.Encode(text)
	if err != nil {
		log.Fatalf("Failed to encode %s: %s", input, err)
	}
	log.Debugf("Packed payload of %s:\n%s", input, getPayloadDump(c.Payload))
	return c
}

func compressFile(input, output, charset string, codec huffman.BlobCodec) {
	c := encodeFile(input, charset)
	if err := huffman.SaveContainer(output, codec, c); err != nil {
		log.Fatalf("Failed to save container: %s", err)
	}
	logStats(fmt.Sprintf("Compressed %s to %s (%s)", input, output, codec.Name()), c, fileSize(output))
}

func decompressFile(input, output, charset string, codec huffman.BlobCodec) {
	c, err := huffman.LoadContainer(input, codec)
	if err != nil {
		log.Fatalf("Failed to load container: %s", err)
	}
	text, err := huffman.Decode(c)
	if err != nil {
		log.Fatalf("Failed to decode %s: %s", input, err)
	}
	if err := writeText(output, charset, text); err != nil {
		log.Fatalf("Failed to write output: %s", err)
	}
	log.Debugf("Decompressed %d symbols from %s", c.Stats().Symbols, input)
}

// roundtripFile compresses input to a container, loads it back and checks
// the decoded text. Without keep the container lives in a temporary
// directory that is removed before returning.
func roundtripFile(input, keep, charset string, codec huffman.BlobCodec) error {
	path := keep
	if path == "" {
		dir, err := ioutil.TempDir("", "huffpack")
		if err != nil {
			return fmt.Errorf("failed to create temp dir: %w", err)
		}
		defer os.RemoveAll(dir)
		path = filepath.Join(dir, filepath.Base(input)+".huf")
	}

	text, err := readText(input, charset)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	c, err := huffman.Encode(text)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", input, err)
	}
	if err := huffman.SaveContainer(path, codec, c); err != nil {
		return fmt.Errorf("failed to save container: %w", err)
	}
	logStats(fmt.Sprintf("Wrote %s", path), c, fileSize(path))

	loaded, err := huffman.LoadContainer(path, codec)
	if err != nil {
		return fmt.Errorf("failed to load container: %w", err)
	}
	decoded, err := huffman.Decode(loaded)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if decoded != text {
		return fmt.Errorf("round trip mismatch: %d symbols in, %d symbols out",
			utf8.RuneCountInString(text), utf8.RuneCountInString(decoded))
	}
	log.Infof("Round trip of %s is exact", input)
	return nil
}

func printCodes(input, charset string) {
	text, err := readText(input, charset)
	if err != nil {
		log.Fatalf("Failed to read input: %s", err)
	}
	freqs := huffman.CountFrequencies(text)
	if len(freqs) == 0 {
		log.Warnf("%s is empty", input)
		return
	}
	root, err := huffman.BuildTree(freqs)
	if err != nil {
		log.Fatalf("Failed to build tree: %s", err)
	}
	table, err := huffman.GenerateCodes(root)
	if err != nil {
		log.Fatalf("Failed to generate codes: %s", err)
	}

	fmt.Printf("%-10s %-8s %s\n", "Symbol", "Count", "Code")
	for _, sym := range table.Symbols() {
		code := table[sym].String()
		if code == "" {
			code = "(empty)"
		}
		fmt.Printf("%-10q %-8d %s\n", sym, freqs[sym], code)
	}
	log.Debugf("%d symbols, %d distinct, %d bits encoded",
		freqs.Total(), len(freqs), table.EncodedLen(freqs))
}
