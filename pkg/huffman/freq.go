package huffman

import "sort"

// Symbol is one character of the input text.
type Symbol = rune

// Frequencies maps every distinct symbol of a text to its occurrence count.
type Frequencies map[Symbol]int

type SymbolFreq struct {
	Symbol Symbol
	Freq   int
}

func CountFrequencies(text string) Frequencies {
	freqs := make(Frequencies)
	for _, r := range text {
		freqs[r]++
	}
	return freqs
}

// Sorted returns the entries ordered by symbol.
func (freqs Frequencies) Sorted() []SymbolFreq {
	entries := make([]SymbolFreq, 0, len(freqs))
	for sym, freq := range freqs {
		entries = append(entries, SymbolFreq{Symbol: sym, Freq: freq})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Symbol < entries[j].Symbol
	})
	return entries
}

func (freqs Frequencies) Total() int {
	total := 0
	for _, freq := range freqs {
		total += freq
	}
	return total
}
