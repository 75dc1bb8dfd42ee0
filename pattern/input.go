package pattern

import (
	"sync"
	"unicode/utf8"
)

// Input is a text matched by expressions at different offsets during a single match call.
// Rune-based engines share its rune view, which is built on first use.
type Input struct {
	bytes []byte

	once   sync.Once
	runes  []rune
	starts []int // byte offset of each rune, then len(bytes)
	index  []int // rune index by byte offset, -1 inside a multibyte rune
}

func NewInput(content []byte) *Input {
	return &Input{bytes: content}
}

func (in *Input) Bytes() []byte {
	return in.bytes
}

func (in *Input) Len() int {
	return len(in.bytes)
}

// Invalid UTF-8 bytes are decoded as one RuneError each, same as Go string conversion.
func (in *Input) buildRunes() {
	l := len(in.bytes)
	in.runes = make([]rune, 0, l)
	in.starts = make([]int, 0, l+1)
	in.index = make([]int, l+1)

	for pos := 0; pos < l; {
		r, size := utf8.DecodeRune(in.bytes[pos:])
		in.index[pos] = len(in.runes)
		for i := 1; i < size; i++ {
			in.index[pos+i] = -1
		}
		in.runes = append(in.runes, r)
		in.starts = append(in.starts, pos)
		pos += size
	}

	in.index[l] = len(in.runes)
	in.starts = append(in.starts, l)
}

// runesFrom returns runes of the text starting at byte offset pos
// and absolute byte offsets of these runes followed by the text length.
// Returned slices share the rune view unless pos splits a multibyte rune.
func (in *Input) runesFrom(pos int) ([]rune, []int) {
	in.once.Do(in.buildRunes)
	if i := in.index[pos]; i >= 0 {
		return in.runes[i:], in.starts[i:]
	}

	tail := NewInput(in.bytes[pos:])
	tail.once.Do(tail.buildRunes)
	starts := make([]int, len(tail.starts))
	for i, s := range tail.starts {
		starts[i] = s + pos
	}
	return tail.runes, starts
}
