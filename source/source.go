// Package source keeps grammar descriptions and matched input together with their names
// and translates byte offsets to line/column pairs for diagnostics.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is an immutable named byte buffer. Safe for concurrent use.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, 1, lineCnt)
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}

	return s
}

func NewString(name, content string) *Source {
	return New(name, []byte(content))
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column (in runes) for byte offset pos;
// pos is clamped to content bounds.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Offset converts 1-based line and column (in bytes) back to byte offset.
func (s *Source) Offset(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

// At returns position descriptor for byte offset pos.
func (s *Source) At(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Pos is a resolved position in a Source, implements causticlexer.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Offset() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
