// Package pattern provides the regular expression engines used by pattern nodes.
//
// Every compiled expression is anchored: it matches only at the very start of the input it is given.
package pattern

import (
	"strings"
)

// Flags modify expression semantics, same letters as in grammar descriptions.
type Flags uint8

const (
	IgnoreCase Flags = 1 << iota // i: case-insensitive
	Multiline                    // m: ^ and $ match at line boundaries
	DotAll                       // s: . matches \n
)

var flagLetters = []struct {
	flag   Flags
	letter byte
}{
	{IgnoreCase, 'i'},
	{Multiline, 'm'},
	{DotAll, 's'},
}

// ParseFlags converts flag letters to Flags. Repeated letters are allowed.
func ParseFlags(letters string) (Flags, error) {
	var f Flags
	for i := 0; i < len(letters); i++ {
		found := false
		for _, fl := range flagLetters {
			if fl.letter == letters[i] {
				f |= fl.flag
				found = true
				break
			}
		}
		if !found {
			return 0, flagError(letters[i])
		}
	}
	return f, nil
}

// String returns flag letters in canonical "ims" order.
func (f Flags) String() string {
	var sb strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			sb.WriteByte(fl.letter)
		}
	}
	return sb.String()
}

func (f Flags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Flags) UnmarshalText(text []byte) error {
	parsed, e := ParseFlags(string(text))
	if e != nil {
		return e
	}
	*f = parsed
	return nil
}

// Match describes successful anchored match.
type Match struct {
	// Size is the whole match length in bytes.
	Size int
	// Group holds the requested group text, valid only if HasGroup is set.
	Group []byte
	// GroupStart is the group offset from the match start.
	GroupStart int
	// HasGroup is false if the requested group did not participate in the match.
	HasGroup bool
}

// Regexp is a compiled anchored expression. Implementations are safe for concurrent use.
type Regexp interface {
	// MatchAt matches expression at byte offset pos of in, text before pos is not visible to expression.
	// Match offsets are relative to pos. group selects result text: 0 or negative means the whole match.
	MatchAt(in *Input, pos, group int) (Match, bool, error)
	// NumGroups returns the number of capturing groups.
	NumGroups() int
	// String returns the source expression.
	String() string
}

// Engine compiles expressions.
type Engine interface {
	Name() string
	Compile(expr string, flags Flags) (Regexp, error)
}

// MatchesEmpty reports whether r accepts empty input.
func MatchesEmpty(r Regexp) bool {
	_, ok, e := r.MatchAt(NewInput(nil), 0, 0)
	return ok && e == nil
}

const (
	RE2Name       = "re2"
	BacktrackName = "backtrack"
)

// Default is the engine used when none is specified.
var Default Engine = RE2{}

// Lookup returns engine by name, empty name means Default.
func Lookup(name string) (Engine, error) {
	switch name {
	case "":
		return Default, nil
	case RE2Name:
		return RE2{}, nil
	case BacktrackName:
		return Backtrack{Timeout: DefaultTimeout}, nil
	default:
		return nil, unknownEngineError(name)
	}
}

// Names lists known engine names.
func Names() []string {
	return []string{RE2Name, BacktrackName}
}

func groupText(input []byte, loc []int, group int) Match {
	m := Match{Size: loc[1]}
	if group < 0 {
		group = 0
	}
	if 2*group+1 < len(loc) && loc[2*group] >= 0 {
		m.Group = input[loc[2*group]:loc[2*group+1]]
		m.GroupStart = loc[2*group]
		m.HasGroup = true
	}
	return m
}

