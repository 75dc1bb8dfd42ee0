package capture

import (
	cl "github.com/CausticLang/CausticLexer"
	"github.com/CausticLang/CausticLexer/grammar"
)

// Part is a matched sequence child with its capture.
type Part struct {
	Capture grammar.Capture
	Value   Value
}

// Assemble builds sequence result starting at pos:
// a Mapping of named parts if any part is named,
// else the value of the last anonymous part if any,
// else a Sequence of all non-dropped parts (Unit if there are none).
// Mixing named and anonymous parts is a configuration error.
func Assemble(pos int, parts []Part) (Value, error) {
	named, anon := false, false
	lastAnon := -1
	for i, p := range parts {
		switch p.Capture.Mode {
		case grammar.NamedCapture:
			named = true
		case grammar.AnonCapture:
			anon = true
			lastAnon = i
		}
	}

	switch {
	case named && anon:
		return Value{}, cl.FormatError(grammar.MixedCaptureError, "cannot mix named and anonymous captures in one sequence")

	case named:
		b := NewMappingBuilder(pos)
		for _, p := range parts {
			if p.Capture.Mode == grammar.NamedCapture {
				b.Set(p.Capture.Name, p.Value)
			}
		}
		return b.Value(), nil

	case anon:
		return parts[lastAnon].Value, nil
	}

	items := make([]Value, 0, len(parts))
	for _, p := range parts {
		if p.Capture.Mode != grammar.DropCapture {
			items = append(items, p.Value)
		}
	}
	if len(items) == 0 {
		return NewUnit(pos), nil
	}
	return NewSequence(pos, items), nil
}
