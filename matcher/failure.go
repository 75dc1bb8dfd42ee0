package matcher

// failure tracks the furthest position where a terminal failed and what was expected there.
type failure struct {
	pos      int
	expected []string
}

func (f *failure) add(pos int, what string) {
	switch {
	case pos < f.pos:
		return
	case pos > f.pos:
		f.pos = pos
		f.expected = f.expected[:0:0]
	}

	for _, e := range f.expected {
		if e == what {
			return
		}
	}
	f.expected = append(f.expected, what)
}

// merge folds other into f keeping the furthest position.
func (f *failure) merge(other failure) {
	switch {
	case other.pos > f.pos:
		*f = other
	case other.pos == f.pos:
		for _, what := range other.expected {
			f.add(other.pos, what)
		}
	}
}
