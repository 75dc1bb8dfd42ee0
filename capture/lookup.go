package capture

import (
	"strconv"
	"strings"
)

// Lookup walks v by dotted path: mapping keys (which may contain dots themselves,
// the longest matching key wins) and sequence indexes (negative ones count from the end).
// Empty path returns v.
func Lookup(v Value, path string) (Value, bool) {
	if path == "" {
		return v, true
	}
	return lookup(v, strings.Split(path, "."))
}

func lookup(v Value, segs []string) (Value, bool) {
	if len(segs) == 0 {
		return v, true
	}

	switch v.kind {
	case Mapping:
		for j := len(segs); j > 0; j-- {
			if next, found := v.Get(strings.Join(segs[:j], ".")); found {
				if res, ok := lookup(next, segs[j:]); ok {
					return res, true
				}
			}
		}

	case Sequence:
		index, e := strconv.Atoi(segs[0])
		if e != nil {
			return Value{}, false
		}
		if index < 0 {
			index += len(v.items)
		}
		if index >= 0 && index < len(v.items) {
			return lookup(v.items[index], segs[1:])
		}
	}

	return Value{}, false
}

// Walk calls f for v and every nested value in depth-first order with its path.
// Returning false from f skips nested values.
func Walk(v Value, f func(path string, v Value) bool) {
	walk("", v, f)
}

func walk(path string, v Value, f func(string, Value) bool) {
	if !f(path, v) {
		return
	}

	for i, item := range v.items {
		var key string
		if v.kind == Mapping {
			key = v.keys[i]
		} else {
			key = strconv.Itoa(i)
		}
		if path != "" {
			key = path + "." + key
		}
		walk(key, item, f)
	}
}
