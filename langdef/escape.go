package langdef

import (
	"strconv"
	"unicode/utf8"
)

type escapeCharEntry struct {
	substitute, hexLen byte
}

var escapeCharMap = map[byte]escapeCharEntry{
	'\\': {'\\', 0},
	'"':  {'"', 0},
	'\'': {'\'', 0},
	'a':  {'\a', 0},
	'b':  {'\b', 0},
	'f':  {'\f', 0},
	'n':  {'\n', 0},
	'r':  {'\r', 0},
	't':  {'\t', 0},
	'v':  {'\v', 0},
	'x':  {0, 2},
	'u':  {0, 4},
	'U':  {0, 8},
}

// badEscape describes malformed escape sequence found at offset in the decoded text.
type badEscape struct {
	offset int
	seq    string
	rune   bool
}

// decodeEscapes processes backslash escapes of string literals and constants.
// \xHH yields a single byte, \uHHHH and \UHHHHHHHH yield UTF-8 encoded runes,
// \ooo (1 to 3 octal digits) yields a byte, backslash followed by line feed is removed,
// unknown escapes are kept as is.
func decodeEscapes(content []byte) ([]byte, *badEscape) {
	result := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c != '\\' {
			result = append(result, c)
			continue
		}

		if i+1 >= len(content) {
			return nil, &badEscape{i, `\`, false}
		}

		letter := content[i+1]
		if letter == '\n' {
			i++
			continue
		}

		if letter >= '0' && letter <= '7' {
			end := i + 2
			for end < len(content) && end < i+4 && content[end] >= '0' && content[end] <= '7' {
				end++
			}
			code, _ := strconv.ParseUint(string(content[i+1:end]), 8, 16)
			if code > 0xff {
				return nil, &badEscape{i, string(content[i:end]), false}
			}
			result = append(result, byte(code))
			i = end - 1
			continue
		}

		entry, valid := escapeCharMap[letter]
		if !valid {
			result = append(result, c, letter)
			i++
			continue
		}

		if entry.hexLen == 0 {
			result = append(result, entry.substitute)
			i++
			continue
		}

		end := i + 2 + int(entry.hexLen)
		if end > len(content) {
			return nil, &badEscape{i, string(content[i:]), false}
		}
		code, e := strconv.ParseUint(string(content[i+2:end]), 16, 32)
		if e != nil {
			return nil, &badEscape{i, string(content[i:end]), false}
		}

		if letter == 'x' {
			result = append(result, byte(code))
		} else if utf8.ValidRune(rune(code)) {
			result = utf8.AppendRune(result, rune(code))
		} else {
			return nil, &badEscape{i, string(content[i:end]), true}
		}
		i = end - 1
	}

	return result, nil
}
