package grammar

import (
	"strconv"
	"strings"
)

// String renders node in grammar description syntax.
func (n *Node) String() string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}

	sb.WriteString(n.Capture.String())
	switch n.Kind {
	case SequenceNode:
		if n.Sensitive {
			writeList(sb, "{", n.Children, "}")
		} else {
			writeList(sb, "(", n.Children, ")")
		}

	case AlternationNode:
		writeList(sb, "[", n.Children, "]")

	case RepetitionNode:
		if n.Min > 0 {
			sb.WriteString(strconv.Itoa(n.Min))
		}
		if n.Sensitive {
			sb.WriteByte('~')
		} else {
			sb.WriteByte('-')
		}
		if n.Max >= 0 {
			sb.WriteString(strconv.Itoa(n.Max))
		}
		writeNode(sb, n.Item())

	case LiteralNode:
		sb.WriteString(Quote(n.Text))

	case PatternNode:
		if n.Pattern.Group >= 0 {
			sb.WriteString(strconv.Itoa(n.Pattern.Group))
		}
		sb.WriteByte('/')
		sb.WriteString(n.Pattern.Expr)
		sb.WriteByte('/')
		sb.WriteString(n.Pattern.Flags.String())

	case ReferenceNode:
		sb.WriteByte('@')
		sb.WriteString(n.Ref)

	case ConstantNode:
		sb.WriteByte('<')
		sb.WriteString(Quote(n.Text))
		sb.WriteByte('>')

	case CommitNode:
		sb.WriteByte('!')
	}
}

func writeList(sb *strings.Builder, open string, nodes []*Node, close string) {
	sb.WriteString(open)
	for i, child := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeNode(sb, child)
	}
	sb.WriteString(close)
}

const hexDigits = "0123456789abcdef"

// Quote returns double-quoted text using escapes understood by grammar descriptions.
// Bytes 0x80 and above are kept as is.
func Quote(text string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				sb.WriteString(`\x`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&15])
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// String renders grammar description, one statement per line.
// Rules with non-sequence roots are written as single-expression statements.
func (g *Grammar) String() string {
	var sb strings.Builder
	for _, r := range g.rules {
		sb.WriteString(r.Name)
		sb.WriteString(" =")
		root := r.Root
		if root.Kind == SequenceNode && !root.Sensitive && root.Capture.IsZero() {
			for _, child := range root.Children {
				sb.WriteByte(' ')
				writeNode(&sb, child)
			}
		} else {
			sb.WriteByte(' ')
			writeNode(&sb, root)
		}
		sb.WriteString(";\n")
	}
	return sb.String()
}
