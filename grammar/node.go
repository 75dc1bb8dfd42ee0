package grammar

import (
	"strings"

	"github.com/CausticLang/CausticLexer/pattern"
)

// Kind selects node variant.
type Kind uint8

const (
	SequenceNode Kind = iota + 1
	AlternationNode
	RepetitionNode
	LiteralNode
	PatternNode
	ReferenceNode
	ConstantNode
	CommitNode
)

var kindNames = map[Kind]string{
	SequenceNode:    "sequence",
	AlternationNode: "alternation",
	RepetitionNode:  "repetition",
	LiteralNode:     "literal",
	PatternNode:     "pattern",
	ReferenceNode:   "reference",
	ConstantNode:    "constant",
	CommitNode:      "commit",
}

func (k Kind) String() string {
	name, found := kindNames[k]
	if !found {
		return "unknown"
	}
	return name
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, found := kindNames[k]; !found {
		return nil, unknownKindError(k.String())
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return unknownKindError(string(text))
}

// CaptureMode tells how node result is stored by the enclosing sequence.
type CaptureMode uint8

const (
	NoCapture    CaptureMode = iota // plain child, participates in list results only
	AnonCapture                     // ":", the enclosing sequence result is the last anonymous child result
	NamedCapture                    // "name:", stored under Name in a mapping
	DropCapture                     // "^:", result discarded
)

type Capture struct {
	Mode CaptureMode
	Name string
}

// ParseCapture converts capture prefix (as written before an expression) to Capture.
func ParseCapture(prefix string) (Capture, error) {
	switch prefix {
	case "":
		return Capture{}, nil
	case ":":
		return Capture{Mode: AnonCapture}, nil
	case "^:":
		return Capture{Mode: DropCapture}, nil
	}

	if strings.HasSuffix(prefix, ":") && IsName(prefix[:len(prefix)-1]) {
		return Capture{Mode: NamedCapture, Name: prefix[:len(prefix)-1]}, nil
	}
	return Capture{}, wrongCaptureError(prefix)
}

// String returns capture prefix.
func (c Capture) String() string {
	switch c.Mode {
	case AnonCapture:
		return ":"
	case NamedCapture:
		return c.Name + ":"
	case DropCapture:
		return "^:"
	default:
		return ""
	}
}

func (c Capture) IsZero() bool {
	return c.Mode == NoCapture
}

func (c Capture) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Capture) UnmarshalText(text []byte) (e error) {
	*c, e = ParseCapture(string(text))
	return
}

// IsName reports whether s is a dotted identifier.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i := 0; i < len(part); i++ {
			c := part[i]
			letter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
			if !letter && (i == 0 || c < '0' || c > '9') {
				return false
			}
		}
	}
	return true
}

// Unbounded is the Max value of repetition without upper limit.
const Unbounded = -1

// Node is a rule graph element. Nodes are built with constructor functions
// and must not be modified after they are passed to New.
type Node struct {
	Kind      Kind     `json:"kind" yaml:"kind"`
	Capture   Capture  `json:"capture,omitempty" yaml:"capture,omitempty"`
	Sensitive bool     `json:"sensitive,omitempty" yaml:"sensitive,omitempty"`
	Children  []*Node  `json:"children,omitempty" yaml:"children,omitempty"`
	Min       int      `json:"min,omitempty" yaml:"min,omitempty"`
	Max       int      `json:"max,omitempty" yaml:"max,omitempty"`
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
	Pattern   *Pattern `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Ref       string   `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// Pattern holds regular expression of a pattern node.
// Group is the index of capturing group used as node result, negative value means whole match.
type Pattern struct {
	Expr  string        `json:"expr" yaml:"expr"`
	Group int           `json:"group" yaml:"group"`
	Flags pattern.Flags `json:"flags,omitempty" yaml:"flags,omitempty"`

	re     pattern.Regexp
	engine string
}

// NewPattern creates pattern compiled with engine.
func NewPattern(engine pattern.Engine, expr string, group int, flags pattern.Flags) (*Pattern, error) {
	p := &Pattern{Expr: expr, Group: group, Flags: flags}
	return p, p.compile(engine)
}

func (p *Pattern) compile(engine pattern.Engine) error {
	if p.re != nil && p.engine == engine.Name() {
		return nil
	}

	re, e := engine.Compile(p.Expr, p.Flags)
	if e != nil {
		return e
	}
	p.re = re
	p.engine = engine.Name()
	return nil
}

// Regexp returns compiled expression or nil if pattern was not compiled yet.
func (p *Pattern) Regexp() pattern.Regexp {
	return p.re
}

func Seq(children ...*Node) *Node {
	return &Node{Kind: SequenceNode, Children: children}
}

// SeqWS creates whitespace-sensitive sequence.
func SeqWS(children ...*Node) *Node {
	return &Node{Kind: SequenceNode, Children: children, Sensitive: true}
}

func Alt(candidates ...*Node) *Node {
	return &Node{Kind: AlternationNode, Children: candidates}
}

// Rep creates repetition, max is Unbounded or not less than min.
func Rep(min, max int, item *Node) *Node {
	return &Node{Kind: RepetitionNode, Min: min, Max: max, Children: []*Node{item}}
}

// RepWS creates whitespace-sensitive repetition.
func RepWS(min, max int, item *Node) *Node {
	n := Rep(min, max, item)
	n.Sensitive = true
	return n
}

func Lit(text string) *Node {
	return &Node{Kind: LiteralNode, Text: text}
}

// Pat creates pattern node, group < 0 selects the whole match.
func Pat(expr string, group int, flags pattern.Flags) *Node {
	return &Node{Kind: PatternNode, Pattern: &Pattern{Expr: expr, Group: group, Flags: flags}}
}

// PatNode wraps already compiled pattern.
func PatNode(p *Pattern) *Node {
	return &Node{Kind: PatternNode, Pattern: p}
}

func Ref(name string) *Node {
	return &Node{Kind: ReferenceNode, Ref: name}
}

func Const(value string) *Node {
	return &Node{Kind: ConstantNode, Text: value}
}

func Commit() *Node {
	return &Node{Kind: CommitNode}
}

// Named sets named capture and returns n.
func (n *Node) Named(name string) *Node {
	n.Capture = Capture{NamedCapture, name}
	return n
}

// Anon sets anonymous capture and returns n.
func (n *Node) Anon() *Node {
	n.Capture = Capture{Mode: AnonCapture}
	return n
}

// Drop sets drop capture and returns n.
func (n *Node) Drop() *Node {
	n.Capture = Capture{Mode: DropCapture}
	return n
}

// WithCapture sets capture and returns n.
func (n *Node) WithCapture(c Capture) *Node {
	n.Capture = c
	return n
}

// Consumes reports whether node may advance cursor.
func (n *Node) Consumes() bool {
	return n.Kind != ConstantNode && n.Kind != CommitNode
}

// Item returns repeated node of repetition.
func (n *Node) Item() *Node {
	if n.Kind != RepetitionNode || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Equal compares node trees, compiled state is ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	if n.Kind != other.Kind || n.Capture != other.Capture || n.Sensitive != other.Sensitive ||
		n.Min != other.Min || n.Max != other.Max || n.Text != other.Text || n.Ref != other.Ref ||
		len(n.Children) != len(other.Children) {
		return false
	}

	if (n.Pattern == nil) != (other.Pattern == nil) {
		return false
	}
	if n.Pattern != nil {
		p, o := n.Pattern, other.Pattern
		if p.Expr != o.Expr || p.Flags != o.Flags || groupIndex(p.Group) != groupIndex(o.Group) {
			return false
		}
	}

	for i, child := range n.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

func groupIndex(g int) int {
	if g < 0 {
		return 0
	}
	return g
}
