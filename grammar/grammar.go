// Package grammar defines the node model and the rule graph interpreted by matcher.
package grammar

import (
	"github.com/CausticLang/CausticLexer/pattern"
)

// Rule is a named root node.
type Rule struct {
	Name string `json:"name" yaml:"name"`
	Root *Node  `json:"root" yaml:"root"`
}

// Grammar is an ordered set of rules. It is immutable and safe for concurrent use.
// Any rule may be used as a matching entry point.
type Grammar struct {
	rules  []Rule
	index  map[string]int
	engine pattern.Engine
}

// New validates rules, compiles patterns using engine (pattern.Default if nil), and builds grammar.
// Node trees become owned by the grammar.
func New(engine pattern.Engine, rules ...Rule) (*Grammar, error) {
	if engine == nil {
		engine = pattern.Default
	}

	g := &Grammar{
		rules:  make([]Rule, 0, len(rules)),
		index:  make(map[string]int, len(rules)),
		engine: engine,
	}

	var e error
	e = addRules(g, rules, e)
	e = checkNodes(g, e)
	e = findUndefinedRules(g, e)
	e = findRecursions(g, e)
	if e != nil {
		return nil, e
	}

	return g, nil
}

// MustNew is like New but panics on error.
func MustNew(engine pattern.Engine, rules ...Rule) *Grammar {
	g, e := New(engine, rules...)
	if e != nil {
		panic(e)
	}
	return g
}

func addRules(g *Grammar, rules []Rule, e error) error {
	if e != nil {
		return e
	}

	for _, r := range rules {
		if !IsName(r.Name) {
			return wrongNameError(r.Name)
		}
		if _, found := g.index[r.Name]; found {
			return duplicateRuleError(r.Name)
		}
		if r.Root == nil {
			return emptyNodeError(r.Name, "no root node")
		}
		g.index[r.Name] = len(g.rules)
		g.rules = append(g.rules, r)
	}
	return nil
}

// Rule returns root node of named rule or nil.
func (g *Grammar) Rule(name string) *Node {
	i, found := g.index[name]
	if !found {
		return nil
	}
	return g.rules[i].Root
}

func (g *Grammar) HasRule(name string) bool {
	_, found := g.index[name]
	return found
}

// Rules returns rules in definition order.
func (g *Grammar) Rules() []Rule {
	res := make([]Rule, len(g.rules))
	copy(res, g.rules)
	return res
}

func (g *Grammar) Names() []string {
	res := make([]string, len(g.rules))
	for i, r := range g.rules {
		res[i] = r.Name
	}
	return res
}

func (g *Grammar) Len() int {
	return len(g.rules)
}

// Engine returns regexp engine used to compile patterns.
func (g *Grammar) Engine() pattern.Engine {
	return g.engine
}

// Equal reports whether both grammars define the same rules in the same order.
func (g *Grammar) Equal(other *Grammar) bool {
	if len(g.rules) != len(other.rules) {
		return false
	}
	for i, r := range g.rules {
		if r.Name != other.rules[i].Name || !r.Root.Equal(other.rules[i].Root) {
			return false
		}
	}
	return true
}

// Diff returns names of rules that differ between grammars, including missing ones.
func (g *Grammar) Diff(other *Grammar) []string {
	res := make([]string, 0)
	for _, r := range g.rules {
		if !r.Root.Equal(other.Rule(r.Name)) {
			res = append(res, r.Name)
		}
	}
	for _, r := range other.rules {
		if !g.HasRule(r.Name) {
			res = append(res, r.Name)
		}
	}
	return res
}
