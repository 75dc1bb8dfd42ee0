package grammar

import (
	"sort"

	"github.com/CausticLang/CausticLexer/internal/queue"
	"github.com/CausticLang/CausticLexer/pattern"
)

func checkNodes(g *Grammar, e error) error {
	if e != nil {
		return e
	}

	for _, r := range g.rules {
		if r.Root.Kind == CommitNode {
			return commitPlacementError(r.Name, "commit outside of a sequence")
		}
		if e = checkNode(g, r.Name, r.Root); e != nil {
			return e
		}
	}
	return nil
}

func checkNode(g *Grammar, rule string, n *Node) error {
	if n == nil {
		return emptyNodeError(rule, "nil node")
	}

	switch n.Kind {
	case SequenceNode:
		return checkSequence(g, rule, n)

	case AlternationNode:
		for _, child := range n.Children {
			if child != nil && child.Kind == CommitNode {
				return commitPlacementError(rule, "commit outside of a sequence")
			}
			if e := checkNode(g, rule, child); e != nil {
				return e
			}
		}

	case RepetitionNode:
		if len(n.Children) != 1 {
			return emptyNodeError(rule, "repetition must wrap exactly one node")
		}
		if n.Min < 0 || (n.Max != Unbounded && n.Max < n.Min) || n.Max < Unbounded {
			return rangeBoundsError(rule, n)
		}
		if n.Item() != nil && n.Item().Kind == CommitNode {
			return commitPlacementError(rule, "commit outside of a sequence")
		}
		return checkNode(g, rule, n.Item())

	case LiteralNode:
		if n.Text == "" {
			return emptyLiteralError(rule)
		}

	case PatternNode:
		if n.Pattern == nil {
			return emptyNodeError(rule, "pattern node without expression")
		}
		if e := n.Pattern.compile(g.engine); e != nil {
			return wrongPatternError(rule, e)
		}
		if groups := n.Pattern.re.NumGroups(); n.Pattern.Group > groups {
			return patternGroupError(rule, n.Pattern, groups)
		}

	case ReferenceNode, ConstantNode, CommitNode:

	default:
		return unknownKindError(n.Kind.String())
	}

	return nil
}

func checkSequence(g *Grammar, rule string, n *Node) error {
	named, anon := false, false
	commits := 0
	for i, child := range n.Children {
		if child == nil {
			return emptyNodeError(rule, "nil node")
		}

		if child.Kind == CommitNode {
			switch {
			case i == 0:
				return commitPlacementError(rule, "commit cannot start a sequence")
			case commits > 0:
				return commitPlacementError(rule, "multiple commits in one sequence")
			case !child.Capture.IsZero():
				return commitPlacementError(rule, "commit cannot be captured")
			}
			commits++
			continue
		}

		switch child.Capture.Mode {
		case NamedCapture:
			named = true
		case AnonCapture:
			anon = true
		}

		if e := checkNode(g, rule, child); e != nil {
			return e
		}
	}

	if named && anon {
		return mixedCaptureError(rule, n)
	}
	return nil
}

func findUndefinedRules(g *Grammar, e error) error {
	if e != nil {
		return e
	}

	for _, r := range g.rules {
		missing := make(map[string]bool)
		walk(r.Root, func(n *Node) {
			if n.Kind == ReferenceNode && !g.HasRule(n.Ref) {
				missing[n.Ref] = true
			}
		})
		if len(missing) > 0 {
			return unknownRuleError(r.Name, sortedKeys(missing))
		}
	}
	return nil
}

func walk(n *Node, f func(*Node)) {
	f(n)
	for _, child := range n.Children {
		walk(child, f)
	}
}

func sortedKeys(m map[string]bool) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// nullableRules returns rules able to match without consuming input.
func nullableRules(g *Grammar) map[string]bool {
	res := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if !res[r.Name] && isNullable(r.Root, res) {
				res[r.Name] = true
				changed = true
			}
		}
	}
	return res
}

func isNullable(n *Node, rules map[string]bool) bool {
	switch n.Kind {
	case SequenceNode:
		for _, child := range n.Children {
			if !isNullable(child, rules) {
				return false
			}
		}
		return true

	case AlternationNode:
		for _, child := range n.Children {
			if isNullable(child, rules) {
				return true
			}
		}
		return false

	case RepetitionNode:
		return n.Min == 0 || isNullable(n.Item(), rules)

	case PatternNode:
		return pattern.MatchesEmpty(n.Pattern.re)

	case ReferenceNode:
		return rules[n.Ref]

	case LiteralNode:
		return false

	default:
		return true
	}
}

// leftRefs collects rules that n may enter before consuming any input.
func leftRefs(n *Node, nullable map[string]bool, refs map[string]bool) {
	switch n.Kind {
	case SequenceNode:
		for _, child := range n.Children {
			leftRefs(child, nullable, refs)
			if !isNullable(child, nullable) {
				return
			}
		}

	case AlternationNode, RepetitionNode:
		for _, child := range n.Children {
			leftRefs(child, nullable, refs)
		}

	case ReferenceNode:
		refs[n.Ref] = true
	}
}

func findRecursions(g *Grammar, e error) error {
	if e != nil {
		return e
	}

	nullable := nullableRules(g)
	first := make(map[string][]string, len(g.rules))
	for _, r := range g.rules {
		refs := make(map[string]bool)
		leftRefs(r.Root, nullable, refs)
		first[r.Name] = sortedKeys(refs)
	}

	recursive := make([]string, 0)
	for _, r := range g.rules {
		if ruleIsRecursive(r.Name, first) {
			recursive = append(recursive, r.Name)
		}
	}

	if len(recursive) > 0 {
		return recursionError(recursive)
	}
	return nil
}

func ruleIsRecursive(name string, first map[string][]string) bool {
	visited := make(map[string]bool)
	searchQueue := queue.New(first[name]...)
	for {
		next, fetched := searchQueue.First()
		if !fetched {
			return false
		}

		if next == name {
			return true
		}
		if visited[next] {
			continue
		}

		visited[next] = true
		for _, ref := range first[next] {
			searchQueue.Append(ref)
		}
	}
}
