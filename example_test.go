package causticlexer_test

import (
	"context"
	"fmt"

	"github.com/CausticLang/CausticLexer/langdef"
	"github.com/CausticLang/CausticLexer/matcher"
)

func Example() {
	input := `
foo = hello
bar = world
[sec]
baz =
[sec.subsec]
qux = !
`
	description := `
config = :0-[@section @value @nl];
nl = kind:<nl> "\n";
section = kind:<section> "[" ! name:/[a-z]+(?:\.[a-z]+)*/ "]" "\n";
value = kind:<value> name:/[a-z]+/ "=" ! val:0-1/[^\n]+/ "\n";
`
	compiled, e := langdef.CompileString("example grammar", description)
	if e != nil {
		fmt.Println(e)
		return
	}

	configMatcher, e := matcher.New(compiled.Grammar, matcher.WithSkip(`[ \t\r]+`))
	if e != nil {
		panic(e)
	}

	tree, e := configMatcher.MatchString(context.Background(), "config", input)
	if e != nil {
		fmt.Println(e)
		return
	}

	result := make(map[string]string)
	prefix := ""
	for _, entry := range tree.Items() {
		kind, _ := entry.Get("kind")
		name, _ := entry.Get("name")
		switch kind.Text() {
		case "section":
			prefix = name.Text() + "."
		case "value":
			value := ""
			if val, _ := entry.Get("val"); val.Len() > 0 {
				value = val.Index(0).Text()
			}
			result[prefix+name.Text()] = value
		}
	}
	fmt.Println(result)
	// Output: map[bar:world foo:hello sec.baz: sec.subsec.qux:!]
}

func Example_matchError() {
	compiled := langdef.MustCompile("pair", `pair = key:/\w+/ "=" ! val:/\w+/;`)
	_, e := matcher.MustNew(compiled.Grammar).MatchString(context.Background(), "pair", "a = ;")
	fmt.Println(e)
	// Output: unexpected ";", expecting /\w+/ at line 1 col 5
}
