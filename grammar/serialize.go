package grammar

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/CausticLang/CausticLexer/pattern"
)

// document is the serialized form of a grammar; patterns are stored as source and recompiled on load.
type document struct {
	Engine string `json:"engine" yaml:"engine"`
	Rules  []Rule `json:"rules" yaml:"rules"`
}

func (g *Grammar) document() document {
	return document{Engine: g.engine.Name(), Rules: g.rules}
}

func (g *Grammar) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.document())
}

func (g *Grammar) MarshalYAML() (any, error) {
	return g.document(), nil
}

// Load decodes grammar serialized as JSON.
func Load(data []byte) (*Grammar, error) {
	var doc document
	if e := json.Unmarshal(data, &doc); e != nil {
		return nil, formatError(e)
	}
	return doc.build()
}

// LoadYAML decodes grammar serialized as YAML.
func LoadYAML(data []byte) (*Grammar, error) {
	var doc document
	if e := yaml.Unmarshal(data, &doc); e != nil {
		return nil, formatError(e)
	}
	return doc.build()
}

func (doc document) build() (*Grammar, error) {
	engine, e := pattern.Lookup(doc.Engine)
	if e != nil {
		return nil, e
	}
	return New(engine, doc.Rules...)
}
