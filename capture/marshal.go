package capture

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes Unit as null, Scalar as string, Sequence as array, and Mapping as object keeping key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if e := v.writeJSON(&buf); e != nil {
		return nil, e
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case Scalar:
		text, e := json.Marshal(string(v.bytes))
		if e != nil {
			return e
		}
		buf.Write(text)

	case Sequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if e := item.writeJSON(buf); e != nil {
				return e
			}
		}
		buf.WriteByte(']')

	case Mapping:
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, e := json.Marshal(k)
			if e != nil {
				return e
			}
			buf.Write(key)
			buf.WriteByte(':')
			if e := v.items[i].writeJSON(buf); e != nil {
				return e
			}
		}
		buf.WriteByte('}')

	default:
		buf.WriteString("null")
	}
	return nil
}

// MarshalYAML encodes value the same way as MarshalJSON does.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case Scalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v.bytes)}

	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			n.Content = append(n.Content, item.yamlNode())
		}
		return n

	case Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i, k := range v.keys {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				v.items[i].yamlNode(),
			)
		}
		return n

	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
