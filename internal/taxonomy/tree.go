package taxonomy

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Node is one tag and the tags nested below it.
type Node struct {
	Name     string `json:"name"`
	Children []Node `json:"children,omitempty"`
}

// Tree is the taxonomy partitioned into its two root categories.
type Tree struct {
	Fishing    []Node `json:"fishing"`
	NonFishing []Node `json:"non_fishing"`
}

var ErrUnknownRoot = eris.New("unknown root category")

//go:embed shiptypes.yaml
var defaultYAML []byte

// Parse decodes a YAML taxonomy. The document is a mapping with the keys
// fishing and non_fishing; below them every level is either a mapping of
// tag to children, a sequence of leaf tags, or null for a leaf. Declaration
// order is preserved.
func Parse(data []byte) (Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Tree{}, eris.Wrap(err, "taxonomy: parse yaml")
	}
	if len(doc.Content) == 0 {
		return Tree{}, eris.New("taxonomy: empty document")
	}

	top := resolveAlias(doc.Content[0])
	if top.Kind != yaml.MappingNode {
		return Tree{}, eris.Errorf("taxonomy: line %d: top level must be a mapping", top.Line)
	}

	var tree Tree
	seen := make(map[string]bool, 2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		if seen[key.Value] {
			return Tree{}, eris.Wrapf(ErrDuplicateTag, "taxonomy: line %d: root %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		children, err := parseChildren(val)
		if err != nil {
			return Tree{}, err
		}
		switch key.Value {
		case Fishing:
			tree.Fishing = children
		case NonFishing:
			tree.NonFishing = children
		default:
			return Tree{}, eris.Wrapf(ErrUnknownRoot, "taxonomy: line %d: %q", key.Line, key.Value)
		}
	}
	return tree, nil
}

func parseChildren(n *yaml.Node) ([]Node, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return nil, eris.Errorf("taxonomy: line %d: expected a mapping or a list, got %q", n.Line, n.Value)
	case yaml.MappingNode:
		nodes := make([]Node, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			children, err := parseChildren(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Name: n.Content[i].Value, Children: children})
		}
		return nodes, nil
	case yaml.SequenceNode:
		var nodes []Node
		for _, item := range n.Content {
			item = resolveAlias(item)
			switch item.Kind {
			case yaml.ScalarNode:
				nodes = append(nodes, Node{Name: item.Value})
			case yaml.MappingNode:
				sub, err := parseChildren(item)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, sub...)
			default:
				return nil, eris.Errorf("taxonomy: line %d: unsupported list item", item.Line)
			}
		}
		return nodes, nil
	}
	return nil, eris.Errorf("taxonomy: line %d: unsupported node", n.Line)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// Load parses and builds a YAML taxonomy.
func Load(data []byte) (*Index, error) {
	tree, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(tree)
}

// Default builds the bundled ship-type taxonomy.
func Default() (*Index, error) {
	return Load(defaultYAML)
}
