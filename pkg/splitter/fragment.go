package splitter

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// maxAliasedNodes limits how many nodes a fragment may copy through alias expansion.
const maxAliasedNodes = 100_000

// YAML 1.1 booleans. They must stay quoted for YAML 1.1 readers to see strings.
var oldBools = map[string]bool{
	"y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
	"n": true, "N": true, "no": true, "No": true, "NO": true,
	"on": true, "On": true, "ON": true,
	"off": true, "Off": true, "OFF": true,
}

// Fragment is a single path of a document: {"paths": {Path: Details}}.
type Fragment struct {
	Path    string
	Details *yaml.Node
}

// Marshal renders the fragment as YAML.
// Mapping keys keep the source order unless sortKeys is set.
// Styles inherited from JSON (quoted strings, flow collections) are dropped,
// scalar values and their tags are emitted as parsed.
func (f Fragment) Marshal(indent int, sortKeys bool) ([]byte, error) {
	s := newBlockStyler()
	s.sortKeys = sortKeys

	details, err := s.copy(f.Details)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}

	in := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			strNode(pathsKey),
			{
				Kind:    yaml.MappingNode,
				Content: []*yaml.Node{strNode(f.Path), details},
			},
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(in); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, f.Path, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, f.Path, err)
	}

	return buf.Bytes(), nil
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// blockStyler deep-copies a node tree with aliases expanded, so the fragment
// doesn't depend on anchors defined in other paths.
type blockStyler struct {
	sortKeys   bool
	maxAliased int
	aliased    int
	aliasDepth int
	expanding  map[*yaml.Node]bool
}

func newBlockStyler() *blockStyler {
	return &blockStyler{
		maxAliased: maxAliasedNodes,
		expanding:  make(map[*yaml.Node]bool),
	}
}

func (s *blockStyler) copy(n *yaml.Node) (*yaml.Node, error) {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}

	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return nil, fmt.Errorf("%w: unknown anchor %q", ErrParse, n.Value)
		}
		if s.expanding[n.Alias] {
			return nil, fmt.Errorf("%w: anchor %q contains itself", ErrParse, n.Value)
		}
		s.expanding[n.Alias] = true
		s.aliasDepth++
		defer func() {
			delete(s.expanding, n.Alias)
			s.aliasDepth--
		}()
		return s.copy(n.Alias)
	}

	if s.aliasDepth > 0 {
		s.aliased++
		if s.aliased > s.maxAliased {
			return nil, fmt.Errorf("%w: excessive aliasing, more than %d nodes", ErrParse, s.maxAliased)
		}
	}

	c := *n
	c.Anchor = ""
	c.Style &^= yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle | yaml.FlowStyle
	if c.Kind == yaml.ScalarNode && c.Tag == "!!str" && oldBools[c.Value] {
		c.Style |= yaml.DoubleQuotedStyle
	}

	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			cc, err := s.copy(child)
			if err != nil {
				return nil, err
			}
			c.Content[i] = cc
		}
	}

	if s.sortKeys && c.Kind == yaml.MappingNode {
		sortMapping(&c)
	}

	return &c, nil
}

// sortMapping orders key/value pairs by key.
func sortMapping(n *yaml.Node) {
	pairs := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, [2]*yaml.Node{n.Content[i], n.Content[i+1]})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i][0].Value < pairs[j][0].Value
	})

	for i, p := range pairs {
		n.Content[2*i] = p[0]
		n.Content[2*i+1] = p[1]
	}
}
