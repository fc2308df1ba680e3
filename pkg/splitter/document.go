package splitter

import (
	"fmt"

	"github.com/cubahno/specsplit/internal/files"
	"gopkg.in/yaml.v3"
)

const pathsKey = "paths"

// Document is a parsed OpenAPI / Swagger document.
// Only the paths mapping is interpreted, everything else is ignored.
// Source is where the document was loaded from, empty for parsed content.
// Format is either files.FormatJSON or files.FormatYAML.
type Document struct {
	Source string
	Format string
	root   *yaml.Node
}

// PathEntry is a single item of the paths mapping.
// Details are kept as parsed and passed through unchanged.
type PathEntry struct {
	Path    string
	Details *yaml.Node
}

// Parse parses JSON or YAML content.
// The top level must be a mapping.
func Parse(content []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrParse)
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrParse)
	}

	return &Document{
		Format: files.DetectFormat(content),
		root:   top,
	}, nil
}

// Paths returns the path entries in the order they appear in the document.
func (d *Document) Paths() ([]PathEntry, error) {
	node := d.lookup(pathsKey)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, pathsKey)
	}

	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s is not a mapping (line %d)", ErrParse, pathsKey, node.Line)
	}

	res := make([]PathEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		res = append(res, PathEntry{
			Path:    node.Content[i].Value,
			Details: node.Content[i+1],
		})
	}

	return res, nil
}

func (d *Document) lookup(key string) *yaml.Node {
	if d == nil || d.root == nil {
		return nil
	}

	for i := 0; i+1 < len(d.root.Content); i += 2 {
		if k := d.root.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			return d.root.Content[i+1]
		}
	}

	return nil
}
