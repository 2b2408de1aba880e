package maze

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brain-sim/antmaze/pkg/element"
)

// Node builders for document output. Grids are emitted as literal block
// scalars and element tokens single-quoted, so the document tree is
// assembled by hand instead of reflective marshalling.

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func quotedNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.SingleQuotedStyle}
}

func litNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.LiteralStyle}
}

func intNode(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func floatNode(f float64) *yaml.Node {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}

// mapNode builds a mapping from alternating key/value nodes.
func mapNode(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: pairs}
}

func seqNode(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

func elementsNode(specs []element.Spec) *yaml.Node {
	items := make([]*yaml.Node, len(specs))
	for i, spec := range specs {
		entry := mapNode(
			strNode("name"), strNode(spec.Name),
			strNode("token"), quotedNode(spec.Token),
		)
		if spec.Value != nil {
			entry.Content = append(entry.Content, strNode("value"), intNode(*spec.Value))
		}
		items[i] = entry
	}
	return seqNode(items...)
}

func configNode(spec *ConfigSpec) *yaml.Node {
	node := mapNode(
		strNode("cell_elements"), elementsNode(spec.CellElements),
		strNode("wall_elements"), elementsNode(spec.WallElements),
	)
	if spec.CellSize != nil {
		node.Content = append(node.Content, strNode("cell_size"), floatNode(*spec.CellSize))
	}
	if spec.WallHeight != nil {
		node.Content = append(node.Content, strNode("wall_height"), floatNode(*spec.WallHeight))
	}
	if spec.WallThickness != nil {
		node.Content = append(node.Content, strNode("wall_thickness"), floatNode(*spec.WallThickness))
	}
	return node
}
