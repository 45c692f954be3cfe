package analysis

import (
	"strings"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// MaxDepth is the deepest level Walk descends to. Nodes below it are ignored.
const MaxDepth = 15

// WalkResult is the aggregate of one structure tree.
type WalkResult struct {
	// Size is the root node's declared size in bytes.
	Size int64

	// Sections counts section and appendix nodes within MaxDepth.
	Sections int

	// Text is every label and label description, in document order,
	// each preceded by a space.
	Text string
}

// Walk aggregates a structure tree starting at depth zero.
func Walk(node *domain.StructureNode) WalkResult {
	return WalkFrom(node, 0)
}

// WalkFrom aggregates a structure tree whose root sits at the given depth.
func WalkFrom(node *domain.StructureNode, depth int) WalkResult {
	if node == nil || depth > MaxDepth {
		return WalkResult{}
	}

	var text strings.Builder
	sections := walk(node, depth, &text)

	return WalkResult{
		Size:     node.Size,
		Sections: sections,
		Text:     text.String(),
	}
}

// walk appends the node's text to buf and returns its section count.
func walk(node *domain.StructureNode, depth int, buf *strings.Builder) int {
	if node == nil || depth > MaxDepth {
		return 0
	}

	sections := 0
	if node.IsSection() {
		sections++
	}

	if node.Label != "" {
		buf.WriteByte(' ')
		buf.WriteString(node.Label)
	}
	if node.LabelDescription != "" {
		buf.WriteByte(' ')
		buf.WriteString(node.LabelDescription)
	}

	for _, child := range node.Children {
		sections += walk(child, depth+1, buf)
	}

	return sections
}
