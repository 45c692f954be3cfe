package domain

// Structure node types that matter to metrics.
const (
	NodeTypeTitle    = "title"
	NodeTypeChapter  = "chapter"
	NodeTypePart     = "part"
	NodeTypeSection  = "section"
	NodeTypeAppendix = "appendix"
)

// StructureNode is one level of a regulatory document tree
// (title, chapter, part, section, appendix, ...).
// Missing fields are zero values; nothing here is ever required.
type StructureNode struct {
	Type             string
	Identifier       string
	Label            string
	LabelDescription string
	Size             int64
	Children         []*StructureNode
}

// IsSection reports whether the node counts as a section.
func (n *StructureNode) IsSection() bool {
	return n.Type == NodeTypeSection || n.Type == NodeTypeAppendix
}

// FindChapter returns the direct child of type chapter with the given identifier.
// Returns nil when n is nil, id is empty, or no child matches.
func (n *StructureNode) FindChapter(id string) *StructureNode {
	if n == nil || id == "" {
		return nil
	}
	for _, child := range n.Children {
		if child != nil && child.Type == NodeTypeChapter && child.Identifier == id {
			return child
		}
	}
	return nil
}
