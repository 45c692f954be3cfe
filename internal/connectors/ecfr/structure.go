package ecfr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
)

var _ driven.StructureSource = (*Client)(nil)

// structureNode mirrors a versioner structure node.
type structureNode struct {
	Type             looseString               `json:"type"`
	Identifier       looseString               `json:"identifier"`
	Label            looseString               `json:"label"`
	LabelDescription looseString               `json:"label_description"`
	Size             looseInt                  `json:"size"`
	Children         looseList[*structureNode] `json:"children"`
}

func (n *structureNode) toDomain() *domain.StructureNode {
	out := &domain.StructureNode{
		Type:             string(n.Type),
		Identifier:       string(n.Identifier),
		Label:            string(n.Label),
		LabelDescription: string(n.LabelDescription),
		Size:             int64(n.Size),
	}
	if len(n.Children) > 0 {
		out.Children = make([]*domain.StructureNode, 0, len(n.Children))
		for _, child := range n.Children {
			if child != nil {
				out.Children = append(out.Children, child.toDomain())
			}
		}
	}
	return out
}

// StructurePath returns the versioner path for a title structure.
func StructurePath(title int, asOfDate string) string {
	return fmt.Sprintf("/versioner/v1/structure/%s/title-%d.json", asOfDate, title)
}

// FetchStructure returns the structure tree of a title as of a date (YYYY-MM-DD).
// Request and decoding failures wrap domain.ErrStructureUnavailable.
func (c *Client) FetchStructure(ctx context.Context, title int, asOfDate string) (*domain.StructureNode, error) {
	if title <= 0 {
		return nil, fmt.Errorf("%w: title must be positive, got %d", domain.ErrInvalidInput, title)
	}
	if _, err := domain.ParseDate(asOfDate); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", domain.ErrInvalidInput, asOfDate)
	}

	body, err := c.get(ctx, StructurePath(title, asOfDate), c.timeout)
	if err == nil {
		var root *domain.StructureNode
		if root, err = decodeStructure(body); err == nil {
			return root, nil
		}
	}
	return nil, fmt.Errorf("%w: title %d on %s: %w", domain.ErrStructureUnavailable, title, asOfDate, err)
}

func decodeStructure(body []byte) (*domain.StructureNode, error) {
	var fields map[string]json.RawMessage
	if !isObject(body) || json.Unmarshal(body, &fields) != nil {
		return nil, ErrMalformedResponse
	}
	if msg, ok := fields["error"]; ok {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, errorText(msg))
	}

	var root structureNode
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return root.toDomain(), nil
}

// errorText renders an upstream error value, which may be a string or an object.
func errorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
