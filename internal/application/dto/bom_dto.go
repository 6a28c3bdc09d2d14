package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain/entity"
)

// AddComponentRequest alta de una arista padre→componente en el BOM.
type AddComponentRequest struct {
	ParentItemID    string          `json:"parent_item_id"`
	ComponentItemID string          `json:"component_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UsageType       string          `json:"usage_type"`
}

// ComponentLineResponse línea de componentes directos.
type ComponentLineResponse struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UsageType string          `json:"usage_type"`
	Item      *ItemResponse   `json:"item"`
}

// NewComponentLines mapea las líneas de componentes directos.
func NewComponentLines(lines []*entity.ComponentLine) []*ComponentLineResponse {
	out := make([]*ComponentLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, &ComponentLineResponse{
			Quantity:  line.Quantity,
			UsageType: line.UsageType,
			Item:      NewItemResponse(line.Item),
		})
	}
	return out
}

// BOMTreeResponse raíz de una expansión multinivel.
type BOMTreeResponse struct {
	Item       *ItemResponse           `json:"item"`
	Components []*BOMComponentResponse `json:"components"`
}

// BOMComponentResponse nodo hijo de la expansión (arista + subárbol).
type BOMComponentResponse struct {
	Quantity   decimal.Decimal         `json:"quantity"`
	UsageType  string                  `json:"usage_type"`
	Item       *ItemResponse           `json:"item"`
	Components []*BOMComponentResponse `json:"components"`
}

// NewBOMTree mapea el árbol de expansión.
func NewBOMTree(node *entity.BOMNode) *BOMTreeResponse {
	return &BOMTreeResponse{
		Item:       NewItemResponse(node.Item),
		Components: newBOMComponents(node.Components),
	}
}

func newBOMComponents(nodes []*entity.BOMComponentNode) []*BOMComponentResponse {
	out := make([]*BOMComponentResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &BOMComponentResponse{
			Quantity:   n.Quantity,
			UsageType:  n.UsageType,
			Item:       NewItemResponse(n.Item),
			Components: newBOMComponents(n.Components),
		})
	}
	return out
}
