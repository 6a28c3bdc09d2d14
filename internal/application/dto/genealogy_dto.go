package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain/entity"
)

// ConsumeRequest registro de consumo: el lote de la URL (hijo) se incorpora
// al lote padre indicado. consumption_date en YYYY-MM-DD; vacía = ahora.
type ConsumeRequest struct {
	ParentLotID      string          `json:"parent_lot_id"`
	ConsumedQuantity decimal.Decimal `json:"consumed_quantity"`
	UsageType        string          `json:"usage_type"`
	ConsumptionDate  string          `json:"consumption_date"`
	Notes            string          `json:"notes"`
}

// GenealogyTreeResponse árbol de trazabilidad. En la raíz los campos de
// arista van en cero; en cada nodo hijo describen la arista hacia el nodo
// que lo contiene. related son los lotes alcanzados en el sentido del
// recorrido (padres en forward, hijos en backward).
type GenealogyTreeResponse struct {
	Lot              *LotResponse             `json:"lot"`
	ConsumedQuantity decimal.Decimal          `json:"consumed_quantity"`
	ConsumptionRate  decimal.Decimal          `json:"consumption_rate"`
	UsageType        string                   `json:"usage_type,omitempty"`
	Related          []*GenealogyTreeResponse `json:"related"`
}

// NewGenealogyTree mapea el árbol de trazabilidad.
func NewGenealogyTree(node *entity.GenealogyNode) *GenealogyTreeResponse {
	out := &GenealogyTreeResponse{
		Lot:              NewLotResponse(node.Lot),
		ConsumedQuantity: node.ConsumedQuantity,
		ConsumptionRate:  node.ConsumptionRate,
		UsageType:        node.UsageType,
		Related:          make([]*GenealogyTreeResponse, 0, len(node.Related)),
	}
	for _, sub := range node.Related {
		out.Related = append(out.Related, NewGenealogyTree(sub))
	}
	return out
}

// GenealogyLinkResponse arista de genealogía con el lote del otro extremo.
type GenealogyLinkResponse struct {
	ParentLotID      string          `json:"parent_lot_id"`
	ChildLotID       string          `json:"child_lot_id"`
	ConsumedQuantity decimal.Decimal `json:"consumed_quantity"`
	ConsumptionRate  decimal.Decimal `json:"consumption_rate"`
	ProcessCode      string          `json:"process_code"`
	ConsumptionDate  time.Time       `json:"consumption_date"`
	UsageType        string          `json:"usage_type"`
	Notes            string          `json:"notes,omitempty"`
	Counterpart      *LotResponse    `json:"counterpart,omitempty"`
}

// NewGenealogyLinks mapea aristas con su contraparte resuelta.
func NewGenealogyLinks(links []*entity.GenealogyLink) []*GenealogyLinkResponse {
	out := make([]*GenealogyLinkResponse, 0, len(links))
	for _, l := range links {
		r := &GenealogyLinkResponse{
			ParentLotID:      l.ParentLotID,
			ChildLotID:       l.ChildLotID,
			ConsumedQuantity: l.ConsumedQuantity,
			ConsumptionRate:  l.ConsumptionRate,
			ProcessCode:      l.ProcessCode,
			ConsumptionDate:  l.ConsumptionDate,
			UsageType:        l.UsageType,
			Notes:            l.Notes,
		}
		if l.Counterpart != nil {
			r.Counterpart = NewLotResponse(l.Counterpart)
		}
		out = append(out, r)
	}
	return out
}
