package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain/entity"
)

// RegisterItemRequest alta de un artículo en el catálogo. attributes admite
// tanto las claves tipadas (material_type, denier, ps_ratio, braid_structure,
// has_core, color, length_m, twist_type) como claves libres.
type RegisterItemRequest struct {
	ItemID        string         `json:"item_id"`
	ItemName      string         `json:"item_name"`
	ItemType      string         `json:"item_type"`
	UnitOfMeasure string         `json:"unit_of_measure"`
	Attributes    map[string]any `json:"attributes"`
}

// ItemResponse representación HTTP de un artículo.
type ItemResponse struct {
	ItemID        string `json:"item_id"`
	ItemName      string `json:"item_name"`
	ItemType      string `json:"item_type"`
	UnitOfMeasure string `json:"unit_of_measure"`

	MaterialType   *string          `json:"material_type,omitempty"`
	Denier         *decimal.Decimal `json:"denier,omitempty"`
	PSRatio        *decimal.Decimal `json:"ps_ratio,omitempty"`
	BraidStructure *string          `json:"braid_structure,omitempty"`
	HasCore        *bool            `json:"has_core,omitempty"`
	Color          *string          `json:"color,omitempty"`
	LengthM        *decimal.Decimal `json:"length_m,omitempty"`
	TwistType      *string          `json:"twist_type,omitempty"`

	AdditionalAttributes map[string]any `json:"additional_attributes,omitempty"`

	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItemResponse mapea la entidad al DTO. nil (referencia rota) queda en nil.
func NewItemResponse(item *entity.Item) *ItemResponse {
	if item == nil {
		return nil
	}
	return &ItemResponse{
		ItemID:               item.ItemID,
		ItemName:             item.ItemName,
		ItemType:             string(item.ItemType),
		UnitOfMeasure:        item.UnitOfMeasure,
		MaterialType:         item.MaterialType,
		Denier:               item.Denier,
		PSRatio:              item.PSRatio,
		BraidStructure:       item.BraidStructure,
		HasCore:              item.HasCore,
		Color:                item.Color,
		LengthM:              item.LengthM,
		TwistType:            item.TwistType,
		AdditionalAttributes: item.AdditionalAttributes,
		Source:               item.Source,
		CreatedAt:            item.CreatedAt,
	}
}

// NewItemList mapea un listado de artículos.
func NewItemList(items []*entity.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}

// ItemStatsResponse conteo de artículos por etapa del pipeline.
type ItemStatsResponse struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

// NewItemStats mapea el conteo por tipo.
func NewItemStats(counts map[entity.ItemType]int) *ItemStatsResponse {
	out := &ItemStatsResponse{ByType: make(map[string]int, len(counts))}
	for t, n := range counts {
		out.ByType[string(t)] = n
		out.Total += n
	}
	return out
}
