package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// UseCase casos de uso del catálogo de artículos. El repositorio inyectado
// decide el modo: local autoritativo o espejo read-through (solo lectura).
type UseCase struct {
	items repository.ItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(items repository.ItemRepository) *UseCase {
	return &UseCase{items: items}
}

// RegisterItemInput entrada para registrar un artículo. Attributes lleva
// cualquier atributo técnico; las claves reconocidas van a columnas tipadas
// y el resto se conserva en el mapa abierto.
type RegisterItemInput struct {
	ItemID        string
	ItemName      string
	ItemType      entity.ItemType
	UnitOfMeasure string
	Attributes    map[string]any
}

// typedAttributeKeys claves que se extraen del mapa hacia columnas propias.
var typedAttributeKeys = map[string]struct{}{
	"material_type":   {},
	"denier":          {},
	"ps_ratio":        {},
	"braid_structure": {},
	"has_core":        {},
	"color":           {},
	"length_m":        {},
	"twist_type":      {},
}

// Register registra un artículo nuevo. Falla con ErrDuplicate si el id ya
// existe y con ErrInvalidInput si el tipo no pertenece a la enumeración.
func (uc *UseCase) Register(in RegisterItemInput) (*entity.Item, error) {
	if in.ItemID == "" || in.ItemName == "" || in.UnitOfMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.ItemType.Valid() {
		return nil, fmt.Errorf("%w: item_type %q", domain.ErrInvalidInput, in.ItemType)
	}

	existing, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.Item{
		ItemID:        in.ItemID,
		ItemName:      in.ItemName,
		ItemType:      in.ItemType,
		UnitOfMeasure: in.UnitOfMeasure,
		Source:        entity.ItemSourceLocal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	additional := make(map[string]any)
	for k, v := range in.Attributes {
		if _, typed := typedAttributeKeys[k]; !typed {
			additional[k] = v
			continue
		}
		switch k {
		case "material_type":
			item.MaterialType = attrString(v)
		case "braid_structure":
			item.BraidStructure = attrString(v)
		case "color":
			item.Color = attrString(v)
		case "twist_type":
			item.TwistType = attrString(v)
		case "denier":
			item.Denier = attrDecimal(v)
		case "ps_ratio":
			item.PSRatio = attrDecimal(v)
		case "length_m":
			item.LengthM = attrDecimal(v)
		case "has_core":
			item.HasCore = attrBool(v)
		}
	}
	if len(additional) > 0 {
		item.AdditionalAttributes = additional
	}

	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get devuelve un artículo por id o ErrNotFound.
func (uc *UseCase) Get(itemID string) (*entity.Item, error) {
	item, err := uc.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista artículos por tipo (vacío = todos) ordenados por etapa del
// pipeline en la dirección pedida y luego por nombre.
func (uc *UseCase) List(itemType entity.ItemType, order entity.ItemOrder) ([]*entity.Item, error) {
	if itemType != "" && !itemType.Valid() {
		return nil, fmt.Errorf("%w: item_type %q", domain.ErrInvalidInput, itemType)
	}
	if order == "" {
		order = entity.OrderDownstreamFirst
	}
	if order != entity.OrderDownstreamFirst && order != entity.OrderUpstreamFirst {
		return nil, fmt.Errorf("%w: order %q", domain.ErrInvalidInput, order)
	}
	return uc.items.List(itemType, order)
}

// Search busca por subcadena en id o nombre.
func (uc *UseCase) Search(query string) ([]*entity.Item, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.items.Search(query)
}

// Stats conteo de artículos por etapa.
func (uc *UseCase) Stats() (map[entity.ItemType]int, error) {
	return uc.items.CountByType()
}

func attrString(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

func attrBool(v any) *bool {
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

// attrDecimal acepta los tipos numéricos que produce el decode de JSON y
// cadenas numéricas (como llegan de formularios).
func attrDecimal(v any) *decimal.Decimal {
	switch n := v.(type) {
	case float64:
		d := decimal.NewFromFloat(n)
		return &d
	case int:
		d := decimal.NewFromInt(int64(n))
		return &d
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return &d
		}
	case decimal.Decimal:
		return &n
	}
	return nil
}
