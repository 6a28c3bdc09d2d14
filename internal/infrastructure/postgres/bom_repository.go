package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación del puerto BOMRepository sobre PostgreSQL (usable con pool o tx).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de persistencia del grafo BOM. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// AddComponent inserta la arista padre→componente.
func (r *BOMRepo) AddComponent(c *entity.BOMComponent) error {
	query := `
		INSERT INTO bom_components (parent_item_id, component_item_id, quantity, usage_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		c.ParentItemID, c.ComponentItemID, c.Quantity, c.UsageType, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bom component: %w", err)
	}
	return nil
}

// Components aristas salientes crudas de un padre (para alcanzabilidad).
func (r *BOMRepo) Components(parentItemID string) ([]*entity.BOMComponent, error) {
	query := `
		SELECT parent_item_id, component_item_id, quantity, usage_type, created_at
		FROM bom_components WHERE parent_item_id = $1`
	rows, err := r.q.Query(context.Background(), query, parentItemID)
	if err != nil {
		return nil, fmt.Errorf("list bom components: %w", err)
	}
	defer rows.Close()

	var list []*entity.BOMComponent
	for rows.Next() {
		var c entity.BOMComponent
		if err := rows.Scan(&c.ParentItemID, &c.ComponentItemID, &c.Quantity, &c.UsageType, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bom component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// DirectComponents líneas con el artículo resuelto (LEFT JOIN: una referencia
// rota deja Item en nil y el caso de uso descarta la rama).
func (r *BOMRepo) DirectComponents(parentItemID string) ([]*entity.ComponentLine, error) {
	query := `
		SELECT b.quantity, b.usage_type,
			i.item_id, i.item_name, i.item_type, i.unit_of_measure,
			i.material_type, i.denier, i.ps_ratio, i.braid_structure, i.has_core,
			i.color, i.length_m, i.twist_type, i.additional_attributes, i.created_at, i.updated_at
		FROM bom_components b
		LEFT JOIN items i ON i.item_id = b.component_item_id
		WHERE b.parent_item_id = $1
		ORDER BY b.usage_type, i.item_name NULLS LAST`
	rows, err := r.q.Query(context.Background(), query, parentItemID)
	if err != nil {
		return nil, fmt.Errorf("list direct components: %w", err)
	}
	defer rows.Close()

	var list []*entity.ComponentLine
	for rows.Next() {
		var line entity.ComponentLine
		var i entity.Item
		var itemID, itemName, itemType, unitOfMeasure *string
		var createdAt, updatedAt *time.Time
		if err := rows.Scan(
			&line.Quantity, &line.UsageType,
			&itemID, &itemName, &itemType, &unitOfMeasure,
			&i.MaterialType, &i.Denier, &i.PSRatio, &i.BraidStructure, &i.HasCore,
			&i.Color, &i.LengthM, &i.TwistType, &i.AdditionalAttributes, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan component line: %w", err)
		}
		if itemID != nil {
			i.ItemID = *itemID
			if itemName != nil {
				i.ItemName = *itemName
			}
			if itemType != nil {
				i.ItemType = entity.ItemType(*itemType)
			}
			if unitOfMeasure != nil {
				i.UnitOfMeasure = *unitOfMeasure
			}
			if createdAt != nil {
				i.CreatedAt = *createdAt
			}
			if updatedAt != nil {
				i.UpdatedAt = *updatedAt
			}
			i.Source = entity.ItemSourceLocal
			line.Item = &i
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}
