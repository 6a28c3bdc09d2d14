package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `item_id, item_name, item_type, unit_of_measure,
		material_type, denier, ps_ratio, braid_structure, has_core, color, length_m, twist_type,
		additional_attributes, created_at, updated_at`

// pipelineRankCase ordena por etapa del pipeline; el empaque queda al final.
const pipelineRankCase = `CASE item_type
		WHEN '原糸' THEN 1 WHEN '染色糸' THEN 2 WHEN '後PS糸' THEN 3
		WHEN '製紐糸' THEN 4 WHEN '成形品' THEN 5 WHEN '完成品' THEN 6
		WHEN '梱包資材' THEN 7 ELSE 8 END`

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (item_id, item_name, item_type, unit_of_measure,
			material_type, denier, ps_ratio, braid_structure, has_core, color, length_m, twist_type,
			additional_attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ItemID, item.ItemName, item.ItemType, item.UnitOfMeasure,
		item.MaterialType, item.Denier, item.PSRatio, item.BraidStructure,
		item.HasCore, item.Color, item.LengthM, item.TwistType,
		item.AdditionalAttributes, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID, (nil, nil) si no existe.
func (r *ItemRepo) GetByID(itemID string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List filtra por tipo (vacío = todos) y ordena por etapa del pipeline.
func (r *ItemRepo) List(itemType entity.ItemType, order entity.ItemOrder) ([]*entity.Item, error) {
	dir := "ASC"
	if order == entity.OrderDownstreamFirst {
		dir = "DESC"
	}
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if itemType != "" {
		query += ` WHERE item_type = $1`
		args = append(args, itemType)
	}
	query += ` ORDER BY ` + pipelineRankCase + ` ` + dir + `, item_name`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// Search busca por subcadena en id o nombre (case-insensitive).
func (r *ItemRepo) Search(query string) ([]*entity.Item, error) {
	sql := `SELECT ` + itemColumns + ` FROM items
		WHERE item_id ILIKE '%' || $1 || '%' OR item_name ILIKE '%' || $1 || '%'
		ORDER BY item_id`
	rows, err := r.q.Query(context.Background(), sql, query)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// CountByType conteo de artículos por etapa.
func (r *ItemRepo) CountByType() (map[entity.ItemType]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT item_type, COUNT(*) FROM items GROUP BY item_type`)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.ItemType]int)
	for rows.Next() {
		var t entity.ItemType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[t] = n
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	if err := row.Scan(
		&i.ItemID, &i.ItemName, &i.ItemType, &i.UnitOfMeasure,
		&i.MaterialType, &i.Denier, &i.PSRatio, &i.BraidStructure,
		&i.HasCore, &i.Color, &i.LengthM, &i.TwistType,
		&i.AdditionalAttributes, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}
	i.Source = entity.ItemSourceLocal
	return &i, nil
}

func collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
