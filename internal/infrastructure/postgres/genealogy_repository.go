package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

var _ repository.GenealogyRepository = (*GenealogyRepo)(nil)

// GenealogyRepo implementación del puerto GenealogyRepository sobre PostgreSQL (usable con pool o tx).
type GenealogyRepo struct {
	q Querier
}

// NewGenealogyRepository construye el adaptador del grafo de genealogía. Pasar pool o tx (Querier).
func NewGenealogyRepository(q Querier) *GenealogyRepo {
	return &GenealogyRepo{q: q}
}

// Create inserta la arista y devuelve el id generado en edge.ID.
func (r *GenealogyRepo) Create(edge *entity.LotGenealogy) error {
	query := `
		INSERT INTO lot_genealogy (parent_lot_id, child_lot_id, consumed_quantity, consumption_rate,
			process_code, consumption_date, usage_type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		edge.ParentLotID, edge.ChildLotID, edge.ConsumedQuantity, edge.ConsumptionRate,
		edge.ProcessCode, edge.ConsumptionDate, edge.UsageType, edge.Notes, edge.CreatedAt,
	).Scan(&edge.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert genealogy edge: %w", err)
	}
	return nil
}

// ByParent aristas donde el lote es padre, orden de creación.
func (r *GenealogyRepo) ByParent(parentLotID string) ([]*entity.LotGenealogy, error) {
	return r.list(`parent_lot_id`, parentLotID)
}

// ByChild aristas donde el lote es hijo, orden de creación.
func (r *GenealogyRepo) ByChild(childLotID string) ([]*entity.LotGenealogy, error) {
	return r.list(`child_lot_id`, childLotID)
}

func (r *GenealogyRepo) list(column, lotID string) ([]*entity.LotGenealogy, error) {
	query := `
		SELECT id, parent_lot_id, child_lot_id, consumed_quantity, consumption_rate,
			process_code, consumption_date, usage_type, notes, created_at
		FROM lot_genealogy WHERE ` + column + ` = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list genealogy edges: %w", err)
	}
	defer rows.Close()
	return collectGenealogy(rows)
}

func collectGenealogy(rows pgx.Rows) ([]*entity.LotGenealogy, error) {
	var list []*entity.LotGenealogy
	for rows.Next() {
		var e entity.LotGenealogy
		if err := rows.Scan(
			&e.ID, &e.ParentLotID, &e.ChildLotID, &e.ConsumedQuantity, &e.ConsumptionRate,
			&e.ProcessCode, &e.ConsumptionDate, &e.UsageType, &e.Notes, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan genealogy edge: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
