package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de persistencia del libro de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// lotDetailQuery detalle con nombres resueltos. LEFT JOIN: si falta la
// referencia los nombres quedan en blanco, nunca se pierde el lote.
const lotDetailQuery = `
	SELECT l.lot_id, l.item_id, l.process_code, l.production_date,
		l.planned_quantity, l.actual_quantity, l.current_quantity,
		l.quality_grade, l.lot_status,
		l.equipment_id, l.operator_id, l.location,
		l.measured_length, l.measured_weight, l.measurement_notes, l.created_at,
		COALESCE(i.item_name, ''), COALESCE(i.item_type, ''), COALESCE(i.unit_of_measure, ''),
		COALESCE(p.process_name, ''), COALESCE(p.process_level, 0),
		COALESCE(g.grade_name, '')
	FROM lots l
	LEFT JOIN items i ON i.item_id = l.item_id
	LEFT JOIN process_steps p ON p.process_code = l.process_code
	LEFT JOIN quality_grades g ON g.grade_code = l.quality_grade`

// Create persiste un nuevo lote.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (lot_id, item_id, process_code, production_date,
			planned_quantity, actual_quantity, current_quantity, quality_grade, lot_status,
			equipment_id, operator_id, location,
			measured_length, measured_weight, measurement_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		lot.LotID, lot.ItemID, lot.ProcessCode, lot.ProductionDate,
		lot.PlannedQuantity, lot.ActualQuantity, lot.CurrentQuantity, lot.QualityGrade, lot.LotStatus,
		lot.EquipmentID, lot.OperatorID, lot.Location,
		lot.MeasuredLength, lot.MeasuredWeight, lot.MeasurementNotes, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID detalle del lote, (nil, nil) si no existe.
func (r *LotRepo) GetByID(lotID string) (*entity.LotDetail, error) {
	detail, err := scanLotDetail(r.q.QueryRow(context.Background(), lotDetailQuery+` WHERE l.lot_id = $1`, lotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return detail, nil
}

// GetForUpdate bloquea la fila del lote dentro de la transacción en curso.
func (r *LotRepo) GetForUpdate(lotID string) (*entity.Lot, error) {
	query := `
		SELECT lot_id, item_id, process_code, production_date,
			planned_quantity, actual_quantity, current_quantity, quality_grade, lot_status,
			equipment_id, operator_id, location,
			measured_length, measured_weight, measurement_notes, created_at
		FROM lots WHERE lot_id = $1 FOR UPDATE`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, lotID).Scan(
		&l.LotID, &l.ItemID, &l.ProcessCode, &l.ProductionDate,
		&l.PlannedQuantity, &l.ActualQuantity, &l.CurrentQuantity, &l.QualityGrade, &l.LotStatus,
		&l.EquipmentID, &l.OperatorID, &l.Location,
		&l.MeasuredLength, &l.MeasuredWeight, &l.MeasurementNotes, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot for update: %w", err)
	}
	return &l, nil
}

// UpdateQuantityStatus escribe saldo y estado en una sola pasada.
func (r *LotRepo) UpdateQuantityStatus(lotID string, quantity decimal.Decimal, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE lots SET current_quantity = $2, lot_status = $3 WHERE lot_id = $1`,
		lotID, quantity, status,
	)
	if err != nil {
		return fmt.Errorf("update lot quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByItem lotes de un artículo, producción más reciente primero.
func (r *LotRepo) ListByItem(itemID, status string) ([]*entity.LotDetail, error) {
	query := lotDetailQuery + ` WHERE l.item_id = $1`
	args := []any{itemID}
	if status != "" {
		query += ` AND l.lot_status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY l.production_date DESC, l.lot_id DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots by item: %w", err)
	}
	defer rows.Close()
	return collectLotDetails(rows)
}

// ListAll lotes más recientes por creación, hasta limit.
func (r *LotRepo) ListAll(limit int) ([]*entity.LotDetail, error) {
	query := lotDetailQuery + ` ORDER BY l.created_at DESC, l.lot_id DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	return collectLotDetails(rows)
}

// LockIDPrefix serializa la generación de secuencia para un prefijo mediante
// un advisory lock transaccional (se libera solo al terminar la tx).
func (r *LotRepo) LockIDPrefix(prefix string) error {
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtext($1))`, prefix)
	if err != nil {
		return fmt.Errorf("lock lot prefix: %w", err)
	}
	return nil
}

// MaxSequence mayor sufijo de 3 dígitos entre los lot_id con el prefijo.
func (r *LotRepo) MaxSequence(prefix string) (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(CAST(RIGHT(lot_id, 3) AS INT)), 0)
		 FROM lots WHERE lot_id LIKE $1 || '%'`, prefix).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max lot sequence: %w", err)
	}
	return max, nil
}

// ConsumptionCandidates lotes activos con saldo en procesos de nivel
// estrictamente mayor al indicado.
func (r *LotRepo) ConsumptionCandidates(processCode string) ([]*entity.LotDetail, error) {
	var level int
	err := r.q.QueryRow(context.Background(),
		`SELECT process_level FROM process_steps WHERE process_code = $1`, processCode).Scan(&level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnknownProcess
		}
		return nil, fmt.Errorf("get process level: %w", err)
	}

	query := lotDetailQuery + `
		WHERE l.lot_status = $1 AND l.current_quantity > 0 AND p.process_level > $2
		ORDER BY p.process_level, l.production_date DESC, l.lot_id`
	rows, err := r.q.Query(context.Background(), query, entity.LotStatusActive, level)
	if err != nil {
		return nil, fmt.Errorf("list consumption candidates: %w", err)
	}
	defer rows.Close()
	return collectLotDetails(rows)
}

func scanLotDetail(row pgx.Row) (*entity.LotDetail, error) {
	var d entity.LotDetail
	if err := row.Scan(
		&d.Lot.LotID, &d.Lot.ItemID, &d.Lot.ProcessCode, &d.Lot.ProductionDate,
		&d.Lot.PlannedQuantity, &d.Lot.ActualQuantity, &d.Lot.CurrentQuantity,
		&d.Lot.QualityGrade, &d.Lot.LotStatus,
		&d.Lot.EquipmentID, &d.Lot.OperatorID, &d.Lot.Location,
		&d.Lot.MeasuredLength, &d.Lot.MeasuredWeight, &d.Lot.MeasurementNotes, &d.Lot.CreatedAt,
		&d.ItemName, &d.ItemType, &d.UnitOfMeasure,
		&d.ProcessName, &d.ProcessLevel,
		&d.GradeName,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectLotDetails(rows pgx.Rows) ([]*entity.LotDetail, error) {
	var list []*entity.LotDetail
	for rows.Next() {
		d, err := scanLotDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
