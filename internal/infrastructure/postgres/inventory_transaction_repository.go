package postgres

import (
	"context"
	"fmt"

	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación del libro de inventario sobre PostgreSQL (usable con pool o tx).
// El libro es append-only: no hay Update ni Delete.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador del libro de inventario. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create anota el movimiento.
func (r *InventoryTransactionRepo) Create(txn *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, lot_id, transaction_type,
			quantity_before, quantity_change, quantity_after,
			location, operator_id, equipment_id, transaction_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.LotID, txn.TransactionType,
		txn.QuantityBefore, txn.QuantityChange, txn.QuantityAfter,
		txn.Location, txn.OperatorID, txn.EquipmentID, txn.TransactionDate, txn.Notes, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// ListByLot historial de un lote, más reciente primero.
func (r *InventoryTransactionRepo) ListByLot(lotID string) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, lot_id, transaction_type,
			quantity_before, quantity_change, quantity_after,
			location, operator_id, equipment_id, transaction_date, notes, created_at
		FROM inventory_transactions WHERE lot_id = $1
		ORDER BY transaction_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(
			&t.ID, &t.LotID, &t.TransactionType,
			&t.QuantityBefore, &t.QuantityChange, &t.QuantityAfter,
			&t.Location, &t.OperatorID, &t.EquipmentID, &t.TransactionDate, &t.Notes, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
