package repository

import "github.com/jvargas/trazalote/internal/domain/entity"

// InventoryTransactionRepository puerto del libro de inventario (append-only).
type InventoryTransactionRepository interface {
	Create(txn *entity.InventoryTransaction) error
	// ListByLot historial de un lote, más reciente primero.
	ListByLot(lotID string) ([]*entity.InventoryTransaction, error)
}
