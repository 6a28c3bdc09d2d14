package memory

import (
	"time"

	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// InventoryTransactionRepository implementa el libro de inventario en memoria.
type InventoryTransactionRepository struct {
	s *Store
}

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepository)(nil)

// Create anota el movimiento. El libro es append-only: nunca se borra.
func (r *InventoryTransactionRepository) Create(txn *entity.InventoryTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copia := *txn
	if copia.TransactionDate.IsZero() {
		copia.TransactionDate = time.Now()
	}
	r.s.txns = append(r.s.txns, &copia)
	return nil
}

// ListByLot historial de un lote, más reciente primero.
func (r *InventoryTransactionRepository) ListByLot(lotID string) ([]*entity.InventoryTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.InventoryTransaction
	for i := len(r.s.txns) - 1; i >= 0; i-- {
		if r.s.txns[i].LotID == lotID {
			copia := *r.s.txns[i]
			out = append(out, &copia)
		}
	}
	return out, nil
}
