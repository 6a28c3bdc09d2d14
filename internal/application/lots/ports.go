package lots

import (
	"context"

	"github.com/jvargas/trazalote/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que lote, arista de genealogía y
// fila del libro de inventario se escriban como unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		genealogyRepo repository.GenealogyRepository,
		txnRepo repository.InventoryTransactionRepository,
	) error) error
}
