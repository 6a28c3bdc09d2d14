package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jvargas/trazalote/internal/application/bom"
	"github.com/jvargas/trazalote/internal/application/lots"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// Ensure TxRunner implements lots.TxRunner and bom.TxRunner.
var _ lots.TxRunner = (*TxRunner)(nil)
var _ bom.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	genealogyRepo repository.GenealogyRepository,
	txnRepo repository.InventoryTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewLotRepository(tx)
	genealogyRepo := NewGenealogyRepository(tx)
	txnRepo := NewInventoryTransactionRepository(tx)

	if err := fn(lotRepo, genealogyRepo, txnRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBOM inicia una transacción con los repos de artículos y BOM (para el
// chequeo de ciclo y el insert de la arista sobre el mismo snapshot).
func (r *TxRunner) RunBOM(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	bomRepo repository.BOMRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	bomRepo := NewBOMRepository(tx)

	if err := fn(itemRepo, bomRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
