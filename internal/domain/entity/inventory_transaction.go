package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de inventario.
const (
	TransactionReceipt     = "RECEIPT"
	TransactionConsumption = "CONSUMPTION"
	TransactionAdjustment  = "ADJUSTMENT"
)

// InventoryTransaction fila append-only del libro de inventario de un lote.
// Invariante: QuantityAfter = QuantityBefore + QuantityChange. El saldo del
// lote (Lot.CurrentQuantity) es una proyección de este libro y se actualiza
// en la misma transacción de BD que escribe la fila.
type InventoryTransaction struct {
	ID              string // uuid
	LotID           string
	TransactionType string // RECEIPT | CONSUMPTION | ADJUSTMENT
	QuantityBefore  decimal.Decimal
	QuantityChange  decimal.Decimal // con signo
	QuantityAfter   decimal.Decimal

	Location    *string
	OperatorID  *string
	EquipmentID *string

	TransactionDate time.Time
	Notes           string
	CreatedAt       time.Time
}
