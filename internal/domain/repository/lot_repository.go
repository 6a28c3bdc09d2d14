package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain/entity"
)

// LotRepository puerto de persistencia del libro de lotes.
// GetByID y los listados devuelven el detalle con nombres resueltos.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(lotID string) (*entity.LotDetail, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) dentro de la
	// transacción en curso; serializa consumos concurrentes del mismo lote.
	GetForUpdate(lotID string) (*entity.Lot, error)
	// UpdateQuantityStatus escribe el nuevo saldo y estado en una sola pasada.
	UpdateQuantityStatus(lotID string, quantity decimal.Decimal, status string) error
	// ListByItem lotes de un artículo, fecha de producción más reciente
	// primero. status vacío = todos.
	ListByItem(itemID, status string) ([]*entity.LotDetail, error)
	// ListAll lotes más recientes por fecha de creación, hasta limit.
	ListAll(limit int) ([]*entity.LotDetail, error)
	// LockIDPrefix serializa la generación de secuencia para un prefijo
	// (YYMM + proceso) dentro de la transacción en curso.
	LockIDPrefix(prefix string) error
	// MaxSequence mayor sufijo numérico de 3 dígitos entre los lot_id que
	// empiezan con prefix; 0 si no hay ninguno.
	MaxSequence(prefix string) (int, error)
	// ConsumptionCandidates lotes activos con saldo, de proceso con nivel
	// estrictamente mayor al indicado, ordenados por nivel y fecha.
	ConsumptionCandidates(processCode string) ([]*entity.LotDetail, error)
}
