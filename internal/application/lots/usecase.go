package lots

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// DefaultListLimit tope por defecto para el listado global de lotes.
const DefaultListLimit = 100

// UseCase casos de uso del libro de lotes: creación atómica (lote + RECEIPT),
// consultas, ajustes y cancelación administrativa.
type UseCase struct {
	txRunner TxRunner
	items    repository.ItemRepository
	lots     repository.LotRepository
	refs     repository.ReferenceRepository
	txns     repository.InventoryTransactionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	items repository.ItemRepository,
	lots repository.LotRepository,
	refs repository.ReferenceRepository,
	txns repository.InventoryTransactionRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, items: items, lots: lots, refs: refs, txns: txns}
}

// CreateLotInput entrada para crear un lote de producción.
type CreateLotInput struct {
	ItemID          string
	ProcessCode     string
	PlannedQuantity decimal.Decimal
	ProductionDate  time.Time        // cero = hoy
	ActualQuantity  *decimal.Decimal // nil = se asume la planificada
	QualityGrade    string           // vacío = "A"

	EquipmentID      *string
	OperatorID       *string
	Location         *string
	MeasuredLength   *decimal.Decimal
	MeasuredWeight   *decimal.Decimal
	MeasurementNotes *string
}

// lotIDPrefix prefijo YYMM + código de proceso del formato de lot_id.
func lotIDPrefix(processCode string, productionDate time.Time) string {
	return productionDate.Format("0601") + processCode
}

// GenerateLotID calcula el próximo lot_id para un proceso y fecha:
// YYMM + código + secuencia de 3 dígitos (ej. 2505P001). Vista previa sin
// reserva; la creación vuelve a calcular la secuencia bajo lock.
func (uc *UseCase) GenerateLotID(processCode string, productionDate time.Time) (string, error) {
	step, err := uc.refs.GetProcessStep(processCode)
	if err != nil {
		return "", err
	}
	if step == nil {
		return "", domain.ErrUnknownProcess
	}
	prefix := lotIDPrefix(processCode, productionDate)
	max, err := uc.lots.MaxSequence(prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, max+1), nil
}

// Create crea un lote y su transacción RECEIPT como unidad atómica.
// La generación de secuencia se serializa por prefijo (YYMM + proceso) dentro
// de la transacción: dos creaciones concurrentes no pueden repetir lot_id.
func (uc *UseCase) Create(ctx context.Context, in CreateLotInput) (string, error) {
	if in.ItemID == "" || in.ProcessCode == "" {
		return "", domain.ErrInvalidInput
	}
	if !in.PlannedQuantity.GreaterThan(decimal.Zero) {
		return "", fmt.Errorf("%w: la cantidad planificada debe ser positiva", domain.ErrInvalidInput)
	}
	if in.ActualQuantity != nil && in.ActualQuantity.IsNegative() {
		return "", fmt.Errorf("%w: la cantidad real no puede ser negativa", domain.ErrInvalidInput)
	}

	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}

	step, err := uc.refs.GetProcessStep(in.ProcessCode)
	if err != nil {
		return "", err
	}
	if step == nil {
		return "", domain.ErrUnknownProcess
	}

	grade := in.QualityGrade
	if grade == "" {
		grade = "A"
	}
	if g, err := uc.refs.GetQualityGrade(grade); err != nil {
		return "", err
	} else if g == nil {
		return "", domain.ErrUnknownGrade
	}

	productionDate := in.ProductionDate
	if productionDate.IsZero() {
		productionDate = time.Now()
	}

	initial := in.PlannedQuantity
	if in.ActualQuantity != nil {
		initial = *in.ActualQuantity
	}

	var lotID string
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.GenealogyRepository,
		txnRepo repository.InventoryTransactionRepository,
	) error {
		prefix := lotIDPrefix(in.ProcessCode, productionDate)
		if err := lotRepo.LockIDPrefix(prefix); err != nil {
			return err
		}
		max, err := lotRepo.MaxSequence(prefix)
		if err != nil {
			return err
		}
		lotID = fmt.Sprintf("%s%03d", prefix, max+1)

		now := time.Now()
		lot := &entity.Lot{
			LotID:            lotID,
			ItemID:           in.ItemID,
			ProcessCode:      in.ProcessCode,
			ProductionDate:   productionDate,
			PlannedQuantity:  in.PlannedQuantity,
			ActualQuantity:   initial,
			CurrentQuantity:  initial,
			QualityGrade:     grade,
			LotStatus:        entity.LotStatusActive,
			EquipmentID:      in.EquipmentID,
			OperatorID:       in.OperatorID,
			Location:         in.Location,
			MeasuredLength:   in.MeasuredLength,
			MeasuredWeight:   in.MeasuredWeight,
			MeasurementNotes: in.MeasurementNotes,
			CreatedAt:        now,
		}
		if err := lotRepo.Create(lot); err != nil {
			return err
		}

		return txnRepo.Create(&entity.InventoryTransaction{
			ID:              uuid.New().String(),
			LotID:           lotID,
			TransactionType: entity.TransactionReceipt,
			QuantityBefore:  decimal.Zero,
			QuantityChange:  initial,
			QuantityAfter:   initial,
			Location:        in.Location,
			OperatorID:      in.OperatorID,
			EquipmentID:     in.EquipmentID,
			TransactionDate: now,
			Notes:           "recepción por producción",
			CreatedAt:       now,
		})
	})
	if err != nil {
		return "", err
	}
	return lotID, nil
}

// Get devuelve el detalle de un lote (con nombres de artículo, proceso y
// grado resueltos) o ErrNotFound.
func (uc *UseCase) Get(lotID string) (*entity.LotDetail, error) {
	lot, err := uc.lots.GetByID(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	return lot, nil
}

// ListByItem lotes de un artículo, producción más reciente primero.
// status vacío = todos los estados.
func (uc *UseCase) ListByItem(itemID, status string) ([]*entity.LotDetail, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch status {
	case "", entity.LotStatusActive, entity.LotStatusConsumed, entity.LotStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	return uc.lots.ListByItem(itemID, status)
}

// ListAll lotes más recientes primero, hasta limit (DefaultListLimit si <= 0).
func (uc *UseCase) ListAll(limit int) ([]*entity.LotDetail, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return uc.lots.ListAll(limit)
}

// Transactions historial del libro de inventario de un lote, más reciente
// primero.
func (uc *UseCase) Transactions(lotID string) ([]*entity.InventoryTransaction, error) {
	if _, err := uc.Get(lotID); err != nil {
		return nil, err
	}
	return uc.txns.ListByLot(lotID)
}

// Processes pasos de proceso de referencia, ordenados por nivel.
func (uc *UseCase) Processes() ([]*entity.ProcessStep, error) {
	return uc.refs.ListProcessSteps()
}

// Grades grados de calidad de referencia.
func (uc *UseCase) Grades() ([]*entity.QualityGrade, error) {
	return uc.refs.ListQualityGrades()
}

// AdjustInput entrada para un ajuste administrativo de saldo.
type AdjustInput struct {
	LotID      string
	Delta      decimal.Decimal // con signo
	Notes      string
	OperatorID *string
}

// Adjust aplica una corrección de saldo escribiendo una transacción
// ADJUSTMENT y el nuevo saldo en la misma transacción de BD. Un ajuste que
// dejaría saldo negativo se rechaza; saldo cero cierra el lote.
func (uc *UseCase) Adjust(ctx context.Context, in AdjustInput) error {
	if in.LotID == "" || in.Delta.IsZero() {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.GenealogyRepository,
		txnRepo repository.InventoryTransactionRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(in.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if !lot.Active() {
			return domain.ErrLotClosed
		}

		before := lot.CurrentQuantity
		after := before.Add(in.Delta)
		if after.IsNegative() {
			return domain.ErrInsufficientQuantity
		}

		now := time.Now()
		if err := txnRepo.Create(&entity.InventoryTransaction{
			ID:              uuid.New().String(),
			LotID:           in.LotID,
			TransactionType: entity.TransactionAdjustment,
			QuantityBefore:  before,
			QuantityChange:  in.Delta,
			QuantityAfter:   after,
			OperatorID:      in.OperatorID,
			TransactionDate: now,
			Notes:           in.Notes,
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		status := entity.LotStatusActive
		if after.IsZero() {
			status = entity.LotStatusConsumed
		}
		return lotRepo.UpdateQuantityStatus(in.LotID, after, status)
	})
}

// Cancel pasa un lote activo al estado terminal cancelled.
func (uc *UseCase) Cancel(ctx context.Context, lotID string) error {
	if lotID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.GenealogyRepository,
		_ repository.InventoryTransactionRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if !lot.Active() {
			return domain.ErrLotClosed
		}
		return lotRepo.UpdateQuantityStatus(lotID, lot.CurrentQuantity, entity.LotStatusCancelled)
	})
}
