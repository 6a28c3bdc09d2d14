package lots_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvargas/trazalote/internal/application/lots"
	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/infrastructure/memory"
)

func newLotsUC(t *testing.T) (*lots.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := lots.NewUseCase(
		memory.NewTxRunner(store),
		store.Items(),
		store.Lots(),
		store.References(),
		store.Transactions(),
	)
	require.NoError(t, store.Items().Create(&entity.Item{
		ItemID: "YARN_001", ItemName: "Hilo PE 150D",
		ItemType: entity.ItemTypeRawYarn, UnitOfMeasure: "KG",
		Source: entity.ItemSourceLocal,
	}))
	return uc, store
}

var mayo2025 = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

func createLot(t *testing.T, uc *lots.UseCase, planned float64) string {
	t.Helper()
	lotID, err := uc.Create(context.Background(), lots.CreateLotInput{
		ItemID:          "YARN_001",
		ProcessCode:     "P",
		PlannedQuantity: decimal.NewFromFloat(planned),
		ProductionDate:  mayo2025,
	})
	require.NoError(t, err)
	return lotID
}

func TestGenerateLotID_FormatoYSecuencia(t *testing.T) {
	uc, _ := newLotsUC(t)

	// sin lotes previos: secuencia 001
	lotID, err := uc.GenerateLotID("P", mayo2025)
	require.NoError(t, err)
	assert.Equal(t, "2505P001", lotID)

	// tras crear un lote la vista previa avanza
	assert.Equal(t, "2505P001", createLot(t, uc, 100))
	lotID, err = uc.GenerateLotID("P", mayo2025)
	require.NoError(t, err)
	assert.Equal(t, "2505P002", lotID)
	assert.Equal(t, "2505P002", createLot(t, uc, 50))
	assert.Equal(t, "2505P003", createLot(t, uc, 25))

	// otro proceso u otro mes llevan secuencia propia
	otraFecha := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	lotID, err = uc.GenerateLotID("P", otraFecha)
	require.NoError(t, err)
	assert.Equal(t, "2506P001", lotID)
	lotID, err = uc.GenerateLotID("B", mayo2025)
	require.NoError(t, err)
	assert.Equal(t, "2505B001", lotID)

	_, err = uc.GenerateLotID("Z", mayo2025)
	assert.ErrorIs(t, err, domain.ErrUnknownProcess)
}

func TestCreate_LoteConRecepcionAtomica(t *testing.T) {
	uc, _ := newLotsUC(t)

	lotID := createLot(t, uc, 100)

	lot, err := uc.Get(lotID)
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusActive, lot.LotStatus)
	assert.True(t, lot.CurrentQuantity.Equal(decimal.NewFromInt(100)),
		"sin cantidad real, el saldo inicial es la planificada")
	assert.Equal(t, "A", lot.QualityGrade, "el grado por defecto es A")
	assert.Equal(t, "Hilo PE 150D", lot.ItemName)
	assert.Equal(t, "Process", lot.ProcessName)
	assert.Equal(t, 1, lot.ProcessLevel)

	// una sola transacción RECEIPT, consistente con el saldo
	txns, err := uc.Transactions(lotID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionReceipt, txns[0].TransactionType)
	assert.True(t, txns[0].QuantityBefore.IsZero())
	assert.True(t, txns[0].QuantityChange.Equal(decimal.NewFromInt(100)))
	assert.True(t, txns[0].QuantityAfter.Equal(lot.CurrentQuantity))
}

func TestCreate_CantidadRealPrevaleceSobrePlanificada(t *testing.T) {
	uc, _ := newLotsUC(t)

	actual := decimal.NewFromFloat(95.5)
	lotID, err := uc.Create(context.Background(), lots.CreateLotInput{
		ItemID:          "YARN_001",
		ProcessCode:     "P",
		PlannedQuantity: decimal.NewFromInt(100),
		ActualQuantity:  &actual,
		ProductionDate:  mayo2025,
	})
	require.NoError(t, err)

	lot, err := uc.Get(lotID)
	require.NoError(t, err)
	assert.True(t, lot.CurrentQuantity.Equal(actual))
	assert.True(t, lot.PlannedQuantity.Equal(decimal.NewFromInt(100)))

	txns, err := uc.Transactions(lotID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].QuantityChange.Equal(actual),
		"la recepción registra la cantidad medida, no la planificada")
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newLotsUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, lots.CreateLotInput{
		ItemID: "NADA", ProcessCode: "P", PlannedQuantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, lots.CreateLotInput{
		ItemID: "YARN_001", ProcessCode: "Z", PlannedQuantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProcess)

	_, err = uc.Create(ctx, lots.CreateLotInput{
		ItemID: "YARN_001", ProcessCode: "P", PlannedQuantity: decimal.NewFromInt(1),
		QualityGrade: "Z",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownGrade)

	_, err = uc.Create(ctx, lots.CreateLotInput{
		ItemID: "YARN_001", ProcessCode: "P", PlannedQuantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_DeltaConSigno(t *testing.T) {
	uc, _ := newLotsUC(t)
	ctx := context.Background()
	lotID := createLot(t, uc, 100)

	// merma de 10
	require.NoError(t, uc.Adjust(ctx, lots.AdjustInput{
		LotID: lotID, Delta: decimal.NewFromInt(-10), Notes: "merma por rotura",
	}))
	lot, err := uc.Get(lotID)
	require.NoError(t, err)
	assert.True(t, lot.CurrentQuantity.Equal(decimal.NewFromInt(90)))

	txns, err := uc.Transactions(lotID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, entity.TransactionAdjustment, txns[0].TransactionType)
	assert.True(t, txns[0].QuantityChange.Equal(decimal.NewFromInt(-10)))
	assert.True(t, txns[0].QuantityAfter.Equal(decimal.NewFromInt(90)))

	// un ajuste que dejaría saldo negativo se rechaza sin escribir nada
	err = uc.Adjust(ctx, lots.AdjustInput{LotID: lotID, Delta: decimal.NewFromInt(-200)})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	txns, err = uc.Transactions(lotID)
	require.NoError(t, err)
	assert.Len(t, txns, 2, "el rechazo no debe dejar rastro en el libro")

	// ajuste a cero cierra el lote
	require.NoError(t, uc.Adjust(ctx, lots.AdjustInput{LotID: lotID, Delta: decimal.NewFromInt(-90)}))
	lot, err = uc.Get(lotID)
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusConsumed, lot.LotStatus)

	// lote cerrado: no admite más ajustes
	err = uc.Adjust(ctx, lots.AdjustInput{LotID: lotID, Delta: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrLotClosed)
}

func TestCancel_SoloLotesActivos(t *testing.T) {
	uc, _ := newLotsUC(t)
	ctx := context.Background()
	lotID := createLot(t, uc, 100)

	require.NoError(t, uc.Cancel(ctx, lotID))
	lot, err := uc.Get(lotID)
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusCancelled, lot.LotStatus)
	assert.True(t, lot.CurrentQuantity.Equal(decimal.NewFromInt(100)),
		"la cancelación no toca el saldo")

	assert.ErrorIs(t, uc.Cancel(ctx, lotID), domain.ErrLotClosed)
	assert.ErrorIs(t, uc.Cancel(ctx, "NADA"), domain.ErrNotFound)
}

func TestListByItem_FiltroPorEstado(t *testing.T) {
	uc, _ := newLotsUC(t)
	ctx := context.Background()

	a := createLot(t, uc, 100)
	b := createLot(t, uc, 50)
	require.NoError(t, uc.Cancel(ctx, b))

	all, err := uc.ListByItem("YARN_001", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := uc.ListByItem("YARN_001", entity.LotStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a, active[0].LotID)

	_, err = uc.ListByItem("YARN_001", "otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReferencias_ProcesosYGrados(t *testing.T) {
	uc, _ := newLotsUC(t)

	steps, err := uc.Processes()
	require.NoError(t, err)
	require.Len(t, steps, 7)
	assert.Equal(t, "P", steps[0].ProcessCode, "los pasos van ordenados por nivel")
	assert.Equal(t, "E", steps[6].ProcessCode)

	grades, err := uc.Grades()
	require.NoError(t, err)
	require.Len(t, grades, 3)
	assert.Equal(t, "A", grades[0].GradeCode)
}
