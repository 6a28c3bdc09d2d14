package genealogy_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvargas/trazalote/internal/application/genealogy"
	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/infrastructure/memory"
)

func newGenealogyUC(t *testing.T) (*genealogy.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := genealogy.NewUseCase(memory.NewTxRunner(store), store.Lots(), store.Genealogy())
	return uc, store
}

// seedLot crea un lote activo directamente en el almacén.
func seedLot(t *testing.T, store *memory.Store, lotID, processCode string, quantity float64) {
	t.Helper()
	qty := decimal.NewFromFloat(quantity)
	require.NoError(t, store.Lots().Create(&entity.Lot{
		LotID:           lotID,
		ItemID:          "YARN_001",
		ProcessCode:     processCode,
		ProductionDate:  time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		PlannedQuantity: qty,
		ActualQuantity:  qty,
		CurrentQuantity: qty,
		QualityGrade:    "A",
		LotStatus:       entity.LotStatusActive,
	}))
}

func TestConsume_DescuentaDelHijoYRegistraArista(t *testing.T) {
	uc, store := newGenealogyUC(t)
	seedLot(t, store, "2505B001", "B", 50) // padre: lote trenzado
	seedLot(t, store, "2505P001", "P", 100)

	require.NoError(t, uc.Consume(context.Background(), genealogy.ConsumeInput{
		ParentLotID:      "2505B001",
		ChildLotID:       "2505P001",
		ConsumedQuantity: decimal.NewFromInt(30),
	}))

	// el saldo sale del hijo; el del padre no cambia
	child, err := store.Lots().GetByID("2505P001")
	require.NoError(t, err)
	assert.True(t, child.CurrentQuantity.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, entity.LotStatusActive, child.LotStatus)
	parent, err := store.Lots().GetByID("2505B001")
	require.NoError(t, err)
	assert.True(t, parent.CurrentQuantity.Equal(decimal.NewFromInt(50)))

	edges, err := store.Genealogy().ByParent("2505B001")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "2505P001", edges[0].ChildLotID)
	assert.True(t, edges[0].ConsumedQuantity.Equal(decimal.NewFromInt(30)))
	assert.True(t, edges[0].ConsumptionRate.Equal(decimal.NewFromInt(30)),
		"30 de 100 es el 30 por ciento del saldo al momento del consumo")
	assert.Equal(t, "B", edges[0].ProcessCode, "el proceso de la arista es el del padre")
	assert.Equal(t, "Main Material", edges[0].UsageType)

	txns, err := store.Transactions().ListByLot("2505P001")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionConsumption, txns[0].TransactionType)
	assert.True(t, txns[0].QuantityChange.Equal(decimal.NewFromInt(-30)))
	assert.True(t, txns[0].QuantityAfter.Equal(decimal.NewFromInt(70)))
}

func TestConsume_SaldoInsuficienteNoDejaRastro(t *testing.T) {
	uc, store := newGenealogyUC(t)
	seedLot(t, store, "2505B001", "B", 50)
	seedLot(t, store, "2505P001", "P", 70)

	err := uc.Consume(context.Background(), genealogy.ConsumeInput{
		ParentLotID:      "2505B001",
		ChildLotID:       "2505P001",
		ConsumedQuantity: decimal.NewFromInt(80),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	child, err := store.Lots().GetByID("2505P001")
	require.NoError(t, err)
	assert.True(t, child.CurrentQuantity.Equal(decimal.NewFromInt(70)),
		"el rechazo no debe tocar el saldo")
	edges, err := store.Genealogy().ByParent("2505B001")
	require.NoError(t, err)
	assert.Empty(t, edges)
	txns, err := store.Transactions().ListByLot("2505P001")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestConsume_Validaciones(t *testing.T) {
	uc, store := newGenealogyUC(t)
	ctx := context.Background()
	seedLot(t, store, "2505B001", "B", 50)
	seedLot(t, store, "2505P001", "P", 100)

	err := uc.Consume(ctx, genealogy.ConsumeInput{
		ParentLotID: "2505P001", ChildLotID: "2505P001",
		ConsumedQuantity: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Consume(ctx, genealogy.ConsumeInput{
		ParentLotID: "2505B001", ChildLotID: "2505P001",
		ConsumedQuantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Consume(ctx, genealogy.ConsumeInput{
		ParentLotID: "NADA", ChildLotID: "2505P001",
		ConsumedQuantity: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// un hijo cerrado no puede consumirse
	require.NoError(t, store.Lots().UpdateQuantityStatus("2505P001", decimal.NewFromInt(100), entity.LotStatusCancelled))
	err = uc.Consume(ctx, genealogy.ConsumeInput{
		ParentLotID: "2505B001", ChildLotID: "2505P001",
		ConsumedQuantity: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrLotClosed)
}

func TestConsume_SaldoCeroCierraElLote(t *testing.T) {
	uc, store := newGenealogyUC(t)
	seedLot(t, store, "2505B001", "B", 50)
	seedLot(t, store, "2505P001", "P", 100)

	require.NoError(t, uc.Consume(context.Background(), genealogy.ConsumeInput{
		ParentLotID:      "2505B001",
		ChildLotID:       "2505P001",
		ConsumedQuantity: decimal.NewFromInt(100),
	}))

	child, err := store.Lots().GetByID("2505P001")
	require.NoError(t, err)
	assert.True(t, child.CurrentQuantity.IsZero())
	assert.Equal(t, entity.LotStatusConsumed, child.LotStatus)
}

// cadena P → B → C: el hilo se consume en el trenzado y éste en el recubierto.
func seedChain(t *testing.T, uc *genealogy.UseCase, store *memory.Store) {
	t.Helper()
	seedLot(t, store, "2505P001", "P", 100)
	seedLot(t, store, "2505B001", "B", 50)
	seedLot(t, store, "2505C001", "C", 20)
	ctx := context.Background()
	require.NoError(t, uc.Consume(ctx, genealogy.ConsumeInput{
		ParentLotID: "2505B001", ChildLotID: "2505P001",
		ConsumedQuantity: decimal.NewFromInt(40),
	}))
	require.NoError(t, uc.Consume(ctx, genealogy.ConsumeInput{
		ParentLotID: "2505C001", ChildLotID: "2505B001",
		ConsumedQuantity: decimal.NewFromInt(10),
	}))
}

func TestTraverse_HaciaAdelante(t *testing.T) {
	uc, store := newGenealogyUC(t)
	seedChain(t, uc, store)

	// desde el hilo: a dónde fue el material
	tree, err := uc.Traverse("2505P001", entity.TraceForward, 0)
	require.NoError(t, err)
	assert.Equal(t, "2505P001", tree.Lot.LotID)
	require.Len(t, tree.Related, 1)
	braid := tree.Related[0]
	assert.Equal(t, "2505B001", braid.Lot.LotID)
	assert.True(t, braid.ConsumedQuantity.Equal(decimal.NewFromInt(40)))
	require.Len(t, braid.Related, 1)
	assert.Equal(t, "2505C001", braid.Related[0].Lot.LotID)

	// maxDepth 2 corta el recubierto
	tree, err = uc.Traverse("2505P001", entity.TraceForward, 2)
	require.NoError(t, err)
	require.Len(t, tree.Related, 1)
	assert.Empty(t, tree.Related[0].Related)
}

func TestTraverse_HaciaAtras(t *testing.T) {
	uc, store := newGenealogyUC(t)
	seedChain(t, uc, store)

	tree, err := uc.Traverse("2505C001", entity.TraceBackward, 0)
	require.NoError(t, err)
	require.Len(t, tree.Related, 1)
	braid := tree.Related[0]
	assert.Equal(t, "2505B001", braid.Lot.LotID)
	assert.True(t, braid.ConsumedQuantity.Equal(decimal.NewFromInt(10)))
	require.Len(t, braid.Related, 1)
	assert.Equal(t, "2505P001", braid.Related[0].Lot.LotID)
}

func TestTraverse_LoteAisladoYErrores(t *testing.T) {
	uc, store := newGenealogyUC(t)
	seedLot(t, store, "2505W001", "W", 10)

	tree, err := uc.Traverse("2505W001", entity.TraceForward, 0)
	require.NoError(t, err)
	assert.Empty(t, tree.Related)

	_, err = uc.Traverse("NADA", entity.TraceForward, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Traverse("2505W001", "diagonal", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCandidates_SoloNivelesAguasAbajo(t *testing.T) {
	uc, store := newGenealogyUC(t)
	seedLot(t, store, "2505P001", "P", 100) // nivel 1: el lote a consumir
	seedLot(t, store, "2505P002", "P", 100) // mismo nivel: fuera
	seedLot(t, store, "2505B001", "B", 50)  // nivel 3: candidato
	seedLot(t, store, "2505C001", "C", 20)  // nivel 5: candidato
	seedLot(t, store, "2505W001", "W", 0)   // nivel 2 pero sin saldo: fuera

	candidates, err := uc.Candidates("2505P001")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "2505B001", candidates[0].LotID, "ordenados por nivel ascendente")
	assert.Equal(t, "2505C001", candidates[1].LotID)

	_, err = uc.Candidates("NADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInputsOutputs_ContraparteResuelta(t *testing.T) {
	uc, store := newGenealogyUC(t)
	seedChain(t, uc, store)

	inputs, err := uc.Inputs("2505B001")
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	require.NotNil(t, inputs[0].Counterpart)
	assert.Equal(t, "2505P001", inputs[0].Counterpart.LotID)

	outputs, err := uc.Outputs("2505B001")
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	require.NotNil(t, outputs[0].Counterpart)
	assert.Equal(t, "2505C001", outputs[0].Counterpart.LotID)

	_, err = uc.Inputs("NADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
