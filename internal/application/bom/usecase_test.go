package bom_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvargas/trazalote/internal/application/bom"
	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/infrastructure/memory"
)

func newBOMUC(t *testing.T) (*bom.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return bom.NewUseCase(memory.NewTxRunner(store), store.Items(), store.BOM()), store
}

func seedItem(t *testing.T, store *memory.Store, id, name string, itemType entity.ItemType, uom string) {
	t.Helper()
	require.NoError(t, store.Items().Create(&entity.Item{
		ItemID: id, ItemName: name, ItemType: itemType, UnitOfMeasure: uom,
		Source: entity.ItemSourceLocal,
	}))
}

func addEdge(t *testing.T, uc *bom.UseCase, parent, component string, qty float64, usage string) {
	t.Helper()
	require.NoError(t, uc.AddComponent(context.Background(), bom.AddComponentInput{
		ParentItemID:    parent,
		ComponentItemID: component,
		Quantity:        decimal.NewFromFloat(qty),
		UsageType:       usage,
	}))
}

func TestAddComponent_Validaciones(t *testing.T) {
	uc, store := newBOMUC(t)
	seedItem(t, store, "BRAID_001", "Trenzado X8", entity.ItemTypeBraided, "M")
	seedItem(t, store, "YARN_001", "Hilo PE 150D", entity.ItemTypeRawYarn, "KG")

	ctx := context.Background()

	// autorreferencia
	err := uc.AddComponent(ctx, bom.AddComponentInput{
		ParentItemID: "BRAID_001", ComponentItemID: "BRAID_001",
		Quantity: decimal.NewFromInt(1), UsageType: "Main Material",
	})
	assert.ErrorIs(t, err, domain.ErrSelfReference)

	// cantidad no positiva
	err = uc.AddComponent(ctx, bom.AddComponentInput{
		ParentItemID: "BRAID_001", ComponentItemID: "YARN_001",
		Quantity: decimal.Zero, UsageType: "Main Material",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// extremo inexistente
	err = uc.AddComponent(ctx, bom.AddComponentInput{
		ParentItemID: "BRAID_001", ComponentItemID: "NADA",
		Quantity: decimal.NewFromInt(1), UsageType: "Main Material",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// inserción válida y duplicado con el mismo rol
	addEdge(t, uc, "BRAID_001", "YARN_001", 8.0, "Main Braid Thread")
	err = uc.AddComponent(ctx, bom.AddComponentInput{
		ParentItemID: "BRAID_001", ComponentItemID: "YARN_001",
		Quantity: decimal.NewFromInt(2), UsageType: "Main Braid Thread",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// mismo par con rol distinto sí se admite
	err = uc.AddComponent(ctx, bom.AddComponentInput{
		ParentItemID: "BRAID_001", ComponentItemID: "YARN_001",
		Quantity: decimal.NewFromInt(1), UsageType: "Core Thread",
	})
	assert.NoError(t, err)
}

func TestAddComponent_RechazaCiclo(t *testing.T) {
	uc, store := newBOMUC(t)
	seedItem(t, store, "A", "a", entity.ItemTypeFinished, "EA")
	seedItem(t, store, "B", "b", entity.ItemTypeBraided, "M")
	seedItem(t, store, "C", "c", entity.ItemTypeRawYarn, "KG")

	addEdge(t, uc, "A", "B", 1, "Main Material")
	addEdge(t, uc, "B", "C", 1, "Main Material")

	// C→A cerraría el ciclo A→B→C→A
	err := uc.AddComponent(context.Background(), bom.AddComponentInput{
		ParentItemID: "C", ComponentItemID: "A",
		Quantity: decimal.NewFromInt(1), UsageType: "Main Material",
	})
	assert.ErrorIs(t, err, domain.ErrCyclicReference)

	// la arista inversa directa también
	err = uc.AddComponent(context.Background(), bom.AddComponentInput{
		ParentItemID: "B", ComponentItemID: "A",
		Quantity: decimal.NewFromInt(1), UsageType: "Main Material",
	})
	assert.ErrorIs(t, err, domain.ErrCyclicReference)
}

func TestDirectComponents_LineaResuelta(t *testing.T) {
	uc, store := newBOMUC(t)
	seedItem(t, store, "BRAID_001", "Trenzado X8", entity.ItemTypeBraided, "M")
	seedItem(t, store, "YARN_001", "Hilo PE 150D", entity.ItemTypeRawYarn, "KG")

	addEdge(t, uc, "BRAID_001", "YARN_001", 8.0, "Main Braid Thread")

	lines, err := uc.DirectComponents("BRAID_001")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromFloat(8.0)))
	assert.Equal(t, "Main Braid Thread", lines[0].UsageType)
	require.NotNil(t, lines[0].Item)
	assert.Equal(t, "YARN_001", lines[0].Item.ItemID)
	assert.Equal(t, entity.ItemTypeRawYarn, lines[0].Item.ItemType)
	assert.Equal(t, "KG", lines[0].Item.UnitOfMeasure)

	_, err = uc.DirectComponents("NADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpand_ArbolMultinivel(t *testing.T) {
	uc, store := newBOMUC(t)
	seedItem(t, store, "A", "a", entity.ItemTypeFinished, "EA")
	seedItem(t, store, "B", "b", entity.ItemTypeMolded, "EA")
	seedItem(t, store, "C", "c", entity.ItemTypeBraided, "M")
	seedItem(t, store, "D", "d", entity.ItemTypeRawYarn, "KG")

	addEdge(t, uc, "A", "B", 1, "Main Material")
	addEdge(t, uc, "B", "C", 2, "Main Material")
	addEdge(t, uc, "C", "D", 8, "Main Braid Thread")

	tree, err := uc.Expand("A", 0)
	require.NoError(t, err)

	require.Len(t, tree.Components, 1)
	b := tree.Components[0]
	assert.Equal(t, "B", b.Item.ItemID)
	require.Len(t, b.Components, 1)
	c := b.Components[0]
	assert.Equal(t, "C", c.Item.ItemID)
	assert.True(t, c.Quantity.Equal(decimal.NewFromInt(2)))
	require.Len(t, c.Components, 1)
	d := c.Components[0]
	assert.Equal(t, "D", d.Item.ItemID)
	assert.True(t, d.Quantity.Equal(decimal.NewFromInt(8)))
	assert.Empty(t, d.Components)

	// la expansión es de solo lectura: repetirla da el mismo resultado
	again, err := uc.Expand("A", 0)
	require.NoError(t, err)
	assert.Equal(t, tree, again)
}

func TestExpand_ProfundidadLimitada(t *testing.T) {
	uc, store := newBOMUC(t)
	seedItem(t, store, "A", "a", entity.ItemTypeFinished, "EA")
	seedItem(t, store, "B", "b", entity.ItemTypeBraided, "M")
	seedItem(t, store, "C", "c", entity.ItemTypeRawYarn, "KG")

	addEdge(t, uc, "A", "B", 1, "Main Material")
	addEdge(t, uc, "B", "C", 1, "Main Material")

	// depth 1: solo el primer nivel, B queda como hoja
	tree, err := uc.Expand("A", 1)
	require.NoError(t, err)
	require.Len(t, tree.Components, 1)
	assert.Empty(t, tree.Components[0].Components, "el tope de profundidad debe truncar el subárbol")
}

func TestExpand_RaizInexistente(t *testing.T) {
	uc, _ := newBOMUC(t)

	_, err := uc.Expand("NADA", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpand_ReferenciaRotaDescartaSoloLaRama(t *testing.T) {
	uc, store := newBOMUC(t)
	seedItem(t, store, "A", "a", entity.ItemTypeFinished, "EA")
	seedItem(t, store, "B", "b", entity.ItemTypeBraided, "M")

	addEdge(t, uc, "A", "B", 1, "Main Material")
	// arista directa en el store hacia un artículo que no existe en el maestro
	require.NoError(t, store.BOM().AddComponent(&entity.BOMComponent{
		ParentItemID: "A", ComponentItemID: "ROTO",
		Quantity: decimal.NewFromInt(1), UsageType: "Packaging",
	}))

	tree, err := uc.Expand("A", 0)
	require.NoError(t, err, "una fila mala del maestro no debe tumbar la vista completa")
	require.Len(t, tree.Components, 1, "la rama rota se descarta en silencio")
	assert.Equal(t, "B", tree.Components[0].Item.ItemID)
}
