package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvargas/trazalote/internal/application/catalog"
	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/infrastructure/memory"
)

func newCatalogUC() (*catalog.UseCase, *memory.Store) {
	store := memory.NewStore()
	return catalog.NewUseCase(store.Items()), store
}

func TestRegister_AtributosTipadosYLibres(t *testing.T) {
	uc, _ := newCatalogUC()

	item, err := uc.Register(catalog.RegisterItemInput{
		ItemID:        "YARN_001",
		ItemName:      "Hilo PE 150D",
		ItemType:      entity.ItemTypeRawYarn,
		UnitOfMeasure: "KG",
		Attributes: map[string]any{
			"material_type": "PE",
			"denier":        150.0,
			"has_core":      true,
			"supplier":      "Proveedor A", // clave libre
		},
	})
	require.NoError(t, err, "el registro con atributos válidos no debe fallar")

	// Claves reconocidas van a columnas tipadas
	require.NotNil(t, item.MaterialType)
	assert.Equal(t, "PE", *item.MaterialType)
	require.NotNil(t, item.Denier)
	assert.True(t, item.Denier.Equal(decimal.NewFromInt(150)), "denier debe conservarse como decimal")
	require.NotNil(t, item.HasCore)
	assert.True(t, *item.HasCore)

	// Claves libres quedan en el mapa abierto
	assert.Equal(t, "Proveedor A", item.AdditionalAttributes["supplier"])
	_, tipada := item.AdditionalAttributes["material_type"]
	assert.False(t, tipada, "las claves tipadas no deben duplicarse en el mapa abierto")

	assert.Equal(t, entity.ItemSourceLocal, item.Source)
}

func TestRegister_Duplicado(t *testing.T) {
	uc, _ := newCatalogUC()

	in := catalog.RegisterItemInput{
		ItemID:        "YARN_001",
		ItemName:      "Hilo PE 150D",
		ItemType:      entity.ItemTypeRawYarn,
		UnitOfMeasure: "KG",
	}
	_, err := uc.Register(in)
	require.NoError(t, err)

	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_TipoInvalido(t *testing.T) {
	uc, _ := newCatalogUC()

	_, err := uc.Register(catalog.RegisterItemInput{
		ItemID:        "X",
		ItemName:      "X",
		ItemType:      "no-existe",
		UnitOfMeasure: "KG",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_NoEncontrado(t *testing.T) {
	uc, _ := newCatalogUC()

	_, err := uc.Get("NADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_OrdenPorEtapa(t *testing.T) {
	uc, _ := newCatalogUC()

	for _, in := range []catalog.RegisterItemInput{
		{ItemID: "BRAID_001", ItemName: "Trenzado X8", ItemType: entity.ItemTypeBraided, UnitOfMeasure: "M"},
		{ItemID: "YARN_001", ItemName: "Hilo PE 150D", ItemType: entity.ItemTypeRawYarn, UnitOfMeasure: "KG"},
		{ItemID: "PROD_001", ItemName: "Línea terminada", ItemType: entity.ItemTypeFinished, UnitOfMeasure: "EA"},
	} {
		_, err := uc.Register(in)
		require.NoError(t, err)
	}

	// downstream_first: producto terminado primero, materia prima al final
	items, err := uc.List("", entity.OrderDownstreamFirst)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "PROD_001", items[0].ItemID)
	assert.Equal(t, "YARN_001", items[2].ItemID)

	// upstream_first invierte el recorrido
	items, err = uc.List("", entity.OrderUpstreamFirst)
	require.NoError(t, err)
	assert.Equal(t, "YARN_001", items[0].ItemID)
	assert.Equal(t, "PROD_001", items[2].ItemID)

	// filtro por tipo
	items, err = uc.List(entity.ItemTypeRawYarn, entity.OrderUpstreamFirst)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "YARN_001", items[0].ItemID)
}

func TestSearch_SubcadenaEnIdONombre(t *testing.T) {
	uc, _ := newCatalogUC()

	_, err := uc.Register(catalog.RegisterItemInput{
		ItemID: "YARN_001", ItemName: "Hilo PE 150D", ItemType: entity.ItemTypeRawYarn, UnitOfMeasure: "KG",
	})
	require.NoError(t, err)

	items, err := uc.Search("yarn")
	require.NoError(t, err)
	require.Len(t, items, 1, "la búsqueda debe ser case-insensitive")

	items, err = uc.Search("150d")
	require.NoError(t, err)
	assert.Len(t, items, 1, "la búsqueda debe cubrir el nombre")

	_, err = uc.Search("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStats_ConteoPorEtapa(t *testing.T) {
	uc, _ := newCatalogUC()

	for _, in := range []catalog.RegisterItemInput{
		{ItemID: "Y1", ItemName: "a", ItemType: entity.ItemTypeRawYarn, UnitOfMeasure: "KG"},
		{ItemID: "Y2", ItemName: "b", ItemType: entity.ItemTypeRawYarn, UnitOfMeasure: "KG"},
		{ItemID: "B1", ItemName: "c", ItemType: entity.ItemTypeBraided, UnitOfMeasure: "M"},
	} {
		_, err := uc.Register(in)
		require.NoError(t, err)
	}

	counts, err := uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[entity.ItemTypeRawYarn])
	assert.Equal(t, 1, counts[entity.ItemTypeBraided])
}
