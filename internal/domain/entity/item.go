package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType etapa del pipeline de manufactura a la que pertenece un artículo.
// Los valores son los del maestro de la planta (en japonés, como llegan del ERP).
type ItemType string

const (
	ItemTypeRawYarn   ItemType = "原糸"   // hilo crudo
	ItemTypeDyedYarn  ItemType = "染色糸"  // hilo teñido
	ItemTypePSYarn    ItemType = "後PS糸" // hilo post-estirado
	ItemTypeBraided   ItemType = "製紐糸"  // hilo trenzado
	ItemTypeMolded    ItemType = "成形品"  // pieza moldeada
	ItemTypeFinished  ItemType = "完成品"  // producto terminado
	ItemTypePackaging ItemType = "梱包資材" // material de empaque
)

// pipelineRank posición de cada etapa: mayor = más aguas abajo.
// El empaque va al final de cualquier ordenamiento de pipeline.
var pipelineRank = map[ItemType]int{
	ItemTypeRawYarn:   1,
	ItemTypeDyedYarn:  2,
	ItemTypePSYarn:    3,
	ItemTypeBraided:   4,
	ItemTypeMolded:    5,
	ItemTypeFinished:  6,
	ItemTypePackaging: 7,
}

// Valid indica si el tipo pertenece a la enumeración de etapas.
func (t ItemType) Valid() bool {
	_, ok := pipelineRank[t]
	return ok
}

// PipelineRank devuelve la posición de la etapa (mayor = más aguas abajo).
// Tipos desconocidos quedan al final.
func (t ItemType) PipelineRank() int {
	if r, ok := pipelineRank[t]; ok {
		return r
	}
	return len(pipelineRank) + 1
}

// ItemOrder dirección del ordenamiento por etapa en listados.
// Dos vistas distintas recorren el pipeline en sentidos opuestos,
// por eso la dirección es un parámetro explícito y no un default.
type ItemOrder string

const (
	// OrderDownstreamFirst producto terminado primero, materia prima al final.
	OrderDownstreamFirst ItemOrder = "downstream_first"
	// OrderUpstreamFirst materia prima primero, producto terminado al final.
	OrderUpstreamFirst ItemOrder = "upstream_first"
)

// ItemSource procedencia de un registro del catálogo.
const (
	ItemSourceLocal  = "local"
	ItemSourceMirror = "mirror"
)

// Item tipo de artículo de manufactura (no una instancia física; ver Lot).
// Los atributos técnicos reconocidos van en columnas tipadas; cualquier otro
// atributo viaja en AdditionalAttributes como mapa abierto.
type Item struct {
	ItemID        string
	ItemName      string
	ItemType      ItemType
	UnitOfMeasure string

	MaterialType   *string
	Denier         *decimal.Decimal
	PSRatio        *decimal.Decimal
	BraidStructure *string
	HasCore        *bool
	Color          *string
	LengthM        *decimal.Decimal
	TwistType      *string

	AdditionalAttributes map[string]any

	Source    string // local | mirror (procedencia; el espejo no es autoritativo)
	CreatedAt time.Time
	UpdatedAt time.Time
}
