package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotGenealogy arista dirigida del grafo de genealogía de lotes:
// ConsumedQuantity unidades del lote hijo se incorporaron físicamente al lote
// padre. ConsumptionRate es el porcentaje del saldo del hijo al momento del
// consumo; se calcula una sola vez al crear la arista y no se recalcula.
type LotGenealogy struct {
	ID               int64
	ParentLotID      string
	ChildLotID       string
	ConsumedQuantity decimal.Decimal
	ConsumptionRate  decimal.Decimal // consumed / saldo del hijo * 100
	ProcessCode      string          // copiado del lote padre al crear la arista
	ConsumptionDate  time.Time
	UsageType        string
	Notes            string
	CreatedAt        time.Time
}

// GenealogyLink arista con el lote del otro extremo resuelto, para las vistas
// de detalle (materiales consumidos / destinos del lote).
type GenealogyLink struct {
	LotGenealogy
	Counterpart *LotDetail
}

// TraceDirection sentido del recorrido de genealogía.
type TraceDirection string

const (
	// TraceForward qué se fabricó con este lote: sigue las aristas donde el
	// lote actual es el hijo, hacia cada lote padre (aguas abajo).
	TraceForward TraceDirection = "forward"
	// TraceBackward qué se consumió para fabricar este lote: sigue las aristas
	// donde el lote actual es el padre, hacia cada lote hijo (aguas arriba).
	TraceBackward TraceDirection = "backward"
)

// Valid indica si la dirección es una de las dos soportadas.
func (d TraceDirection) Valid() bool {
	return d == TraceForward || d == TraceBackward
}

// GenealogyNode nodo del árbol de trazabilidad. En la raíz los campos de
// arista quedan en cero; en los demás nodos describen la arista que conecta
// con el nodo padre del árbol. Related son los lotes alcanzados en el sentido
// del recorrido.
type GenealogyNode struct {
	Lot              *LotDetail
	ConsumedQuantity decimal.Decimal
	ConsumptionRate  decimal.Decimal
	UsageType        string
	Related          []*GenealogyNode
}
