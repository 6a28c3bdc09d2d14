package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMComponent arista dirigida del grafo BOM: una unidad del artículo padre
// consume Quantity unidades del componente en el rol UsageType.
// El mismo par padre/componente puede repetirse con roles distintos.
type BOMComponent struct {
	ParentItemID    string
	ComponentItemID string
	Quantity        decimal.Decimal
	UsageType       string // Main Material, Core Thread, Packaging, Container, ...
	CreatedAt       time.Time
}

// ComponentLine línea de componentes directos de un padre (arista + artículo resuelto).
type ComponentLine struct {
	Quantity  decimal.Decimal
	UsageType string
	Item      *Item
}

// BOMNode raíz de una expansión multinivel del BOM.
type BOMNode struct {
	Item       *Item
	Components []*BOMComponentNode
}

// BOMComponentNode nodo hijo de la expansión: contexto de la arista que lo
// trajo (cantidad y rol) más su propio subárbol. La expansión es un árbol, no
// una proyección de DAG: un mismo componente bajo dos padres distintos aparece
// dos veces, cada uno con su propia cantidad.
type BOMComponentNode struct {
	Quantity   decimal.Decimal
	UsageType  string
	Item       *Item
	Components []*BOMComponentNode
}
