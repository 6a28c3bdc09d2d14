package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de lote. active es el único estado mutable; consumed y cancelled
// son terminales y rechazan cualquier mutación posterior.
const (
	LotStatusActive    = "active"
	LotStatusConsumed  = "consumed"
	LotStatusCancelled = "cancelled"
)

// Lot lote físico de producción: instancia un tipo de artículo en una etapa
// de proceso y una fecha. CurrentQuantity es el saldo restante; arranca en
// ActualQuantity (o PlannedQuantity si no se midió) y solo decrece vía
// consumos de genealogía o ajustes. Nunca puede quedar negativo.
type Lot struct {
	LotID           string // formato YYMM + código de proceso + secuencia de 3 dígitos (ej. 2505P001)
	ItemID          string
	ProcessCode     string
	ProductionDate  time.Time
	PlannedQuantity decimal.Decimal
	ActualQuantity  decimal.Decimal
	CurrentQuantity decimal.Decimal
	QualityGrade    string
	LotStatus       string

	EquipmentID      *string
	OperatorID       *string
	Location         *string
	MeasuredLength   *decimal.Decimal
	MeasuredWeight   *decimal.Decimal
	MeasurementNotes *string

	CreatedAt time.Time
}

// Active indica si el lote admite mutaciones.
func (l *Lot) Active() bool {
	return l.LotStatus == LotStatusActive
}

// LotDetail lote con los nombres resueltos de artículo, proceso y grado
// (el JOIN que usan las vistas de detalle y los listados).
type LotDetail struct {
	Lot
	ItemName      string
	ItemType      ItemType
	UnitOfMeasure string
	ProcessName   string
	ProcessLevel  int
	GradeName     string
}
