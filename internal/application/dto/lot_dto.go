package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain/entity"
)

// CreateLotRequest alta de un lote de producción.
// production_date en formato YYYY-MM-DD; vacía = hoy.
type CreateLotRequest struct {
	ItemID          string           `json:"item_id"`
	ProcessCode     string           `json:"process_code"`
	PlannedQuantity decimal.Decimal  `json:"planned_quantity"`
	ProductionDate  string           `json:"production_date"`
	ActualQuantity  *decimal.Decimal `json:"actual_quantity"`
	QualityGrade    string           `json:"quality_grade"`

	EquipmentID      *string          `json:"equipment_id"`
	OperatorID       *string          `json:"operator_id"`
	Location         *string          `json:"location"`
	MeasuredLength   *decimal.Decimal `json:"measured_length"`
	MeasuredWeight   *decimal.Decimal `json:"measured_weight"`
	MeasurementNotes *string          `json:"measurement_notes"`
}

// AdjustLotRequest corrección administrativa de saldo (delta con signo).
type AdjustLotRequest struct {
	Delta      decimal.Decimal `json:"delta"`
	Notes      string          `json:"notes"`
	OperatorID *string         `json:"operator_id"`
}

// LotResponse detalle de un lote con nombres resueltos.
type LotResponse struct {
	LotID           string          `json:"lot_id"`
	ItemID          string          `json:"item_id"`
	ItemName        string          `json:"item_name"`
	ItemType        string          `json:"item_type"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	ProcessCode     string          `json:"process_code"`
	ProcessName     string          `json:"process_name"`
	ProcessLevel    int             `json:"process_level"`
	ProductionDate  string          `json:"production_date"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
	ActualQuantity  decimal.Decimal `json:"actual_quantity"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	QualityGrade    string          `json:"quality_grade"`
	GradeName       string          `json:"grade_name"`
	LotStatus       string          `json:"lot_status"`

	EquipmentID      *string          `json:"equipment_id,omitempty"`
	OperatorID       *string          `json:"operator_id,omitempty"`
	Location         *string          `json:"location,omitempty"`
	MeasuredLength   *decimal.Decimal `json:"measured_length,omitempty"`
	MeasuredWeight   *decimal.Decimal `json:"measured_weight,omitempty"`
	MeasurementNotes *string          `json:"measurement_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewLotResponse mapea el detalle de lote al DTO.
func NewLotResponse(lot *entity.LotDetail) *LotResponse {
	return &LotResponse{
		LotID:            lot.LotID,
		ItemID:           lot.ItemID,
		ItemName:         lot.ItemName,
		ItemType:         string(lot.ItemType),
		UnitOfMeasure:    lot.UnitOfMeasure,
		ProcessCode:      lot.ProcessCode,
		ProcessName:      lot.ProcessName,
		ProcessLevel:     lot.ProcessLevel,
		ProductionDate:   lot.ProductionDate.Format("2006-01-02"),
		PlannedQuantity:  lot.PlannedQuantity,
		ActualQuantity:   lot.ActualQuantity,
		CurrentQuantity:  lot.CurrentQuantity,
		QualityGrade:     lot.QualityGrade,
		GradeName:        lot.GradeName,
		LotStatus:        lot.LotStatus,
		EquipmentID:      lot.EquipmentID,
		OperatorID:       lot.OperatorID,
		Location:         lot.Location,
		MeasuredLength:   lot.MeasuredLength,
		MeasuredWeight:   lot.MeasuredWeight,
		MeasurementNotes: lot.MeasurementNotes,
		CreatedAt:        lot.CreatedAt,
	}
}

// NewLotList mapea un listado de lotes.
func NewLotList(lotList []*entity.LotDetail) []*LotResponse {
	out := make([]*LotResponse, 0, len(lotList))
	for _, lot := range lotList {
		out = append(out, NewLotResponse(lot))
	}
	return out
}

// TransactionResponse fila del libro de inventario de un lote.
type TransactionResponse struct {
	ID              string          `json:"id"`
	LotID           string          `json:"lot_id"`
	TransactionType string          `json:"transaction_type"`
	QuantityBefore  decimal.Decimal `json:"quantity_before"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	Location        *string         `json:"location,omitempty"`
	OperatorID      *string         `json:"operator_id,omitempty"`
	EquipmentID     *string         `json:"equipment_id,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	Notes           string          `json:"notes,omitempty"`
}

// NewTransactionList mapea el historial de transacciones.
func NewTransactionList(txns []*entity.InventoryTransaction) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, &TransactionResponse{
			ID:              t.ID,
			LotID:           t.LotID,
			TransactionType: t.TransactionType,
			QuantityBefore:  t.QuantityBefore,
			QuantityChange:  t.QuantityChange,
			QuantityAfter:   t.QuantityAfter,
			Location:        t.Location,
			OperatorID:      t.OperatorID,
			EquipmentID:     t.EquipmentID,
			TransactionDate: t.TransactionDate,
			Notes:           t.Notes,
		})
	}
	return out
}

// ProcessStepResponse paso de proceso de referencia.
type ProcessStepResponse struct {
	ProcessCode  string `json:"process_code"`
	ProcessName  string `json:"process_name"`
	ProcessLevel int    `json:"process_level"`
	AccuracyType string `json:"accuracy_type,omitempty"`
}

// NewProcessStepList mapea los pasos de proceso.
func NewProcessStepList(steps []*entity.ProcessStep) []*ProcessStepResponse {
	out := make([]*ProcessStepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, &ProcessStepResponse{
			ProcessCode:  s.ProcessCode,
			ProcessName:  s.ProcessName,
			ProcessLevel: s.ProcessLevel,
			AccuracyType: s.AccuracyType,
		})
	}
	return out
}

// QualityGradeResponse grado de calidad de referencia.
type QualityGradeResponse struct {
	GradeCode      string `json:"grade_code"`
	GradeName      string `json:"grade_name"`
	ProcessingRule string `json:"processing_rule,omitempty"`
}

// NewQualityGradeList mapea los grados de calidad.
func NewQualityGradeList(grades []*entity.QualityGrade) []*QualityGradeResponse {
	out := make([]*QualityGradeResponse, 0, len(grades))
	for _, g := range grades {
		out = append(out, &QualityGradeResponse{
			GradeCode:      g.GradeCode,
			GradeName:      g.GradeName,
			ProcessingRule: g.ProcessingRule,
		})
	}
	return out
}
