package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jvargas/trazalote/internal/application/dto"
	"github.com/jvargas/trazalote/internal/application/lots"
)

// LotHandler maneja las peticiones HTTP del libro de lotes.
type LotHandler struct {
	uc *lots.UseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *lots.UseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// parseDate fecha YYYY-MM-DD; vacía = cero (el caso de uso asume hoy).
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Create godoc
// @Summary      Crear lote de producción
// @Description  Crea el lote con su transacción RECEIPT en una sola unidad
// @Description  atómica y devuelve el lot_id generado (YYMM + proceso + secuencia).
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Datos del lote"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	productionDate, ok := parseDate(in.ProductionDate)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "production_date debe ser YYYY-MM-DD"})
	}

	lotID, err := h.uc.Create(c.Context(), lots.CreateLotInput{
		ItemID:           in.ItemID,
		ProcessCode:      in.ProcessCode,
		PlannedQuantity:  in.PlannedQuantity,
		ProductionDate:   productionDate,
		ActualQuantity:   in.ActualQuantity,
		QualityGrade:     in.QualityGrade,
		EquipmentID:      in.EquipmentID,
		OperatorID:       in.OperatorID,
		Location:         in.Location,
		MeasuredLength:   in.MeasuredLength,
		MeasuredWeight:   in.MeasuredWeight,
		MeasurementNotes: in.MeasurementNotes,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	lot, err := h.uc.Get(lotID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLotResponse(lot))
}

// NextID godoc
// @Summary      Vista previa del próximo lot_id
// @Description  Calcula el próximo lot_id para un proceso y fecha sin reservarlo.
// @Tags         lots
// @Produce      json
// @Param        process_code     query  string  true   "Código de proceso (una letra)"
// @Param        production_date  query  string  false  "Fecha YYYY-MM-DD (vacía = hoy)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/lots/next-id [get]
func (h *LotHandler) NextID(c *fiber.Ctx) error {
	productionDate, ok := parseDate(c.Query("production_date"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "production_date debe ser YYYY-MM-DD"})
	}
	if productionDate.IsZero() {
		productionDate = time.Now()
	}
	lotID, err := h.uc.GenerateLotID(c.Query("process_code"), productionDate)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"lot_id": lotID})
}

// List godoc
// @Summary      Listar lotes más recientes
// @Tags         lots
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(100)
// @Success      200  {array}  dto.LotResponse
// @Router       /api/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	lotList, err := h.uc.ListAll(c.QueryInt("limit", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewLotList(lotList))
}

// GetByID godoc
// @Summary      Detalle de un lote
// @Tags         lots
// @Produce      json
// @Param        id  path  string  true  "lot_id"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewLotResponse(lot))
}

// ListByItem godoc
// @Summary      Lotes de un artículo
// @Tags         lots
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        status  query  string  false  "active | consumed | cancelled (vacío = todos)"
// @Success      200  {array}   dto.LotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/lots [get]
func (h *LotHandler) ListByItem(c *fiber.Ctx) error {
	lotList, err := h.uc.ListByItem(c.Params("id"), c.Query("status"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewLotList(lotList))
}

// Transactions godoc
// @Summary      Historial del libro de inventario de un lote
// @Tags         lots
// @Produce      json
// @Param        id  path  string  true  "lot_id"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/transactions [get]
func (h *LotHandler) Transactions(c *fiber.Ctx) error {
	txns, err := h.uc.Transactions(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewTransactionList(txns))
}

// Adjust godoc
// @Summary      Ajuste administrativo de saldo
// @Description  Aplica un delta con signo al saldo del lote, registrando la
// @Description  transacción ADJUSTMENT. Un ajuste que dejaría saldo negativo se rechaza.
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "lot_id"
// @Param        body  body  dto.AdjustLotRequest  true  "delta, notes, operator_id"
// @Success      200   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/adjust [post]
func (h *LotHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lotID := c.Params("id")
	if err := h.uc.Adjust(c.Context(), lots.AdjustInput{
		LotID:      lotID,
		Delta:      in.Delta,
		Notes:      in.Notes,
		OperatorID: in.OperatorID,
	}); err != nil {
		return errorResponse(c, err)
	}
	lot, err := h.uc.Get(lotID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewLotResponse(lot))
}

// Cancel godoc
// @Summary      Cancelar un lote activo
// @Tags         lots
// @Produce      json
// @Param        id  path  string  true  "lot_id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/cancel [post]
func (h *LotHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote cancelado"})
}

// Processes godoc
// @Summary      Pasos de proceso de referencia
// @Tags         reference
// @Produce      json
// @Success      200  {array}  dto.ProcessStepResponse
// @Router       /api/processes [get]
func (h *LotHandler) Processes(c *fiber.Ctx) error {
	steps, err := h.uc.Processes()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewProcessStepList(steps))
}

// Grades godoc
// @Summary      Grados de calidad de referencia
// @Tags         reference
// @Produce      json
// @Success      200  {array}  dto.QualityGradeResponse
// @Router       /api/grades [get]
func (h *LotHandler) Grades(c *fiber.Ctx) error {
	grades, err := h.uc.Grades()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewQualityGradeList(grades))
}
