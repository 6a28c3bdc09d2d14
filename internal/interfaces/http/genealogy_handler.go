package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jvargas/trazalote/internal/application/dto"
	"github.com/jvargas/trazalote/internal/application/genealogy"
	"github.com/jvargas/trazalote/internal/domain/entity"
)

// GenealogyHandler maneja las peticiones HTTP del grafo de genealogía.
type GenealogyHandler struct {
	uc *genealogy.UseCase
}

// NewGenealogyHandler construye el handler.
func NewGenealogyHandler(uc *genealogy.UseCase) *GenealogyHandler {
	return &GenealogyHandler{uc: uc}
}

// Consume godoc
// @Summary      Registrar consumo de un lote
// @Description  El lote de la URL (hijo) se incorpora al lote padre del cuerpo.
// @Description  Arista de genealogía, transacción CONSUMPTION y descuento de
// @Description  saldo se escriben en una sola transacción de BD.
// @Tags         genealogy
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "lot_id del lote consumido (hijo)"
// @Param        body  body  dto.ConsumeRequest  true  "parent_lot_id, consumed_quantity, usage_type"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/consume [post]
func (h *GenealogyHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	consumptionDate, ok := parseDate(in.ConsumptionDate)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "consumption_date debe ser YYYY-MM-DD"})
	}

	err := h.uc.Consume(c.Context(), genealogy.ConsumeInput{
		ParentLotID:      in.ParentLotID,
		ChildLotID:       c.Params("id"),
		ConsumedQuantity: in.ConsumedQuantity,
		UsageType:        in.UsageType,
		ConsumptionDate:  consumptionDate,
		Notes:            in.Notes,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "consumo registrado"})
}

// Trace godoc
// @Summary      Árbol de trazabilidad de un lote
// @Description  forward: a dónde fue el material del lote. backward: qué se
// @Description  consumió para fabricarlo. depth limita los niveles (10 por defecto).
// @Tags         genealogy
// @Produce      json
// @Param        id         path   string  true   "lot_id"
// @Param        direction  query  string  false  "forward | backward"  default(forward)
// @Param        depth      query  int     false  "Profundidad máxima"  default(10)
// @Success      200  {object}  dto.GenealogyTreeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/genealogy [get]
func (h *GenealogyHandler) Trace(c *fiber.Ctx) error {
	direction := entity.TraceDirection(c.Query("direction", string(entity.TraceForward)))
	tree, err := h.uc.Traverse(c.Params("id"), direction, c.QueryInt("depth", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewGenealogyTree(tree))
}

// Candidates godoc
// @Summary      Lotes padre admisibles para consumir este lote
// @Description  Lotes activos con saldo en procesos de nivel estrictamente mayor.
// @Tags         genealogy
// @Produce      json
// @Param        id  path  string  true  "lot_id del lote a consumir"
// @Success      200  {array}   dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/candidates [get]
func (h *GenealogyHandler) Candidates(c *fiber.Ctx) error {
	candidates, err := h.uc.Candidates(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewLotList(candidates))
}

// Inputs godoc
// @Summary      Materiales consumidos por un lote
// @Tags         genealogy
// @Produce      json
// @Param        id  path  string  true  "lot_id"
// @Success      200  {array}   dto.GenealogyLinkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/inputs [get]
func (h *GenealogyHandler) Inputs(c *fiber.Ctx) error {
	links, err := h.uc.Inputs(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewGenealogyLinks(links))
}

// Outputs godoc
// @Summary      Destinos del material de un lote
// @Tags         genealogy
// @Produce      json
// @Param        id  path  string  true  "lot_id"
// @Success      200  {array}   dto.GenealogyLinkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/outputs [get]
func (h *GenealogyHandler) Outputs(c *fiber.Ctx) error {
	links, err := h.uc.Outputs(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewGenealogyLinks(links))
}
