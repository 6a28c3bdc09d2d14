package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jvargas/trazalote/internal/application/bom"
	"github.com/jvargas/trazalote/internal/application/dto"
)

// BOMHandler maneja las peticiones HTTP del grafo BOM.
type BOMHandler struct {
	uc *bom.UseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *bom.UseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// AddComponent godoc
// @Summary      Agregar componente al BOM
// @Description  Inserta una arista padre→componente. Rechaza autorreferencias,
// @Description  duplicados y aristas que cerrarían un ciclo.
// @Tags         bom
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddComponentRequest  true  "Arista a insertar"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bom/components [post]
func (h *BOMHandler) AddComponent(c *fiber.Ctx) error {
	var in dto.AddComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.AddComponent(c.Context(), bom.AddComponentInput{
		ParentItemID:    in.ParentItemID,
		ComponentItemID: in.ComponentItemID,
		Quantity:        in.Quantity,
		UsageType:       in.UsageType,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "componente agregado"})
}

// DirectComponents godoc
// @Summary      Componentes directos de un artículo
// @Tags         bom
// @Produce      json
// @Param        id  path  string  true  "ID del artículo padre"
// @Success      200  {array}   dto.ComponentLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/components [get]
func (h *BOMHandler) DirectComponents(c *fiber.Ctx) error {
	lines, err := h.uc.DirectComponents(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewComponentLines(lines))
}

// Expand godoc
// @Summary      Expansión multinivel del BOM
// @Description  Árbol de componentes desde el artículo raíz. depth limita los
// @Description  niveles (10 por defecto); las referencias rotas descartan solo su rama.
// @Tags         bom
// @Produce      json
// @Param        id     path   string  true   "ID del artículo raíz"
// @Param        depth  query  int     false  "Profundidad máxima"  default(10)
// @Success      200  {object}  dto.BOMTreeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/bom [get]
func (h *BOMHandler) Expand(c *fiber.Ctx) error {
	tree, err := h.uc.Expand(c.Params("id"), c.QueryInt("depth", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewBOMTree(tree))
}
