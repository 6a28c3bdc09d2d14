package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jvargas/trazalote/internal/application/catalog"
	"github.com/jvargas/trazalote/internal/application/dto"
	"github.com/jvargas/trazalote/internal/domain/entity"
)

// ItemHandler maneja las peticiones HTTP del catálogo de artículos.
type ItemHandler struct {
	uc *catalog.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *catalog.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Register(catalog.RegisterItemInput{
		ItemID:        in.ItemID,
		ItemName:      in.ItemName,
		ItemType:      entity.ItemType(in.ItemType),
		UnitOfMeasure: in.UnitOfMeasure,
		Attributes:    in.Attributes,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

// List godoc
// @Summary      Listar artículos por etapa del pipeline
// @Tags         items
// @Produce      json
// @Param        item_type  query  string  false  "Filtrar por tipo"
// @Param        order      query  string  false  "downstream_first | upstream_first"  default(downstream_first)
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(
		entity.ItemType(c.Query("item_type")),
		entity.ItemOrder(c.Query("order")),
	)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewItemList(items))
}

// Search godoc
// @Summary      Buscar artículos por id o nombre
// @Tags         items
// @Produce      json
// @Param        q  query  string  true  "Subcadena a buscar"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items/search [get]
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	items, err := h.uc.Search(c.Query("q"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewItemList(items))
}

// Stats godoc
// @Summary      Conteo de artículos por etapa
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.ItemStatsResponse
// @Router       /api/items/stats [get]
func (h *ItemHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.uc.Stats()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewItemStats(counts))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}
