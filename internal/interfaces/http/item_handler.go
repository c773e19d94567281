package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/application/usecase"
)

// maxImageSize tamaño máximo aceptado para imágenes de artículo.
const maxImageSize = 5 << 20

// ItemHandler maneja el registro de artículos.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Produce      json
// @Success      200  {array}   dto.ItemResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear artículo
// @Description  UNIT exige unitToCl, VOLUME_CONTAINER exige containerSizeCl. El SKU se normaliza a mayúsculas.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo (parcial)
// @Description  No se puede desactivar un artículo con stock distinto de cero.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        sku   path      string                 true  "SKU"
// @Param        body  body      dto.UpdateItemRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /items/{sku} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("sku"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadImage godoc
// @Summary      Subir imagen del artículo
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Param        sku   path      string  true  "SKU"
// @Param        file  formData  file    true  "imagen"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /items/{sku}/image [post]
func (h *ItemHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file", "falta el archivo (campo file)")
	}
	if fh.Size > maxImageSize {
		return badRequest(c, "file", "la imagen supera 5 MB")
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.UploadImage(c.UserContext(), c.Params("sku"), fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
