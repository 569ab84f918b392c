package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// HeaderRemovedProducts informa cuántos productos eliminó el borrado en cascada de una categoría.
const HeaderRemovedProducts = "X-Removed-Products"

// CategoryHandler maneja las peticiones HTTP para Category.
type CategoryHandler struct {
	uc   *usecase.CategoryUseCase
	errs errorMapper
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, errs: errorMapper{log: log}}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría con sus productos
// @Tags         categories
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.errs.write(c, err)
	}
	if notModified(c, entityTag("category", out.ID, out.RowVersion)) {
		return c.SendStatus(fiber.StatusNotModified)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Location("/api/categories/" + itoa(out.ID))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                        true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos de la categoría"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(fiber.HeaderETag, entityTag("category", out.ID, out.RowVersion))
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar categoría y sus productos
// @Tags         categories
// @Security     Bearer
// @Param        id   path  int  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	res, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(HeaderRemovedProducts, strconv.FormatInt(res.RemovedProducts, 10))
	return c.SendStatus(fiber.StatusNoContent)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
