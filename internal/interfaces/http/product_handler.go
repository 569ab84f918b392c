package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc   *usecase.ProductUseCase
	errs errorMapper
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, errs: errorMapper{log: log}}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit        query  int     false  "Tamaño de página (máx. 100)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Param        category_id  query  int     false  "Filtrar por categoría"
// @Param        featured     query  bool    false  "Solo destacados"
// @Param        q            query  string  false  "Texto contenido en el nombre"
// @Param        sort         query  string  false  "name, price, stock, created_at, updated_at"
// @Param        desc         query  bool    false  "Orden descendente"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	categoryID, ok := optionalInt64(c, "category_id")
	if !ok {
		return badRequest(c, "INVALID_QUERY", "category_id debe ser entero")
	}
	featured, ok := optionalBool(c, "featured")
	if !ok {
		return badRequest(c, "INVALID_QUERY", "featured debe ser booleano")
	}
	out, err := h.uc.List(c.UserContext(), dto.ProductListRequest{
		PageRequest: pageQuery(c),
		CategoryID:  categoryID,
		Featured:    featured,
		Query:       c.Query("q"),
		Sort:        c.Query("sort"),
		Desc:        c.QueryBool("desc", false),
	})
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Featured godoc
// @Summary      Productos destacados
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/featured [get]
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	out, err := h.uc.Featured(c.UserContext(), pageQuery(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Success      304
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.errs.write(c, err)
	}
	if notModified(c, entityTag("product", out.ID, out.RowVersion)) {
		return c.SendStatus(fiber.StatusNotModified)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Location("/api/products/" + itoa(out.ID))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar producto
// @Description  Enviar row_version leído para detectar escrituras concurrentes (409).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos del producto"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(fiber.HeaderETag, entityTag("product", out.ID, out.RowVersion))
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
