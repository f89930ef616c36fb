package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service      *services.ProductService
	defaultLimit int
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, defaultLimit int) *ProductHandler {
	return &ProductHandler{
		service:      service,
		defaultLimit: defaultLimit,
	}
}

// RegisterRoutes registers the product routes. Reads are public; every
// mutation goes through auth first.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", auth, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, h.HandleReplaceProduct)
	productRoutes.Patch("/:id", auth, h.HandlePatchProduct)
	productRoutes.Patch("/:id/stock", auth, h.HandleIncreaseStock)
	productRoutes.Patch("/:id/deactivate", auth, h.HandleDeactivateProduct)
	productRoutes.Post("/:id/activate", auth, h.HandleActivateProduct)
	productRoutes.Delete("/:id", auth, h.HandleDeleteProduct)
}

// HandleGetProducts lists products, active ones only unless include_inactive is set.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page, err := queryPage(c, h.defaultLimit)
	if err != nil {
		return writeError(c, err)
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return writeError(c, err)
	}
	products, err := h.service.ListProducts(c.UserContext(), page, includeInactive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product. Any stock in the body is ignored.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleReplaceProduct replaces every editable field of a product.
func (h *ProductHandler) HandleReplaceProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in models.ProductInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	product, err := h.service.ReplaceProduct(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandlePatchProduct applies a partial product update.
func (h *ProductHandler) HandlePatchProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in models.ProductPatch
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	product, err := h.service.PatchProduct(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleIncreaseStock adds to the stock of an active product.
func (h *ProductHandler) HandleIncreaseStock(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in models.StockAdjustment
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	product, err := h.service.IncreaseStock(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleDeactivateProduct marks a product inactive.
func (h *ProductHandler) HandleDeactivateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.DeactivateProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleActivateProduct marks a product active again.
func (h *ProductHandler) HandleActivateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.ActivateProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct physically deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
