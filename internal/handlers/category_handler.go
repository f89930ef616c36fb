package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service      *services.CategoryService
	defaultLimit int
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, defaultLimit int) *CategoryHandler {
	return &CategoryHandler{
		service:      service,
		defaultLimit: defaultLimit,
	}
}

// RegisterRoutes registers the category routes. Reads are public; every
// mutation goes through auth first.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", auth, h.HandleCreateCategory)
	categoryRoutes.Put("/:id", auth, h.HandleReplaceCategory)
	categoryRoutes.Patch("/:id", auth, h.HandlePatchCategory)
	categoryRoutes.Delete("/:id", auth, h.HandleDeleteCategory)
}

// HandleGetCategories lists categories ordered by name.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	page, err := queryPage(c, h.defaultLimit)
	if err != nil {
		return writeError(c, err)
	}
	categories, err := h.service.ListCategories(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	category, err := h.service.GetCategoryByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var in models.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	category, err := h.service.CreateCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleReplaceCategory replaces the name of a category.
func (h *CategoryHandler) HandleReplaceCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in models.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	category, err := h.service.ReplaceCategory(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(category)
}

// HandlePatchCategory applies a partial category update.
func (h *CategoryHandler) HandlePatchCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in models.CategoryPatch
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	category, err := h.service.PatchCategory(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category without products.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
