package handlers

import (
	"errors"
	"strconv"

	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// writeError maps service errors to HTTP responses. Anything outside the
// service taxonomy is a store or programming fault and is reported as 500
// without details.
func writeError(c *fiber.Ctx, err error) error {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		conflictErr   *services.ConflictError
		invariantErr  *services.InvariantViolationError
	)
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Errors,
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFoundErr.Error(),
		})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": conflictErr.Error(),
		})
	case errors.As(err, &invariantErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": invariantErr.Error(),
		})
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

func invalidRequest(field, msg string) error {
	return &services.ValidationError{Errors: validation.Field(field, msg)}
}

// parseBody decodes the JSON request body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		log.Debug().Err(err).Str("path", c.Path()).Msg("error parsing request body")
		return invalidRequest("body", "invalid request body: "+err.Error())
	}
	return nil
}

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidRequest(name, validation.MsgPositiveInteger)
	}
	return id, nil
}

// queryPage reads the skip and limit query parameters. Out of range values
// are left for the service to reject.
func queryPage(c *fiber.Ctx, defaultLimit int) (repositories.Page, error) {
	page := repositories.Page{Limit: defaultLimit}
	if raw := c.Query("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, invalidRequest("skip", "must be an integer")
		}
		page.Offset = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, invalidRequest("limit", "must be an integer")
		}
		page.Limit = n
	}
	return page, nil
}

func queryBool(c *fiber.Ctx, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, invalidRequest(name, "must be a boolean")
	}
	return b, nil
}
