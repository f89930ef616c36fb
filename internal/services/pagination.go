package services

import (
	"fmt"

	"catalog/internal/repositories"
	"catalog/internal/validation"
)

// DefaultMaxLimit bounds listing page sizes when no other bound is configured.
const DefaultMaxLimit = 200

func checkPage(page repositories.Page, maxLimit int) error {
	var errs []validation.FieldError
	if page.Offset < 0 {
		errs = append(errs, validation.FieldError{Field: "skip", Message: "must be greater than or equal to 0"})
	}
	if page.Limit < 1 || page.Limit > maxLimit {
		errs = append(errs, validation.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxLimit)})
	}
	if len(errs) > 0 {
		return invalid(errs)
	}
	return nil
}
