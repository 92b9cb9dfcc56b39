package lock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is returned when a payload fails client-side validation.
var ErrInvalidInput = errors.New("lock: invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// validateRewardRoutes checks every route and that the shares sum to at most 1.
func validateRewardRoutes(routes []RewardRouteInput) error {
	var total float64
	for i, r := range routes {
		if err := validateStruct(r); err != nil {
			return fmt.Errorf("reward route %d: %w", i, err)
		}
		if r.RewardPercent != nil {
			total += *r.RewardPercent
		}
	}
	if total > 1 {
		return fmt.Errorf("%w: reward percentages sum to %g, must not exceed 1", ErrInvalidInput, total)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must not exceed %s", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}
