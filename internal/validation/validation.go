package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Check validates a struct against its `validate` tags and returns the first
// violated constraint as a human-readable error.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Errorf("%s failed on '%s=%s'", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%s failed on '%s'", fe.Field(), fe.Tag())
	}

	return fmt.Errorf("invalid payload: %v", err)
}
