package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ParseError flattens binding errors into a field-to-message map. Field keys
// are lowercased so they line up with the snake_case JSON payload.
func ParseError(err error) map[string]string {
	out := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			out[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
	} else if err != nil { // Non-validator errors (malformed JSON etc.)
		out["error"] = err.Error()
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "gte":
		return "Must be at least " + fe.Param()
	case "max", "lte":
		return "Must be at most " + fe.Param()
	}
	return fmt.Sprintf("Failed validation on the '%s' rule", fe.Tag())
}
