package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be at most {param}",
	"min":         "{field} must be at least {param}",
	"email":       "{field} must be a valid email address",
	"url":         "{field} must be a valid URL",
	"datetime":    "{field} must match the format {param}",
	"gtfield":     "{field} must be greater than {param}",
	"nefield":     "{field} must differ from {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message renders the first failed rule. Nested fields keep their path, e.g. details[0].hour.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		field := valErr.Namespace()
		if _, rest, found := strings.Cut(field, "."); found {
			field = rest
		}

		return strings.NewReplacer("{field}", field, "{param}", valErr.Param()).Replace(template)
	}

	return valErrors.Error()
}
