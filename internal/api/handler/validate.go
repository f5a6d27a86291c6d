package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/snakyhub/internal/model"
)

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("gameid", func(fl validator.FieldLevel) bool {
		return model.GameID(fl.Field().String()).Valid()
	})
	return v
}

// ValidateStruct returns one message per invalid field, or nil
func ValidateStruct(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"body": "The request body is invalid."}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		name := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[name] = fmt.Sprintf("The %s field is required.", name)
		case "email":
			fields[name] = fmt.Sprintf("The %s must be a valid email address.", name)
		case "min":
			if fe.Kind() == reflect.String {
				fields[name] = fmt.Sprintf("The %s must be at least %s characters.", name, fe.Param())
			} else {
				fields[name] = fmt.Sprintf("The %s must be at least %s.", name, fe.Param())
			}
		case "max":
			if fe.Kind() == reflect.String {
				fields[name] = fmt.Sprintf("The %s may not be longer than %s characters.", name, fe.Param())
			} else {
				fields[name] = fmt.Sprintf("The %s may not be greater than %s.", name, fe.Param())
			}
		case "gameid":
			fields[name] = fmt.Sprintf("The %s may only contain letters, digits, underscores and hyphens.", name)
		case "oneof":
			fields[name] = fmt.Sprintf("The %s must be one of: %s.", name, strings.ReplaceAll(fe.Param(), " ", ", "))
		default:
			fields[name] = fmt.Sprintf("The %s field is invalid.", name)
		}
	}
	return fields
}
