package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"dipsport/shared/constant"
	"dipsport/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const (
	bytesPerMB    = 1024 * 1024
	dataURLPrefix = "data:"
	dataURLMarker = ";base64,"
)

var validate *val.Validate

// contentTypeOf reads the declared type of an uploaded file or of a base64 data URL.
func contentTypeOf(field reflect.Value) string {
	switch value := field.Interface().(type) {
	case multipart.FileHeader:
		return value.Header.Get(constant.RequestHeaderContentType)
	case string:
		end := strings.Index(value, dataURLMarker)
		if !strings.HasPrefix(value, dataURLPrefix) || end == -1 {
			return constant.Empty
		}

		return value[len(dataURLPrefix):end]
	}

	return constant.Empty
}

func validateMimetypes(field val.FieldLevel) bool {
	contentType := contentTypeOf(field.Field())
	if contentType == constant.Empty {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

func validateMaxFileSize(field val.FieldLevel) bool {
	var size int64

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		size = value.Size
	case string:
		size = int64(len(value))
	}

	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(size) <= maxMB*bytesPerMB
}

// jsonName reports fields by their JSON key so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return constant.Empty
	case constant.Empty:
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	if err := validate.RegisterValidation("mimetypes", validateMimetypes); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("maxfilesize", validateMaxFileSize); err != nil {
		panic(err)
	}
}

// Validate decodes a JSON body into data and validates it.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
