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
	"time"

	"hotelbooking/config"
	"hotelbooking/shared/base64"
	"hotelbooking/shared/constant"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = value.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = base64.GetContentType(value)
	}

	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Split(field.Param(), " "), contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = int(value.Size)
	case string:
		fileSize = base64.DecodedSize(value)
	}

	if fileSize < 0 {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	const bytesConversion = 1024.0

	return fileSize <= int(maxSizeMB*bytesConversion*bytesConversion)
}

// registerDateValidation accepts YYYY-MM-DD strings.
func registerDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DateOnlyFormat, value)

	return err == nil
}

// registerRoleValidation accepts the roles a user may sign up with.
func registerRoleValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	parsed, err := role.Parse(value)

	return err == nil && parsed.Assignable()
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func init() {
	cfg := config.Get()

	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	validations := map[string]val.Func{
		"configured": func(fl val.FieldLevel) bool {
			method := fl.Field().MethodByName("Validate")
			if !method.IsValid() {
				return false
			}

			result := method.Call([]reflect.Value{reflect.ValueOf(cfg)})

			return result[0].Interface() == nil
		},
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"date":        registerDateValidation,
		"role":        registerRoleValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes JSON from r into data and validates the result.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
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
