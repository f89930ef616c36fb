package validation

import (
	"errors"
	"reflect"
	"strings"

	"catalog/internal/models"

	v10 "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// Messages reported for the failures the catalog cares about.
const (
	MsgEmptyName        = "empty name"
	MsgLengthOutOfRange = "length out of bounds"
	MsgNoFields         = "no fields provided"
	MsgPositive         = "must be greater than 0"
	MsgInvalidURL       = "must be a well-formed http(s) URL"
	MsgPositiveInteger  = "must be a positive integer"
)

// FieldError describes one rejected field. Field is the JSON name; it is
// empty when the failure concerns the payload as a whole.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate *v10.Validate

func init() {
	validate = v10.New()
	validate.RegisterTagNameFunc(jsonName)
	validate.RegisterCustomTypeFunc(decimalValue, models.Price{}, decimal.Decimal{})
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// Struct validates v against its `validate` tags and returns the failures,
// or nil when v is valid.
func Struct(v interface{}) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve v10.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// Field reports a single failure that no struct tag can express.
func Field(field, msg string) []FieldError {
	return []FieldError{{Field: field, Message: msg}}
}

func message(fe v10.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return MsgEmptyName
	case "min", "max":
		if fe.Kind() == reflect.String {
			return MsgLengthOutOfRange
		}
		return "must be between bounds (" + fe.Tag() + "=" + fe.Param() + ")"
	case "gt":
		if fe.Param() == "0" {
			if isInteger(fe.Kind()) {
				return MsgPositiveInteger
			}
			return MsgPositive
		}
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "http_url":
		return MsgInvalidURL
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(sf.Name)
	}
	return name
}

// decimalValue lets numeric rules such as gt and lt apply to fixed-point values.
func decimalValue(v reflect.Value) interface{} {
	switch d := v.Interface().(type) {
	case models.Price:
		return d.InexactFloat64()
	case decimal.Decimal:
		return d.InexactFloat64()
	}
	return nil
}
