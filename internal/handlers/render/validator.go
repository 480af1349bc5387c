package render

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	configureValidator(v)
	return v
}

func configureValidator(validate *validator.Validate) {
	validate.RegisterTagNameFunc(useJSONTagNames)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	_ = validate.RegisterValidation("notblank", validateNotBlank)
	_ = validate.RegisterValidation("decimals", validateDecimals)
}

func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

// Money is validated as float64, so 'gt=0' and friends work on decimals
func decimalValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := v.Float64()
		return f
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		f, _ := v.Decimal.Float64()
		return f
	}
	return nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateDecimals checks a decimal has no more fractional digits than the tag param ('decimals=2').
// The field itself is already converted to float64, so the decimal is taken from the parent struct.
func validateDecimals(fl validator.FieldLevel) bool {
	places, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}

	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return true
	}

	field := parent.FieldByName(fl.StructFieldName())
	if !field.IsValid() {
		return true
	}

	var d decimal.Decimal
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		d = v
	case decimal.NullDecimal:
		if !v.Valid {
			return true
		}
		d = v.Decimal
	default:
		return true
	}

	return d.Equal(d.Truncate(int32(places)))
}
