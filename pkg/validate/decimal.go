package validate

import (
	"reflect"

	"github.com/shopspring/decimal"
)

func init() {
	// decimal.Decimal se valida como float64 para poder usar gte/lte/gt en los DTO.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}
