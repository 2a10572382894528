package catalog

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// ToArrowType converts a logical type to the Arrow type the native writer uses.
// timeZone is attached to TIMESTAMP WITH LOCAL TIME ZONE columns.
func ToArrowType(t LogicalType, timeZone string) (arrow.DataType, error) {
	switch t.Kind {
	case KindBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case KindTinyInt:
		return arrow.PrimitiveTypes.Int8, nil
	case KindSmallInt:
		return arrow.PrimitiveTypes.Int16, nil
	case KindInt:
		return arrow.PrimitiveTypes.Int32, nil
	case KindBigInt:
		return arrow.PrimitiveTypes.Int64, nil
	case KindFloat:
		return arrow.PrimitiveTypes.Float32, nil
	case KindDouble:
		return arrow.PrimitiveTypes.Float64, nil
	case KindDecimal:
		return &arrow.Decimal128Type{Precision: int32(t.Precision), Scale: int32(t.Scale)}, nil
	case KindChar, KindVarChar:
		return arrow.BinaryTypes.String, nil
	case KindBinary, KindVarBinary:
		return arrow.BinaryTypes.Binary, nil
	case KindDate:
		return arrow.FixedWidthTypes.Date32, nil
	case KindTime:
		switch unit := timeUnit(t.Precision); unit {
		case arrow.Second, arrow.Millisecond:
			return &arrow.Time32Type{Unit: unit}, nil
		default:
			return &arrow.Time64Type{Unit: unit}, nil
		}
	case KindTimestamp:
		return &arrow.TimestampType{Unit: timeUnit(t.Precision)}, nil
	case KindTimestampLTZ:
		return &arrow.TimestampType{Unit: timeUnit(t.Precision), TimeZone: timeZone}, nil
	case KindRow:
		fields, err := toArrowFields(t.Fields, timeZone)
		if err != nil {
			return nil, err
		}
		return arrow.StructOf(fields...), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation, "unsupported logical type %s", t).
			WithDetail("type", t.String())
	}
}

func timeUnit(precision int) arrow.TimeUnit {
	switch {
	case precision == 0:
		return arrow.Second
	case precision <= 3:
		return arrow.Millisecond
	case precision <= 6:
		return arrow.Microsecond
	default:
		return arrow.Nanosecond
	}
}

func toArrowFields(fields []RowField, timeZone string) ([]arrow.Field, error) {
	out := make([]arrow.Field, 0, len(fields))
	for _, f := range fields {
		dt, err := ToArrowType(f.Type, timeZone)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "failed to convert field").
				WithDetail("field", f.Name)
		}
		out = append(out, arrow.Field{
			Name:     f.Name,
			Type:     dt,
			Nullable: f.Type.Nullable,
		})
	}
	return out, nil
}
