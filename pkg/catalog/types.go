package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// Kind is the root of a logical type
type Kind string

const (
	KindBoolean      Kind = "BOOLEAN"
	KindTinyInt      Kind = "TINYINT"
	KindSmallInt     Kind = "SMALLINT"
	KindInt          Kind = "INT"
	KindBigInt       Kind = "BIGINT"
	KindFloat        Kind = "FLOAT"
	KindDouble       Kind = "DOUBLE"
	KindDecimal      Kind = "DECIMAL"
	KindChar         Kind = "CHAR"
	KindVarChar      Kind = "VARCHAR"
	KindBinary       Kind = "BINARY"
	KindVarBinary    Kind = "VARBINARY"
	KindDate         Kind = "DATE"
	KindTime         Kind = "TIME"
	KindTimestamp    Kind = "TIMESTAMP"
	KindTimestampLTZ Kind = "TIMESTAMP_LTZ"
	KindRow          Kind = "ROW"
)

// MaxLength is the length of STRING and BYTES
const MaxLength = 2147483647

const (
	defaultDecimalPrecision   = 10
	defaultTimestampPrecision = 6
)

// LogicalType describes the type of a column. Nullable is part of the type.
type LogicalType struct {
	Kind      Kind
	Nullable  bool
	Length    int // CHAR, VARCHAR, BINARY, VARBINARY
	Precision int // DECIMAL, TIME, TIMESTAMP, TIMESTAMP_LTZ
	Scale     int // DECIMAL
	Fields    []RowField
}

// RowField is a named field of a row
type RowField struct {
	Name        string      `json:"name"`
	Type        LogicalType `json:"type"`
	Description string      `json:"description,omitempty"`
}

// Constructors for the common types; all return nullable types.

func Boolean() LogicalType  { return LogicalType{Kind: KindBoolean, Nullable: true} }
func TinyInt() LogicalType  { return LogicalType{Kind: KindTinyInt, Nullable: true} }
func SmallInt() LogicalType { return LogicalType{Kind: KindSmallInt, Nullable: true} }
func Int() LogicalType      { return LogicalType{Kind: KindInt, Nullable: true} }
func BigInt() LogicalType   { return LogicalType{Kind: KindBigInt, Nullable: true} }
func Float() LogicalType    { return LogicalType{Kind: KindFloat, Nullable: true} }
func Double() LogicalType   { return LogicalType{Kind: KindDouble, Nullable: true} }
func Date() LogicalType     { return LogicalType{Kind: KindDate, Nullable: true} }
func String() LogicalType   { return VarChar(MaxLength) }
func Bytes() LogicalType    { return VarBinary(MaxLength) }

func VarChar(length int) LogicalType {
	return LogicalType{Kind: KindVarChar, Nullable: true, Length: length}
}

func Char(length int) LogicalType {
	return LogicalType{Kind: KindChar, Nullable: true, Length: length}
}

func VarBinary(length int) LogicalType {
	return LogicalType{Kind: KindVarBinary, Nullable: true, Length: length}
}

func Decimal(precision, scale int) LogicalType {
	return LogicalType{Kind: KindDecimal, Nullable: true, Precision: precision, Scale: scale}
}

func Time(precision int) LogicalType {
	return LogicalType{Kind: KindTime, Nullable: true, Precision: precision}
}

func Timestamp(precision int) LogicalType {
	return LogicalType{Kind: KindTimestamp, Nullable: true, Precision: precision}
}

func TimestampLTZ(precision int) LogicalType {
	return LogicalType{Kind: KindTimestampLTZ, Nullable: true, Precision: precision}
}

func Row(fields ...RowField) LogicalType {
	return LogicalType{Kind: KindRow, Nullable: true, Fields: fields}
}

// NotNull returns a copy of t that does not accept nulls
func (t LogicalType) NotNull() LogicalType {
	t.Nullable = false
	return t
}

// Clone returns a copy of t that shares no nested fields with it
func (t LogicalType) Clone() LogicalType {
	t.Fields = cloneFields(t.Fields)
	return t
}

// AsNullable returns a copy of t that accepts nulls
func (t LogicalType) AsNullable() LogicalType {
	t.Nullable = true
	return t
}

// Equal compares two types structurally
func (t LogicalType) Equal(o LogicalType) bool {
	if t.Kind != o.Kind || t.Nullable != o.Nullable || t.Length != o.Length ||
		t.Precision != o.Precision || t.Scale != o.Scale || len(t.Fields) != len(o.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i].Name != o.Fields[i].Name || !t.Fields[i].Type.Equal(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// String renders the type in SQL form, e.g. DECIMAL(10, 2) NOT NULL
func (t LogicalType) String() string {
	var s string
	switch t.Kind {
	case KindVarChar:
		if t.Length == MaxLength {
			s = "STRING"
		} else {
			s = fmt.Sprintf("VARCHAR(%d)", t.Length)
		}
	case KindVarBinary:
		if t.Length == MaxLength {
			s = "BYTES"
		} else {
			s = fmt.Sprintf("VARBINARY(%d)", t.Length)
		}
	case KindChar, KindBinary:
		s = fmt.Sprintf("%s(%d)", t.Kind, t.Length)
	case KindDecimal:
		s = fmt.Sprintf("DECIMAL(%d, %d)", t.Precision, t.Scale)
	case KindTime, KindTimestamp:
		s = fmt.Sprintf("%s(%d)", t.Kind, t.Precision)
	case KindTimestampLTZ:
		s = fmt.Sprintf("TIMESTAMP(%d) WITH LOCAL TIME ZONE", t.Precision)
	case KindRow:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = "`" + f.Name + "` " + f.Type.String()
		}
		s = "ROW<" + strings.Join(parts, ", ") + ">"
	default:
		s = string(t.Kind)
	}
	if !t.Nullable {
		s += " NOT NULL"
	}
	return s
}

// MarshalJSON renders the type as its SQL string
func (t LogicalType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// MarshalYAML renders the type as its SQL string
func (t LogicalType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML parses a SQL type string such as "BIGINT NOT NULL"
func (t *LogicalType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseLogicalType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseLogicalType parses the SQL name of an atomic type. ROW types are built
// programmatically and are not accepted here.
func ParseLogicalType(s string) (LogicalType, error) {
	text := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	if text == "" {
		return LogicalType{}, errors.New(errors.ErrorTypeValidation, "empty type")
	}

	nullable := true
	switch {
	case strings.HasSuffix(text, " NOT NULL"):
		nullable = false
		text = strings.TrimSuffix(text, " NOT NULL")
	case strings.HasSuffix(text, " NULL"):
		text = strings.TrimSuffix(text, " NULL")
	}

	ltz := false
	if strings.HasSuffix(text, " WITH LOCAL TIME ZONE") {
		ltz = true
		text = strings.TrimSuffix(text, " WITH LOCAL TIME ZONE")
	}

	name, params, err := splitParams(text)
	if err != nil {
		return LogicalType{}, errors.Wrap(err, errors.ErrorTypeValidation, "invalid type").WithDetail("type", s)
	}

	t, err := buildType(name, params, ltz)
	if err != nil {
		return LogicalType{}, errors.Wrap(err, errors.ErrorTypeValidation, "invalid type").WithDetail("type", s)
	}
	t.Nullable = nullable
	return t, nil
}

func splitParams(text string) (string, []int, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return strings.TrimSpace(text), nil, nil
	}
	if !strings.HasSuffix(text, ")") {
		return "", nil, errors.Newf(errors.ErrorTypeValidation, "unbalanced parameters in %q", text)
	}
	name := strings.TrimSpace(text[:open])
	var params []int
	for _, p := range strings.Split(text[open+1:len(text)-1], ",") {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", nil, errors.Newf(errors.ErrorTypeValidation, "parameter %q is not an integer", p)
		}
		if n < 0 {
			return "", nil, errors.Newf(errors.ErrorTypeValidation, "parameter %d is negative", n)
		}
		params = append(params, n)
	}
	return name, params, nil
}

func param(params []int, i, def int) int {
	if i < len(params) {
		return params[i]
	}
	return def
}

func buildType(name string, params []int, ltz bool) (LogicalType, error) {
	maxParams := 0
	var t LogicalType
	switch name {
	case "BOOLEAN":
		t = Boolean()
	case "TINYINT":
		t = TinyInt()
	case "SMALLINT":
		t = SmallInt()
	case "INT", "INTEGER":
		t = Int()
	case "BIGINT":
		t = BigInt()
	case "FLOAT":
		t = Float()
	case "DOUBLE", "DOUBLE PRECISION":
		t = Double()
	case "DECIMAL", "DEC", "NUMERIC":
		maxParams = 2
		t = Decimal(param(params, 0, defaultDecimalPrecision), param(params, 1, 0))
		if t.Precision < 1 || t.Precision > 38 || t.Scale > t.Precision {
			return LogicalType{}, errors.Newf(errors.ErrorTypeValidation, "decimal precision %d and scale %d out of range", t.Precision, t.Scale)
		}
	case "CHAR":
		maxParams = 1
		t = Char(param(params, 0, 1))
	case "VARCHAR":
		maxParams = 1
		t = VarChar(param(params, 0, 1))
	case "STRING":
		t = String()
	case "BINARY":
		maxParams = 1
		t = LogicalType{Kind: KindBinary, Nullable: true, Length: param(params, 0, 1)}
	case "VARBINARY":
		maxParams = 1
		t = VarBinary(param(params, 0, 1))
	case "BYTES":
		t = Bytes()
	case "DATE":
		t = Date()
	case "TIME":
		maxParams = 1
		t = Time(param(params, 0, 0))
	case "TIMESTAMP":
		maxParams = 1
		t = Timestamp(param(params, 0, defaultTimestampPrecision))
		if ltz {
			t.Kind = KindTimestampLTZ
		}
	case "TIMESTAMP_LTZ":
		maxParams = 1
		t = TimestampLTZ(param(params, 0, defaultTimestampPrecision))
	default:
		return LogicalType{}, errors.Newf(errors.ErrorTypeValidation, "unsupported type %q", name)
	}

	if ltz && t.Kind != KindTimestampLTZ {
		return LogicalType{}, errors.New(errors.ErrorTypeValidation, "WITH LOCAL TIME ZONE only applies to TIMESTAMP")
	}
	if len(params) > maxParams {
		return LogicalType{}, errors.Newf(errors.ErrorTypeValidation, "%s takes at most %d parameters", name, maxParams)
	}
	if (t.Kind == KindTime || t.Kind == KindTimestamp || t.Kind == KindTimestampLTZ) && t.Precision > 9 {
		return LogicalType{}, errors.Newf(errors.ErrorTypeValidation, "%s precision %d out of range", name, t.Precision)
	}
	return t, nil
}
