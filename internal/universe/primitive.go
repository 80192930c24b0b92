package universe

import "element-autodoc/internal/common"

// PrimitiveKind enumerates the primitive-like kinds of the universe.
type PrimitiveKind int

const (
	_ PrimitiveKind = iota // skip zero value, use it as a default (invalid) value

	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt // platform-sized integer
	KindFloat32
	KindFloat64
	KindComplex
	KindChar
	KindString

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var primitiveNames = [...]string{
	KindBool:    "boolean",
	KindInt8:    "byte",
	KindInt16:   "short",
	KindInt32:   "int",
	KindInt64:   "long",
	KindInt:     "int",
	KindFloat32: "float",
	KindFloat64: "double",
	KindComplex: "complex",
	KindChar:    "char",
	KindString:  "string",
}

// String returns the conventional name of the kind.
func (k PrimitiveKind) String() string {
	if k <= 0 || int(k) >= len(primitiveNames) {
		return common.UnknownStr
	}

	return primitiveNames[k]
}

// ParsePrimitiveKind maps a primitive keyword to its kind.
// Both the Java-style keywords and the Go basic type names are accepted.
func ParsePrimitiveKind(s string) (PrimitiveKind, bool) {
	switch s {
	case "boolean", "bool":
		return KindBool, true
	case "byte", "int8", "uint8":
		return KindInt8, true
	case "short", "int16", "uint16":
		return KindInt16, true
	case "int32", "uint32":
		return KindInt32, true
	case "long", "int64", "uint64":
		return KindInt64, true
	case "int", "uint", "uintptr":
		return KindInt, true
	case "float", "float32":
		return KindFloat32, true
	case "double", "float64":
		return KindFloat64, true
	case "complex64", "complex128":
		return KindComplex, true
	case "char", "rune":
		return KindChar, true
	case "string":
		return KindString, true
	default:
		return 0, false
	}
}

// IsInteger reports whether the kind is an integral width.
func (k PrimitiveKind) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt8, KindInt16, KindInt32, KindInt64, KindInt:
		return true
	}
}

// IsFloat reports whether the kind is a floating-point width.
func (k PrimitiveKind) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

// IsText reports whether the kind is character or string data.
func (k PrimitiveKind) IsText() bool {
	return k == KindChar || k == KindString
}
