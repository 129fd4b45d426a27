package policies

import (
	"fmt"
	"strings"
)

// scalarTypes maps schema scalar type names to ROS primitive types. ROS
// native names pass through unchanged.
var scalarTypes = map[string]string{
	"bool":     "bool",
	"char":     "char",
	"string":   "string",
	"double":   "float64",
	"float":    "float32",
	"float32":  "float32",
	"float64":  "float64",
	"int8":     "int8",
	"uint8":    "uint8",
	"int16":    "int16",
	"uint16":   "uint16",
	"int32":    "int32",
	"uint32":   "uint32",
	"int64":    "int64",
	"uint64":   "uint64",
	"sint32":   "int32",
	"sint64":   "int64",
	"fixed32":  "uint32",
	"fixed64":  "uint64",
	"sfixed32": "int32",
	"sfixed64": "int64",
}

// rosPrimitives are the built-in ROS field types left untouched by renaming
// passes.
var rosPrimitives = map[string]struct{}{
	"bool": {}, "byte": {}, "char": {}, "string": {}, "wstring": {},
	"float32": {}, "float64": {},
	"int8": {}, "uint8": {}, "int16": {}, "uint16": {},
	"int32": {}, "uint32": {}, "int64": {}, "uint64": {},
}

var byteSizeBits = map[string]int{
	"PBS_ONE":   8,
	"PBS_TWO":   16,
	"PBS_FOUR":  32,
	"PBS_EIGHT": 64,
}

// ScalarType returns the ROS type for a schema scalar. Qualified names are
// matched on their last segment.
func ScalarType(schemaType string) (string, bool) {
	base := schemaType
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		base = base[idx+1:]
	}
	ros, ok := scalarTypes[base]
	return ros, ok
}

func IsROSPrimitive(name string) bool {
	_, ok := rosPrimitives[name]
	return ok
}

// ResizeInteger applies a primitive_byte_size annotation to an integer ROS
// type, keeping its signedness. Non-integer types and unknown annotations
// return false.
func ResizeInteger(rosType string, byteSize string) (string, bool) {
	bits, ok := byteSizeBits[byteSize]
	if !ok {
		return "", false
	}
	switch {
	case strings.HasPrefix(rosType, "uint"):
		return fmt.Sprintf("uint%d", bits), true
	case strings.HasPrefix(rosType, "int"):
		return fmt.Sprintf("int%d", bits), true
	default:
		return "", false
	}
}

// EnumIntegerType picks the smallest integer type able to hold every enum
// value: unsigned when all values are non-negative, otherwise the signed
// width is chosen by checking the 16-bit range before the 8-bit one.
func EnumIntegerType(values []int64) string {
	if len(values) == 0 {
		return "uint8"
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if minVal >= 0 {
		switch {
		case maxVal <= 255:
			return "uint8"
		case maxVal <= 65535:
			return "uint16"
		default:
			return "uint32"
		}
	}
	switch {
	case minVal < -32768 || maxVal > 32767:
		return "int32"
	case minVal < -128 || maxVal > 127:
		return "int16"
	default:
		return "int8"
	}
}
