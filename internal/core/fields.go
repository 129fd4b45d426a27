package core

import (
	"regexp"
	"strconv"
	"strings"
)

// Field is one field declaration of a message block.
type Field struct {
	Repeated bool
	Type     string
	Name     string
	Options  string
}

// EnumConstant is one entry of an enum block.
type EnumConstant struct {
	Name  string
	Value int64
}

var (
	fieldStatement = regexp.MustCompile(`(?s)^(?:(repeated|optional|required)\s+)?([\w.]+)\s+(\w+)\s*=\s*\d+\s*(?:\[(.*)\])?$`)
	enumStatement  = regexp.MustCompile(`^([A-Za-z_]\w*)\s*=\s*(-?(?:0[xX][0-9A-Fa-f]+|\d+))`)

	repeatedCountOption = regexp.MustCompile(`\(.*repeated_field_max_count\)\s*=\s*(\d+)`)
	maxSizeOption       = regexp.MustCompile(`\(.*variable_type_max_size\)\s*=\s*(\d+)`)
	byteSizeOption      = regexp.MustCompile(`\(.*primitive_byte_size\)\s*=\s*(PBS_\w+)`)
)

var nonFieldKeywords = map[string]struct{}{
	"option":     {},
	"reserved":   {},
	"extensions": {},
	"import":     {},
	"package":    {},
	"syntax":     {},
}

// blockBody returns the text between the first '{' and its matching '}'.
func blockBody(block string) (string, bool) {
	open := strings.IndexByte(block, '{')
	if open < 0 {
		return "", false
	}
	end, ok := MatchBrace(block, open)
	if !ok {
		return "", false
	}
	return block[open+1 : end-1], true
}

// statements splits a block body into top-level ';'-terminated statements.
// Nested message, enum and other sub-blocks are skipped; oneof groups are
// descended into because their members are fields of the enclosing
// message.
func statements(body string) []string {
	var out []string
	var stmt strings.Builder
	var skip []bool
	brackets := 0
	skipping := func() bool {
		return len(skip) > 0 && skip[len(skip)-1]
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '"' || c == '\'':
			end := skipString(body, i)
			stmt.WriteString(body[i : end+1])
			i = end
		case c == '[':
			brackets++
			stmt.WriteByte(c)
		case c == ']':
			if brackets > 0 {
				brackets--
			}
			stmt.WriteByte(c)
		case brackets > 0:
			stmt.WriteByte(c)
		case c == '{':
			header := strings.Fields(stmt.String())
			keyword := ""
			if len(header) > 0 {
				keyword = header[0]
			}
			skip = append(skip, skipping() || keyword != "oneof")
			stmt.Reset()
		case c == '}':
			if len(skip) > 0 {
				skip = skip[:len(skip)-1]
			}
			stmt.Reset()
		case c == ';':
			if !skipping() {
				if text := strings.TrimSpace(stmt.String()); text != "" {
					out = append(out, text)
				}
			}
			stmt.Reset()
		default:
			stmt.WriteByte(c)
		}
	}
	return out
}

// ParseFields returns the field declarations of a message block in
// declaration order.
func ParseFields(block string) []Field {
	body, ok := blockBody(BlankComments(block))
	if !ok {
		return nil
	}
	var fields []Field
	for _, stmt := range statements(body) {
		match := fieldStatement.FindStringSubmatch(stmt)
		if match == nil {
			continue
		}
		if _, skip := nonFieldKeywords[match[2]]; skip {
			continue
		}
		fields = append(fields, Field{
			Repeated: match[1] == "repeated",
			Type:     match[2],
			Name:     match[3],
			Options:  strings.Join(strings.Fields(match[4]), " "),
		})
	}
	return fields
}

// ParseEnumConstants returns the constants of an enum block in declaration
// order.
func ParseEnumConstants(block string) []EnumConstant {
	body, ok := blockBody(BlankComments(block))
	if !ok {
		return nil
	}
	var constants []EnumConstant
	for _, stmt := range statements(body) {
		match := enumStatement.FindStringSubmatch(stmt)
		if match == nil || match[1] == "option" {
			continue
		}
		value, err := strconv.ParseInt(match[2], 0, 64)
		if err != nil {
			continue
		}
		constants = append(constants, EnumConstant{Name: match[1], Value: value})
	}
	return constants
}

// ParseRPC finds `rpc Method(Req) returns (Resp)` inside a service block
// and returns the request and response type names as written.
func ParseRPC(serviceBlock string, method string) (string, string, bool) {
	pattern := regexp.MustCompile(`\brpc\s+` + regexp.QuoteMeta(method) +
		`\s*\(\s*(?:stream\s+)?([\w.]+)\s*\)\s*returns\s*\(\s*(?:stream\s+)?([\w.]+)\s*\)`)
	match := pattern.FindStringSubmatch(BlankComments(serviceBlock))
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// RepeatedMaxCount reads the repeat-count hint of a field's options.
func RepeatedMaxCount(options string) (int, bool) {
	return intOption(repeatedCountOption, options)
}

// VariableMaxSize reads the fixed byte-size hint of a field's options.
func VariableMaxSize(options string) (int, bool) {
	return intOption(maxSizeOption, options)
}

// PrimitiveByteSize reads the integer bit-width hint of a field's options.
func PrimitiveByteSize(options string) (string, bool) {
	match := byteSizeOption.FindStringSubmatch(options)
	if match == nil {
		return "", false
	}
	return match[1], true
}

func intOption(pattern *regexp.Regexp, options string) (int, bool) {
	match := pattern.FindStringSubmatch(options)
	if match == nil {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return value, true
}
