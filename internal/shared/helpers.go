// Package shared provides common string utilities used across multiple
// packages in the proto2ros codebase.
package shared

import (
	"path"
	"strings"
	"unicode"
)

// Acronym builds the disambiguating prefix for a hint: the upper-cased
// first letter of every '_' (or '.') delimited segment, so "chassis_brake"
// becomes "CB".
func Acronym(hint string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(hint), ".", "_")
	var builder strings.Builder
	for _, part := range strings.Split(normalized, "_") {
		if part == "" {
			continue
		}
		r := []rune(part)[0]
		builder.WriteRune(unicode.ToUpper(r))
	}
	return builder.String()
}

// PascalCase lower-cases s, splits it on underscores and capitalizes each
// part: "FIRST_ROW_LEFT" becomes "FirstRowLeft".
func PascalCase(value string) string {
	var builder strings.Builder
	for _, part := range strings.Split(strings.ToLower(value), "_") {
		if part == "" {
			continue
		}
		r := []rune(part)
		builder.WriteRune(unicode.ToUpper(r[0]))
		builder.WriteString(string(r[1:]))
	}
	return builder.String()
}

// SnakeCase inserts an underscore before every interior upper-case letter
// and lower-cases the result.
func SnakeCase(value string) string {
	var builder strings.Builder
	for i, r := range value {
		if i > 0 && unicode.IsUpper(r) {
			builder.WriteByte('_')
		}
		builder.WriteRune(unicode.ToLower(r))
	}
	return builder.String()
}

// FileStem returns the base name of p without its extension.
func FileStem(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
