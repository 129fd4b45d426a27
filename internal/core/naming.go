package core

import (
	"regexp"
	"strings"
)

// MaxIdentifierLength bounds every emitted record name, field name and enum
// constant.
const MaxIdentifierLength = 63

// ReservedSuffix is appended to names ending in Request or Response, which
// ROS reserves for generated service halves.
const ReservedSuffix = "DT"

var (
	trailingVersion  = regexp.MustCompile(`V[1-9]$`)
	trailingMarker   = regexp.MustCompile(`XX$`)
	trailingTypeTag  = regexp.MustCompile(`(?i)_t$`)
	underscoreRun    = regexp.MustCompile(`_{2,}`)
	reservedSuffixes = []string{"Request", "Response"}
)

// NormalizeIdentifier rewrites an identifier into the PascalCase form ROS
// expects. Names already carrying the reserved suffix are returned as they
// are, apart from the length bound.
func NormalizeIdentifier(name string) string {
	if strings.HasSuffix(name, ReservedSuffix) {
		return TruncateIdentifier(name, MaxIdentifierLength)
	}
	base := trailingVersion.ReplaceAllString(name, "")
	base = trailingMarker.ReplaceAllString(base, "")
	base = trailingTypeTag.ReplaceAllString(base, " T")

	var builder strings.Builder
	for _, token := range tokenize(base) {
		builder.WriteString(capitalizeToken(token))
	}
	out := builder.String()
	for _, suffix := range reservedSuffixes {
		if strings.HasSuffix(out, suffix) {
			out += ReservedSuffix
			break
		}
	}
	return TruncateIdentifier(out, MaxIdentifierLength)
}

// TruncateIdentifier keeps the last max characters of name and upper-cases
// the new first character.
func TruncateIdentifier(name string, max int) string {
	if len(name) <= max {
		return name
	}
	out := []byte(name[len(name)-max:])
	if isLower(out[0]) {
		out[0] -= 'a' - 'A'
	}
	return string(out)
}

// ShortenName truncates name so that prefix+name fits in max characters.
// It reports false when no body character would survive.
func ShortenName(name string, prefix string, max int) (string, bool) {
	room := max - len(prefix)
	if room <= 0 || name == "" {
		return "", false
	}
	if len(name) <= room {
		return name, true
	}
	return name[:room], true
}

// EnumConstantName collapses underscore runs and bounds the constant so the
// emitted C_ form fits. The second result reports truncation.
func EnumConstantName(name string) (string, bool, bool) {
	collapsed := underscoreRun.ReplaceAllString(name, "_")
	short, ok := ShortenName(collapsed, "C_", MaxIdentifierLength)
	if !ok {
		return "", false, false
	}
	return short, short != collapsed, true
}

// tokenize splits an identifier on case and digit boundaries. A run of two
// or more capitals stays one token when followed by a digit, the end of
// input, or a capitalised word.
func tokenize(s string) []string {
	var tokens []string
	n := len(s)
	for i := 0; i < n; {
		c := s[i]
		switch {
		case isUpper(c):
			if end := acronymEnd(s, i); end > 0 {
				tokens = append(tokens, s[i:end])
				i = end
				continue
			}
			j := i + 1
			for j < n && isLowerOrDigit(s[j]) {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j
		case isLowerOrDigit(c):
			j := i + 1
			for j < n && isLowerOrDigit(s[j]) {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j
		default:
			i++
		}
	}
	return tokens
}

// acronymEnd returns the end of the longest capital run starting at i that
// is followed by a valid boundary, or 0 when there is none.
func acronymEnd(s string, i int) int {
	j := i
	for j < len(s) && isUpper(s[j]) {
		j++
	}
	for k := j; k >= i+2; k-- {
		switch {
		case k == len(s):
			return k
		case isDigit(s[k]):
			return k
		case isUpper(s[k]) && k+1 < len(s) && isLower(s[k+1]):
			return k
		}
	}
	return 0
}

func capitalizeToken(token string) string {
	if isAllCaps(token) {
		return token
	}
	return strings.ToUpper(token[:1]) + strings.ToLower(token[1:])
}

func isAllCaps(token string) bool {
	cased := false
	for i := 0; i < len(token); i++ {
		if isLower(token[i]) {
			return false
		}
		if isUpper(token[i]) {
			cased = true
		}
	}
	return cased
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLowerOrDigit(c byte) bool { return isLower(c) || isDigit(c) }
