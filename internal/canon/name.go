// Package canon canonicalizes vessel names and radio call signs so that
// textual variants of the same identifier compare equal.
//
// Every function is total: malformed input degrades to a missing result or
// leaves the offending part of the text unchanged.
package canon

import (
	"math"
	"strconv"
	"strings"

	"github.com/sells-group/shipdata/internal/model"
)

// NormalizeName returns the canonical form of a ship name, or missing when
// nothing meaningful remains. Text that is not valid UTF-8 is read as ISO-8859-1.
func NormalizeName(s string) model.Optional[string] {
	if s == "" {
		return model.None[string]()
	}
	return normalizeName(decode([]byte(s)))
}

// NormalizeNameBytes is NormalizeName for raw bytes of unknown encoding.
func NormalizeNameBytes(b []byte) model.Optional[string] {
	if len(b) == 0 {
		return model.None[string]()
	}
	return normalizeName(decode(b))
}

// NormalizeNameValue normalizes a registry cell. Whole numbers are read as
// their integer text; other numbers carry no name and yield missing.
func NormalizeNameValue(v model.Value) model.Optional[string] {
	switch v.Kind {
	case model.KindString:
		return NormalizeName(v.Str)
	case model.KindNumber:
		if v.Num != math.Trunc(v.Num) || math.IsInf(v.Num, 0) {
			return model.None[string]()
		}
		return normalizeName(strconv.FormatFloat(v.Num, 'f', 0, 64))
	default:
		return model.None[string]()
	}
}

func normalizeName(name string) model.Optional[string] {
	name = strings.ToUpper(toASCII(name))
	name = collapseSpace(name)
	name = strings.NewReplacer("\n", "", "\r", "").Replace(name)

	for _, re := range vesselCodes {
		name = re.ReplaceAllString(name, " ")
	}

	name = parenRe.ReplaceAllString(name, " ")
	name = bracketRe.ReplaceAllString(name, " ")

	for _, nw := range numberWords {
		name = nw.re.ReplaceAllString(name, nw.digit)
	}
	for _, o := range ordinalRes {
		name = o.re.ReplaceAllString(name, o.word)
	}

	name = hoSuffixRe.ReplaceAllString(name, " ")
	name = haoSuffixRe.ReplaceAllString(name, " ")

	// NO.5, NO5, NO:5, NO. 5, NO 5, N5, N-5
	name = replaceKeepingTail(noDigitRe, name, "")
	name = replaceKeepingTail(nDigitRe, name, "")
	name = replaceKeepingTail(noDotWordRe, name, "")

	// BLACK & WHITE -> BLACK AND WHITE
	name = replaceUntilStable(ampersandRe, name, "${1} AND ${2}")

	name = santaRe.ReplaceAllString(name, "SANTA")

	name = alnumOnly(deromanize(name))

	if lead := leadingDigitsRe.FindString(name); lead != "" {
		name = name[len(lead):] + lead
	}
	if tail := trailingDigitsRe.FindString(name); tail != "" {
		name = name[:len(name)-len(tail)] + trimZeros(tail)
	}

	name = collapseSpace(name)
	if name == "" {
		return model.None[string]()
	}
	return model.Some(name)
}

// deromanize replaces a trailing Roman numeral token with its decimal value
// and joins all tokens without separators. Tokens containing L, C, D or M are
// left alone because they collide with ordinary words and abbreviations.
func deromanize(name string) string {
	tokens := splitTokens(name)
	last := tokens[len(tokens)-1]
	if !strings.ContainsAny(last, "LCDM") {
		if n, ok := ParseRoman(last); ok {
			tokens[len(tokens)-1] = strconv.Itoa(n)
		}
	}
	return strings.Join(tokens, "")
}

// splitTokens splits on whitespace runs, hyphens, and periods that follow
// three upper-case letters. It always returns at least one token.
func splitTokens(s string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isSpace(c):
			j := i
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			tokens = append(tokens, s[start:i])
			start, i = j, j
		case c == '-' || (c == '.' && i >= 3 && isUpper(s[i-1]) && isUpper(s[i-2]) && isUpper(s[i-3])):
			tokens = append(tokens, s[start:i])
			start, i = i+1, i+1
		default:
			i++
		}
	}
	return append(tokens, s[start:])
}

// trimZeros strips zero padding from a digit run, keeping a single 0 for all-zero runs.
func trimZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
