package canon

import (
	"regexp"
	"strings"
)

// vesselCodes are vessel-class markers removed from names. Each match is
// replaced with a single space. Order matters: the generic X/X rules run last.
var vesselCodes = compileAll(
	`MFV[^\w]+`, // fishing vessel, English
	`MPV[^\w]+`,
	`HMS[^\w]+`,
	`LPG[/|C]*[\W]*|LNG[/|C]*[\W]*`,
	`(\s|^)F[^\w\s]*V([^\w]+|$)`, // F/V, F-V, F.V, FV:
	`^F[^\w\s]*B[^\w]+`,
	` F[^\w\s]*B[^\w]*(\s|$)`,
	`^M[^\w\s]*P[^\w]+`, // Italy, Spain
	` M[^\w\s]*P[^\w]*(\s|$)`,
	`^M[^\w\s]*B[^\w]+`,
	` M[^\w\s]*B[^\w]*(\s|$)`,
	`^G[^\w\s]*V[^\w]+`, // mostly UK
	`S+F+[^\w]+G[^\w\s]*V[^\w]*`,
	` G[^\w\s]*V[^\w]*(\s|$)`,
	`^M[^\w\s]*V[^\w]+`,
	` M[^\w\s]*V[^\w]*(\s|$)`,
	`^M[^\w\s]+S[^\w]+`, // merchant ship
	` M[^\w\s]+S[^\w]*(\s|$)`,
	`^M[^\w\s]*K[^\w]+`, // northern Europe
	` M[^\w\s]+K[^\w]*(\s|$)`,
	`^R[^\w\s]*V[^\w]+`, // research vessel
	` R[^\w\s]*V[^\w]*(\s|$)`,
	`^T[^\w\s]*T[^\w]+`, // tender to
	` T[^\w\s]*T[^\w]*$`,
	`^S[^\w\s]*Y[^\w]+`, // steam yacht
	` S[^\w\s]*Y[^\w]*$`,
	`^M[^\w\s]*F[^\w]+`, // motor ferry
	` M[^\w\s]*F[^\w]*$`,
	`^S[^\w\s]*S[^\w]+`, // steam ship
	` S[^\w\s]*S[^\w]*$`,
	`^S[^\w\s]*V[^\w]+`, // sailing vessel
	` S[^\w\s]*V[^\w]*$`,
	`^M[^\w\s]*T[^\w]+`, // motor tanker
	` M[^\w\s]*T[^\w]*$`,
	`^M[^\w\s]+Y[^\w]+`, // motor yacht
	` M[^\w\s]+Y[^\w]*$`,
	`^[A-Z]/[A-Z][^\w]+`,
	` [A-Z]/[A-Z]$`,
	`^[A-Z]\\\\[A-Z][^\w]+`,
	` [A-Z]\\\\[A-Z]$`,
	`^KM[^\w]+`, // Indonesia, K.M
	`^E\.B\. `,  // Dutch, same role as NO.
)

var (
	parenRe   = regexp.MustCompile(`\(.+\)`)
	bracketRe = regexp.MustCompile(`\[.+\]`)
)

type numberWord struct {
	re    *regexp.Regexp
	digit string
}

// numberWords maps trailing English, Spanish and French number words to digits.
var numberWords = []numberWord{
	{regexp.MustCompile(` (ONE|UNO|UN)$`), " 1"},
	{regexp.MustCompile(` (TWO|DOS|DEUX)$`), " 2"},
	{regexp.MustCompile(` (THREE|TRES|TROIS)$`), " 3"},
	{regexp.MustCompile(` (FOUR|CUATRO|QUATRE)$`), " 4"},
	{regexp.MustCompile(` (FIVE|CINCO|CINQ)$`), " 5"},
	{regexp.MustCompile(` (SIX|SEIS)$`), " 6"},
	{regexp.MustCompile(` (SEVEN|SIETE|SEPT)$`), " 7"},
	{regexp.MustCompile(` (EIGHT|OCHO|HUIT)$`), " 8"},
	{regexp.MustCompile(` (NINE|NUEVE|NEUF)$`), " 9"},
	{regexp.MustCompile(` (TEN|DIEZ|DIX)$`), " 10"},
	{regexp.MustCompile(` (ELEVEN|ONCE|ONZE)$`), " 11"},
	{regexp.MustCompile(` (TWELVE|DOCE|DOUZE)$`), " 12"},
	{regexp.MustCompile(` (THIRTEEN|TRECE|TREIZE)$`), " 13"},
	{regexp.MustCompile(` (FOURTEEN|CATORCE|QUATORZE)$`), " 14"},
	{regexp.MustCompile(` (FIFTEEN|QUINCE|QUINZE)$`), " 15"},
}

var ordinalRes = []struct {
	re   *regexp.Regexp
	word string
}{
	{regexp.MustCompile(`(^|\s)1ST\s`), "${1}FIRST "},
	{regexp.MustCompile(`(^|\s)2ND\s`), "${1}SECOND "},
	{regexp.MustCompile(`(^|\s)3RD\s`), "${1}THIRD "},
	{regexp.MustCompile(`(^|\s)4TH\s`), "${1}FOURTH "},
	{regexp.MustCompile(`(^|\s)5TH\s`), "${1}FIFTH "},
}

var (
	// Korean and Chinese registries append "<n> HO" / "<n> HAO".
	hoSuffixRe  = regexp.MustCompile(`\d+\s*HO$`)
	haoSuffixRe = regexp.MustCompile(`\d+\s*HAO$`)

	// The last group of each NO pattern is the lookahead: it is matched but kept.
	noDigitRe   = regexp.MustCompile(`NO[^\w\s]*\s*(\d)`)
	nDigitRe    = regexp.MustCompile(`\s+N[\W_0]*(\d)`)
	noDotWordRe = regexp.MustCompile(`NO\.\s*([^0-9])`)

	ampersandRe = regexp.MustCompile(`([A-Z])\s+&\s+([A-Z])`)
	santaRe     = regexp.MustCompile(`(^|\s)STA\.?\s|\sSTA\.?$`)

	leadingDigitsRe  = regexp.MustCompile(`^\d+`)
	trailingDigitsRe = regexp.MustCompile(`\d+$`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// replaceKeepingTail replaces every match of re with repl but keeps the text
// matched by the last capture group, emulating a trailing lookahead. Scanning
// resumes at the kept text, so adjacent matches behave like a lookahead would.
func replaceKeepingTail(re *regexp.Regexp, s, repl string) string {
	var b strings.Builder
	for {
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			b.WriteString(s)
			return b.String()
		}
		keep := loc[len(loc)-2]
		b.WriteString(s[:loc[0]])
		b.WriteString(repl)
		s = s[keep:]
	}
}

// replaceUntilStable applies re until the string stops changing. Used where a
// pattern's context characters would otherwise be consumed by the previous match.
func replaceUntilStable(re *regexp.Regexp, s, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}
		s = next
	}
}
