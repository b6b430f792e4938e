// Package standardize cleans individual registry fields before they are
// collapsed: IMO numbers, numbers, free text, owner names and timestamps.
package standardize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/shipdata/internal/model"
)

var nonNumericRe = regexp.MustCompile(`[^\d.]`)

// IMOChecksum reports whether n is a seven digit IMO number whose last digit
// matches the weighted sum of the first six.
func IMOChecksum(n string) bool {
	v, err := strconv.Atoi(n)
	if err != nil || v < 1000000 || v > 9999999 {
		return false
	}
	sum := 0
	for w, d := 2, v/10; w <= 7; w, d = w+1, d/10 {
		sum += (d % 10) * w
	}
	return sum%10 == v%10
}

// IMO extracts a valid IMO number from v. Everything but digits and the
// decimal point is ignored; the result must pass IMOChecksum.
func IMO(v model.Value) model.Optional[string] {
	n, ok := IntString(v).Get()
	if !ok || n == "0" || !IMOChecksum(n) {
		return model.None[string]()
	}
	return model.Some(n)
}

// IntString renders v as a base 10 integer string, ignoring everything but
// digits and the decimal point. Fractions are truncated. Digit runs longer
// than an int64 are kept as written.
func IntString(v model.Value) model.Optional[string] {
	switch {
	case v.IsMissing():
		return model.None[string]()
	case v.Kind == model.KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return model.None[string]()
		}
		n := math.Trunc(v.Num)
		if n == 0 {
			n = 0 // drop the sign of -0
		}
		return model.Some(strconv.FormatFloat(n, 'f', 0, 64))
	}

	digits := nonNumericRe.ReplaceAllString(v.Str, "")
	if _, err := strconv.ParseFloat(digits, 64); err != nil {
		return model.None[string]()
	}
	whole, _, _ := strings.Cut(digits, ".")
	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	return model.Some(whole)
}
