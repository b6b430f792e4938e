package canon

import (
	"strings"

	"github.com/sells-group/shipdata/internal/model"
)

// callsignPlaceholders are values registries use for "no call sign".
var callsignPlaceholders = map[string]bool{
	"NONE":    true,
	"UNKNOWN": true,
	"NIL":     true,
	"NULL":    true,
}

// NormalizeCallsign returns the canonical form of an international radio
// call sign: upper-case ASCII letters and digits without leading zeros.
// Placeholder values and empty results yield missing.
func NormalizeCallsign(s string) model.Optional[string] {
	if s == "" {
		return model.None[string]()
	}
	return normalizeCallsign(decode([]byte(s)))
}

// NormalizeCallsignBytes is NormalizeCallsign for raw bytes of unknown encoding.
func NormalizeCallsignBytes(b []byte) model.Optional[string] {
	if len(b) == 0 {
		return model.None[string]()
	}
	return normalizeCallsign(decode(b))
}

// NormalizeCallsignValue normalizes a registry cell; numbers are read as their text.
func NormalizeCallsignValue(v model.Value) model.Optional[string] {
	if v.Kind == model.KindMissing {
		return model.None[string]()
	}
	return NormalizeCallsign(v.Text())
}

func normalizeCallsign(cs string) model.Optional[string] {
	cs = strings.ToUpper(toASCII(cs))
	if callsignPlaceholders[strings.TrimSpace(cs)] {
		return model.None[string]()
	}
	cs = strings.TrimLeft(alnumOnly(cs), "0")
	if cs == "" {
		return model.None[string]()
	}
	return model.Some(cs)
}
