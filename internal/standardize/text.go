package standardize

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/sells-group/shipdata/internal/model"
)

var urlRe = regexp.MustCompile(`((http|ftp|https)://)?([\w_-]+(?:(?:\.[\w_-]+)+))([\w.,@?^=%&:/~+#-]*[\w@?^=%&/~+#-])?`)

// SmartUpper upper-cases text except for anything that looks like a URL or
// host name, which keeps its case.
func SmartUpper(text string) string {
	var b strings.Builder
	prev := 0
	for _, loc := range urlRe.FindAllStringIndex(text, -1) {
		b.WriteString(strings.ToUpper(text[prev:loc[0]]))
		b.WriteString(text[loc[0]:loc[1]])
		prev = loc[1]
	}
	b.WriteString(strings.ToUpper(text[prev:]))
	return b.String()
}

// Str collapses whitespace and upper-cases s with SmartUpper. Blank input is
// missing.
func Str(s string) model.Optional[string] {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return model.None[string]()
	}
	return model.Some(SmartUpper(s))
}

// UVI standardizes a unique vessel identifier: numbers are rendered as
// integers and text is trimmed and upper-cased.
func UVI(v model.Value) model.Optional[string] {
	switch {
	case v.IsMissing():
		return model.None[string]()
	case v.Kind == model.KindNumber:
		if v.Num == 0 {
			return model.None[string]()
		}
		return IntString(v)
	}
	return model.Some(strings.ToUpper(strings.Join(strings.Fields(v.Str), " ")))
}

// Map looks a raw value up in a per-registry mapping table. The key "ALL"
// maps every value to its target and "SAME" passes values through
// unchanged. Otherwise the transliterated, trimmed value is looked up after
// upper-casing (or lower-casing when lower is set). Unmapped values are
// missing.
func Map(rules map[string]string, raw string, lower bool) model.Optional[string] {
	if len(rules) == 0 {
		return model.None[string]()
	}
	if all, ok := rules["ALL"]; ok {
		return model.Some(all)
	}
	if _, ok := rules["SAME"]; ok {
		if strings.TrimSpace(raw) == "" {
			return model.None[string]()
		}
		return model.Some(raw)
	}

	key := strings.TrimSpace(unidecode.Unidecode(raw))
	if key == "" {
		return model.None[string]()
	}
	if lower {
		key = strings.ToLower(key)
	} else {
		key = strings.ToUpper(key)
	}
	if v, ok := rules[key]; ok && v != "" {
		return model.Some(v)
	}
	return model.None[string]()
}
