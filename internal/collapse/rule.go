package collapse

import (
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/shipdata/internal/model"
)

// Rule names a collapsing rule.
type Rule string

const (
	Numeric           Rule = "numeric"
	NumericConfidence Rule = "numeric_confidence"
	ModeNumber        Rule = "mode_numeric"
	ModeText          Rule = "mode_string"
	Concat            Rule = "concat"
	EarliestTime      Rule = "time_min"
	LatestTime        Rule = "time_max"
	HighestConfidence Rule = "max_confidence"
)

// Rules lists every rule Apply understands.
var Rules = []Rule{
	Numeric, NumericConfidence, ModeNumber, ModeText,
	Concat, EarliestTime, LatestTime, HighestConfidence,
}

var ErrUnknownRule = eris.New("unknown collapse rule")

// ParseRule validates a rule name.
func ParseRule(name string) (Rule, error) {
	for _, r := range Rules {
		if string(r) == name {
			return r, nil
		}
	}
	return "", eris.Wrapf(ErrUnknownRule, "collapse: %q", name)
}

// Apply runs rule over values and formats the consensus as text. Numbers
// are formatted with model.FormatNumber and timestamps as RFC 3339 in UTC.
func Apply(rule Rule, values []model.Value) (model.Optional[string], error) {
	switch rule {
	case Numeric:
		return formatNumber(NumericConsensus(values)), nil
	case NumericConfidence:
		return formatNumber(NumericConsensusWithConfidence(values)), nil
	case ModeNumber:
		return formatNumber(ModeNumeric(values)), nil
	case ModeText:
		return ModeString(values), nil
	case Concat:
		return ConcatDistinct(values), nil
	case EarliestTime:
		return formatTime(TimeMin(values)), nil
	case LatestTime:
		return formatTime(TimeMax(values)), nil
	case HighestConfidence:
		return model.Some(strconv.Itoa(MaxConfidence(values))), nil
	}
	return model.None[string](), eris.Wrapf(ErrUnknownRule, "collapse: %q", string(rule))
}

func formatNumber(o model.Optional[float64]) model.Optional[string] {
	f, ok := o.Get()
	if !ok {
		return model.None[string]()
	}
	return model.Some(model.FormatNumber(f))
}

func formatTime(o model.Optional[time.Time]) model.Optional[string] {
	t, ok := o.Get()
	if !ok {
		return model.None[string]()
	}
	return model.Some(t.UTC().Format(time.RFC3339))
}
