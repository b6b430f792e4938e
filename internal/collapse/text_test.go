package collapse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/shipdata/internal/model"
)

func TestModeString(t *testing.T) {
	values := model.Strings(" ocean  star", "sea", "OCEAN STAR", "", "Sea")
	assert.Equal(t, model.Some("OCEAN STAR"), ModeString(values))

	mixed := []model.Value{model.Number(10), model.String("10"), model.String("x")}
	assert.Equal(t, model.Some("10"), ModeString(mixed))

	assert.Equal(t, model.None[string](), ModeString(model.Strings("", "  ")))
	assert.Equal(t, model.None[string](), ModeString(nil))
}

func TestConcatDistinct(t *testing.T) {
	values := []model.Value{
		model.String("b"), model.Number(12), model.String("a"), model.Number(12.5),
		model.String("b"), model.Missing(), model.String(" "),
	}
	assert.Equal(t, model.Some("12, 12.5, a, b"), ConcatDistinct(values))
	assert.Equal(t, model.None[string](), ConcatDistinct([]model.Value{model.Missing()}))
}

func TestConcatDistinct_DecimalText(t *testing.T) {
	values := model.Strings("12.0", "12", " 12.50 ", "12.5", "007", "1.2.3")
	assert.Equal(t, model.Some("007, 1.2.3, 12, 12.5"), ConcatDistinct(values))

	mixed := []model.Value{model.Number(24), model.String("24.00")}
	assert.Equal(t, model.Some("24"), ConcatDistinct(mixed))
}

func TestTimeMinMax(t *testing.T) {
	values := model.Strings("2021-05-01", "garbage", "2020-01-02T03:04:05Z", "")

	assert.Equal(t, model.Some(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)), TimeMin(values))
	assert.Equal(t, model.Some(time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)), TimeMax(values))

	assert.False(t, TimeMin(model.Strings("garbage")).Valid())
	assert.False(t, TimeMax(nil).Valid())
}

func TestMaxConfidence(t *testing.T) {
	assert.Equal(t, DefaultConfidence, MaxConfidence(nil))
	assert.Equal(t, DefaultConfidence, MaxConfidence([]model.Value{model.Missing(), model.String("bad")}))
	assert.Equal(t, 3, MaxConfidence([]model.Value{model.Missing(), model.String("2"), model.Number(3), model.String("bad")}))
	assert.Equal(t, 4, MaxConfidence(model.Strings("2-trawlers", "4-tug")))
}
