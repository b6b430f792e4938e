package geartype

import (
	"strings"

	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/taxonomy"
)

// IsFishing reports whether every tag of expr sits under the fishing root
// (true) or every tag sits under non_fishing (false). An expression mixing
// both roots is indeterminate and returns missing, as does one where no tag
// is in the taxonomy. A leading confidence level is ignored.
func (r *Resolver) IsFishing(expr string) model.Optional[bool] {
	if _, v, ok := model.ParseTagged(expr); ok {
		expr = v
	}

	var fishing, nonFishing bool
	for _, tag := range strings.Split(stripSpace(expr), Separator) {
		root, ok := r.idx.Root(tag)
		if !ok {
			continue
		}
		switch root {
		case taxonomy.Fishing:
			fishing = true
		case taxonomy.NonFishing:
			nonFishing = true
		}
	}

	switch {
	case fishing && !nonFishing:
		return model.Some(true)
	case nonFishing && !fishing:
		return model.Some(false)
	}
	return model.None[bool]()
}
