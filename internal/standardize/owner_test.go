package standardize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/shipdata/internal/model"
)

func TestOwner(t *testing.T) {
	tests := []struct {
		in   string
		want model.Optional[string]
	}{
		{"PESQUERA SANTA ROSA S.A. DE C.V.", model.Some("PESQUERA SANTA ROSA")},
		{"Taiyo Gyogyo Kabushiki Kaisha", model.Some("TAIYO")},
		{"Ocean Fishery Co., Ltd.", model.Some("OCEAN FISHERIES")},
		{"Acme Marine (Pvt) Ltd", model.Some("ACME MARINE")},
		{"Nordic Trawl AS", model.Some("NORDIC TRAWL")},
		{"Atlantic Seafood GmbH", model.Some("ATLANTIC SEAFOOD")},
		{"OOO Murman Seafood", model.Some("MURMAN SEAFOOD")},
		{"Sea Harvest Corporation", model.Some("SEA HARVEST")},
		{"Pacific Star Fishing Company Limited", model.Some("PACIFIC STAR FISHING")},
		{"Owner unknown", model.None[string]()},
		{"   ", model.None[string]()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Owner(tt.in))
		})
	}
}
