package utils_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/spacetraders-economy/pkg/utils"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		kind    string
		name    string
		pattern string
	}{
		{"quest", "Salt Hoard", `^quest-salt-hoard-[0-9a-f]{8}$`},
		{"quest", "  Pirate  Bane!! ", `^quest-pirate-bane-[0-9a-f]{8}$`},
		{"game", "Vega 7", `^game-vega-7-[0-9a-f]{8}$`},
		{"game", "", `^game-[0-9a-f]{8}$`},
		{"game", "***", `^game-[0-9a-f]{8}$`},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.name, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), utils.GenerateID(tt.kind, tt.name))
		})
	}
}

func TestGenerateID_Unique(t *testing.T) {
	assert.NotEqual(t, utils.GenerateID("game", "Vega"), utils.GenerateID("game", "Vega"))
}
