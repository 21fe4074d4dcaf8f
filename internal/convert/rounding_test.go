package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundForDisplayTiers(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"large fiat two decimals", 123.456789, 123.46},
		{"boundary above 100", 101.2345, 101.23},
		{"midrange three decimals", 0.987654, 0.988},
		{"just above 0.1", 0.123456, 0.123},
		{"small six decimals", 0.00012345678, 0.000123},
		{"crypto dust six decimals", 0.00000123456, 0.000001},
		{"tiny values untouched", 0.0000005, 0.0000005},
		{"zero untouched", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundForDisplay(tt.value), 1e-12)
		})
	}
}

func TestRoundForDisplayIdempotent(t *testing.T) {
	values := []float64{0, 0.0000001, 0.0000015, 0.00042, 0.1, 0.123456, 0.987654, 1.5, 99.999, 100.0, 100.004, 123.456789, 98765.4321}

	for _, v := range values {
		once := RoundForDisplay(v)
		assert.Equal(t, once, RoundForDisplay(once), "value %v", v)
	}
}
