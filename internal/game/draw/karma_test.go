package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKarma(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		isTrap bool
		min    int
		max    int
	}{
		{"trap", 0, true, 1, 10},
		{"big win", 500000, false, 100, 100},
		{"above big win", 1000000, false, 100, 100},
		{"good win", 50000, false, 80, 99},
		{"upper good win", 200000, false, 80, 99},
		{"small win", 10000, false, 40, 79},
		{"zero amount", 0, false, 40, 79},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				score := Karma(tt.amount, tt.isTrap)
				assert.GreaterOrEqual(t, score, tt.min)
				assert.LessOrEqual(t, score, tt.max)
			}
		})
	}
}
