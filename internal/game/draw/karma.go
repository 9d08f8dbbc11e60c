package draw

import "math/rand"

// Karma thresholds. Karma is a cosmetic 0-100 score attached to each draw
// and never feeds back into selection.
const (
	KarmaBigWinAmount = 500000
	KarmaGoodAmount   = 50000
)

// Karma scores one draw. Trap draws score 1-10; money draws score by tier:
// big wins a flat 100, good wins 80-99, everything else 40-79.
func Karma(amount int64, isTrap bool) int {
	if isTrap {
		return rand.Intn(10) + 1
	}
	switch {
	case amount >= KarmaBigWinAmount:
		return 100
	case amount >= KarmaGoodAmount:
		return rand.Intn(20) + 80
	default:
		return rand.Intn(40) + 40
	}
}
