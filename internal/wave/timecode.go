package wave

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as mm:ss.mmm. Negative and NaN times show as
// zero.
func FormatTime(t float64) string {
	if !(t > 0) || math.IsInf(t, 0) {
		t = 0
	}
	whole := math.Floor(t)
	secs := int64(whole)
	ms := int64(math.Floor((t - whole) * 1000))
	return fmt.Sprintf("%02d:%02d.%03d", secs/60, secs%60, ms)
}
