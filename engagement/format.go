package engagement

import (
	"math"
	"strconv"
	"strings"
)

var countSuffixes = []string{"", "k", "M", "B", "T"}

// FormatCount renders a non-negative count with a magnitude suffix:
// 999 -> "999", 1000 -> "1k", 1500 -> "1.5k", 1200000 -> "1.2M".
// Scaled values below 10 keep one fractional digit, with a trailing
// ".0" stripped.
func FormatCount(n int) string {
	if n <= 0 {
		return "0"
	}

	tier := 0
	for v := n; v >= 1000 && tier < len(countSuffixes)-1; v /= 1000 {
		tier++
	}

	value := float64(n) / math.Pow(1000, float64(tier))
	if value < 10 && value != math.Trunc(value) {
		s := strings.TrimSuffix(strconv.FormatFloat(value, 'f', 1, 64), ".0")
		return s + countSuffixes[tier]
	}
	return strconv.Itoa(int(math.Round(value))) + countSuffixes[tier]
}

// FormatEngagement renders a pluralized engagement count, e.g. "1 like",
// "1.2k likes".
func FormatEngagement(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return FormatCount(n) + " " + noun
}
