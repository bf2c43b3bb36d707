package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches the first signed decimal or integer in a cell.
var numberPattern = regexp.MustCompile(`[-+]?(?:\d*\.\d+|\d+)`)

var amountStripper = strings.NewReplacer(
	",", "",
	"₹", "",
	"$", "",
	"£", "",
	"€", "",
	"¥", "",
)

// Amount parses a cell such as "₹1,234.50" or "-250 Dr" into a number.
// The sign of the first numeric substring is kept; callers take the absolute
// value where the sign carries no meaning. Unparseable input returns 0.
func Amount(cell string) float64 {
	s := strings.TrimSpace(Fold(cell))
	if s == "" {
		return 0
	}
	s = amountStripper.Replace(s)

	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// AmountOf normalizes a cell that may already be numeric, as delivered by
// spreadsheet readers. nil yields 0.
func AmountOf(v interface{}) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return x
	case float32:
		return AmountOf(float64(x))
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case string:
		return Amount(x)
	case fmt.Stringer:
		return Amount(x.String())
	default:
		return 0
	}
}
