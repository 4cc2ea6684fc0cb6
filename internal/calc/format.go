package calc

import "strconv"

// displayPrecision is the number of significant digits shown, enough to hide
// binary rounding noise such as 0.1+0.2.
const displayPrecision = 15

// Format renders v for the entry field. The output uses plain decimal
// notation without trailing zeros, so it is itself a valid expression.
func Format(v float64) string {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', displayPrecision, 64), 64)
	if err != nil {
		rounded = v
	}
	if rounded == 0 {
		// Collapse -0.
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
