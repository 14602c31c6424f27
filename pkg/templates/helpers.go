package templates

import (
	"strconv"
	"text/template"
)

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"num": FormatNumber,
	}
}

// FormatNumber renders a float with the fewest digits that round-trip,
// never in exponent form: 70 -> "70", 72.5 -> "72.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
