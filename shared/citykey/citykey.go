// Package citykey folds city names into the key hotels are matched on.
//
// "San José", "san jose" and "  SAN   JOSE " all fold to "san jose".
package citykey

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

func Normalize(city string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		city,
	)
	if err != nil {
		stripped = city
	}

	return strings.Join(strings.Fields(folder.String(stripped)), " ")
}

func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
