// Package slug genera identificadores URL-safe a partir de nombres.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Pattern formato válido de un slug.
var Pattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make convierte "Café Orgánico 500g" en "cafe-organico-500g".
// Quita diacríticos, pasa a minúsculas y reemplaza cualquier otro carácter por guiones.
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	plain = strings.ToLower(plain)
	plain = nonAlnum.ReplaceAllString(plain, "-")
	return strings.Trim(plain, "-")
}

// Valid indica si s cumple el formato de slug.
func Valid(s string) bool {
	return Pattern.MatchString(s)
}
