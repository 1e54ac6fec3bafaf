package store

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain descompone, elimina las marcas diacríticas y recompone: "Joāo"
// y "Joao" quedan iguales. Los nombres y direcciones vienen en portugués.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold normaliza un texto para búsqueda: sin acentos y en minúsculas.
func fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// matchesQuery indica si algún campo contiene el término ya normalizado.
func matchesQuery(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold(f), q) {
			return true
		}
	}
	return false
}
