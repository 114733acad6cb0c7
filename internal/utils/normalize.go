package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Historical role data is inconsistently cased and accented: the same role
// appears as "Técnico de Mantenimiento", "Tecnico De Mantenimiento" and
// "TECNICO DE MANTENIMIENTO" across rows. NormalizeRole is the single
// normalization contract applied to both stored role names and per-route
// allow-lists, so all spellings of one role compare equal.

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // drop combining marks left by NFD
	norm.NFC,
)

// NormalizeRole lower-cases a role name, strips diacritics and collapses
// surrounding/internal whitespace runs to single spaces.
func NormalizeRole(name string) string {
	out, _, err := transform.String(stripAccents, name)
	if err != nil {
		// Transform only fails on invalid UTF-8; fall back to the raw input
		// so comparison still happens on something deterministic.
		out = name
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
