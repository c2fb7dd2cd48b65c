package ro

import "strings"

// diacritics maps the ASCII input convention to the proper Romanian
// characters, so the engine can be driven from keyboards without a
// Romanian layout.
var diacritics = strings.NewReplacer(
	"a^", "â",
	"i^", "î",
	"a@", "ă",
	"s@", "ș",
	"t@", "ț",
	"A^", "Â",
	"I^", "Î",
	"A@", "Ă",
	"S@", "Ș",
	"T@", "Ț",
)

// ExpandDiacritics rewrites the a^/i^/a@/s@/t@ convention (and its
// upper-case variants) into Romanian diacritics.
func ExpandDiacritics(text string) string {
	return diacritics.Replace(text)
}
