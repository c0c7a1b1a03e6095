// Package schedule turns a course document (a YAML header plus one
// override document per session) into an ordered sequence of dated
// sections, and renders them through the header's template.
package schedule

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vocab translates normalized free-text keys to canonical field names. The
// course documents are authored in Hungarian; this table is the fixed
// vocabulary, everything else keeps its normalized form.
var vocab = map[string]string{
	"elso ora":   "first_section",
	"utolso ora": "last_section",
	"idopont":    "time_slot",
	"csoport":    "title",
	"rovidnev":   "short_name",
	"szunetek":   "breaks",
	"feladatok":  "exs",
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining marks: "Első óra" becomes "Elso ora".
func StripAccents(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey canonicalizes a free-text document key: surrounding space
// trimmed, inner whitespace collapsed to single spaces, accents stripped,
// lowercased, then translated through the vocabulary.
func NormalizeKey(key string) string {
	key = strings.Join(strings.Fields(key), " ")
	key = strings.ToLower(StripAccents(key))
	if translated, ok := vocab[key]; ok {
		return translated
	}
	return key
}
