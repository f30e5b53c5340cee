package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// cyrillicToLatin maps lowercase Cyrillic letters to their Latin
// transliteration. Letters without a sensible mapping (hard/soft signs)
// drop to the empty string.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ж': "zh", 'з': "z", 'и': "i", 'й': "i",
	'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh",
	'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e",
	'ю': "yu", 'я': "ya",
}

var (
	unsafeRun     = regexp.MustCompile(`[^0-9a-z._/-]+`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// SanitizeFilename turns an arbitrary user-supplied filename into a safe
// storage key fragment. The result only contains [0-9a-z._/-] and the
// function is idempotent: SanitizeFilename(SanitizeFilename(s)) == SanitizeFilename(s).
func SanitizeFilename(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		// combining marks left over from accent decomposition
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if lat, ok := cyrillicToLatin[r]; ok {
			b.WriteString(lat)
			continue
		}
		if unicode.Is(unicode.Cyrillic, r) {
			continue
		}
		b.WriteRune(r)
	}

	s := unsafeRun.ReplaceAllString(b.String(), "_")
	return underscoreRun.ReplaceAllString(s, "_")
}
