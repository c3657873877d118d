package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vvka-141/synclean/pkg/synclean"
)

// encoder is the policy-specific first stage.
type encoder func(name string) (string, error)

// reencode turns a name that is not valid UTF-8 into text by reading its bytes
// as ISO-8859-1. Control characters in the decoded result mean the bytes were
// not Latin-1 text either, and the name is rejected.
func reencode(name string) (string, error) {
	if utf8.ValidString(name) {
		return name, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().String(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", synclean.ErrEncoding, err)
	}
	if strings.IndexFunc(decoded, unicode.IsControl) >= 0 {
		return "", synclean.ErrEncoding
	}
	return decoded, nil
}

// keepUnicode is the blacklist encoder: valid names pass through untouched.
func keepUnicode(name string) (string, error) {
	return reencode(name)
}

var asciiOnly = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// stripToASCII is the accent-strip encoder: canonical decomposition splits
// accented letters into base letter plus combining mark, then every rune
// outside 7-bit ASCII is dropped.
func stripToASCII(name string) (string, error) {
	text, err := reencode(name)
	if err != nil {
		return "", err
	}

	t := transform.Chain(norm.NFD, asciiOnly)
	out, _, err := transform.String(t, text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", synclean.ErrEncoding, err)
	}
	return out, nil
}
