package catalog

import "strings"

const (
	ideographicSpace = '　'
	fullWidthOffset  = 0xFEE0
)

// Z2H folds full-width Latin letters, digits and the full-width hyphen to
// their ASCII forms and turns U+3000 into a plain space. Other runes pass
// through untouched.
func Z2H(s string) string {
	return strings.Map(z2hRune, s)
}

func z2hRune(r rune) rune {
	switch {
	case r >= 'Ａ' && r <= 'Ｚ',
		r >= 'ａ' && r <= 'ｚ',
		r >= '０' && r <= '９',
		r == '－':
		return r - fullWidthOffset
	case r == ideographicSpace:
		return ' '
	}
	return r
}

// Fold is the comparison form used for matching: Z2H, then lower case.
func Fold(s string) string {
	return strings.ToLower(Z2H(s))
}
