package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// numberWords maps spelled-out cardinals to digit strings. The table is
// closed: anything not listed passes through unchanged.
var numberWords = map[string]string{
	"one":          "1",
	"two":          "2",
	"three":        "3",
	"four":         "4",
	"five":         "5",
	"six":          "6",
	"seven":        "7",
	"eight":        "8",
	"nine":         "9",
	"ten":          "10",
	"eleven":       "11",
	"twelve":       "12",
	"thirteen":     "13",
	"fourteen":     "14",
	"fifteen":      "15",
	"sixteen":      "16",
	"seventeen":    "17",
	"eighteen":     "18",
	"nineteen":     "19",
	"twenty":       "20",
	"twenty-one":   "21",
	"twenty-two":   "22",
	"twenty-three": "23",
	"twenty-four":  "24",
	"twenty-five":  "25",
	"twenty-six":   "26",
	"twenty-seven": "27",
	"twenty-eight": "28",
	"twenty-nine":  "29",
	"thirty":       "30",
}

var lower = cases.Lower(language.Und)

// Normalize lowercases text, splits it on whitespace and dash variants,
// strips non-word characters from each token, replaces spelled-out numbers
// one..thirty with digits, and rejoins the tokens with single spaces.
//
// Hyphenated compounds such as "twenty-one" are recognized before the dash
// split so they map to a single digit token.
func Normalize(text string) string {
	return strings.Join(Words(text), " ")
}

// Words returns the normalized token list of text. Empty tokens are dropped.
func Words(text string) []string {
	text = lower.String(norm.NFC.String(text))
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if digits, ok := numberWords[compoundKey(field)]; ok {
			words = append(words, digits)
			continue
		}
		for _, part := range strings.FieldsFunc(field, isDash) {
			token := stripNonWord(part)
			if token == "" {
				continue
			}
			if digits, ok := numberWords[token]; ok {
				token = digits
			}
			words = append(words, token)
		}
	}
	return words
}

// compoundKey strips everything but word characters and dashes, folding
// every dash variant to '-'.
func compoundKey(field string) string {
	var b strings.Builder
	b.Grow(len(field))
	for _, r := range field {
		switch {
		case isDash(r):
			b.WriteByte('-')
		case isWordRune(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripNonWord(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isDash(r rune) bool {
	switch r {
	case '-', '‐', '‑', '‒', '–', '—', '―', '−':
		return true
	}
	return false
}
