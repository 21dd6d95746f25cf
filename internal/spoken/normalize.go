// Package spoken canonicalizes customer identifiers captured from speech.
package spoken

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// digitWords maps single Turkish numeral words to digits, in both the
// diacritic spelling and the ASCII-folded spelling speech transcription
// tends to produce. Multi-digit numerals ("yirmi", "yüz") are deliberately
// absent: identifiers are read digit by digit.
var digitWords = map[string]string{
	"sıfır": "0", "sifir": "0",
	"bir": "1",
	"iki": "2",
	"üç": "3", "uc": "3",
	"dört": "4", "dort": "4",
	"beş": "5", "bes": "5",
	"altı": "6", "alti": "6",
	"yedi":  "7",
	"sekiz": "8",
	"dokuz": "9",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold reduces a token to its ASCII-folded form so partially transcribed
// diacritics ("sıfir", "üc") still hit the vocabulary.
func fold(token string) string {
	folded, _, err := transform.String(stripMarks, token)
	if err != nil {
		folded = token
	}
	return strings.Map(func(r rune) rune {
		if r == 'ı' {
			return 'i'
		}
		return r
	}, folded)
}

// Normalize converts a spoken or typed customer identifier into a canonical
// digit string. Inputs may be digits, Turkish single-digit words, or a mix
// with arbitrary punctuation. Normalize never fails; an unparseable input
// yields an empty string, which lookups treat as "not found".
func Normalize(input string) string {
	lowered := strings.ToLower(input)

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			return r
		}
		return -1
	}, lowered)

	tokens := strings.FieldsFunc(cleaned, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})

	var out strings.Builder
	for _, token := range tokens {
		if digit, ok := digitWords[token]; ok {
			out.WriteString(digit)
			continue
		}
		if digit, ok := digitWords[fold(token)]; ok {
			out.WriteString(digit)
			continue
		}
		for _, r := range token {
			if r >= '0' && r <= '9' {
				out.WriteRune(r)
			}
		}
	}

	if out.Len() > 0 {
		return out.String()
	}

	// No token produced a digit; keep whatever digits the raw input holds.
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
}
