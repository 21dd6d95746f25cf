package spoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"spoken words", "bir sıfır sıfır bir", "1001"},
		{"plain digits", "1001", "1001"},
		{"empty", "", ""},
		{"letters with embedded digits", "abc123", "123"},
		{"ascii folded words", "bir sifir sifir bir", "1001"},
		{"partial diacritics", "üc bes dokuz", "359"},
		{"mixed words and digits", "bir 0 sıfır 1", "1001"},
		{"punctuation separators", "bir, sıfır - sıfır. bir", "1001"},
		{"uppercase", "BIR SIFIR SIFIR BIR", "1001"},
		{"formatted number", "10-01", "1001"},
		{"no digits at all", "merhaba dünya", ""},
		{"digits buried in noise", "#10.01!", "1001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalizeDoesNotCollapseMultiDigitWords(t *testing.T) {
	// "yirmi" means 20 but only single-digit vocabulary is recognized.
	assert.Equal(t, "", Normalize("yirmi"))
	assert.Equal(t, "1", Normalize("yirmi bir"))
}
