// Package textutils provides the text normalization and tokenization helpers
// used to prepare statement descriptions for categorization.
package textutils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe    = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	numericRe    = regexp.MustCompile(`^[0-9]+$`)

	// NFD decomposition followed by combining-mark removal strips diacritics
	// ("Salário" -> "Salario").
	diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Portuguese function words that carry no signal for categorization.
var stopWords = map[string]bool{
	"com": true, "para": true, "por": true, "que": true, "uma": true,
	"dos": true, "das": true, "nos": true, "nas": true, "aos": true,
	"pela": true, "pelo": true, "pelas": true, "pelos": true,
	"sem": true, "sobre": true, "entre": true, "ate": true,
	"mais": true, "mas": true, "sua": true, "seu": true,
	"suas": true, "seus": true, "este": true, "esta": true,
}

// Known misspellings seen in real statement exports, mapped to their
// canonical forms. Applied whole-word and case-insensitively.
var typoCorrections = map[string]string{
	"supermecado":  "supermercado",
	"supermercdo":  "supermercado",
	"mercdo":       "mercado",
	"restaurnte":   "restaurante",
	"farmcia":      "farmacia",
	"transferecia": "transferencia",
	"transferncia": "transferencia",
	"pagameto":     "pagamento",
	"pagamneto":    "pagamento",
	"salrio":       "salario",
	"combustvel":   "combustivel",
}

var typoPatterns = buildTypoPatterns()

type typoPattern struct {
	re          *regexp.Regexp
	replacement string
}

func buildTypoPatterns() []typoPattern {
	patterns := make([]typoPattern, 0, len(typoCorrections))
	for typo, canonical := range typoCorrections {
		patterns = append(patterns, typoPattern{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(typo) + `\b`),
			replacement: canonical,
		})
	}
	return patterns
}

// RemoveDiacritics strips accent marks from a string.
func RemoveDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeText lowercases, strips diacritics, replaces non-word characters
// with spaces and collapses whitespace.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = RemoveDiacritics(s)
	s = nonWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CorrectTypos replaces known misspellings with their canonical forms using
// whole-word, case-insensitive matching.
func CorrectTypos(s string) string {
	for _, p := range typoPatterns {
		s = p.re.ReplaceAllString(s, p.replacement)
	}
	return s
}

// TokenizeDescription normalizes and typo-corrects a description, then splits
// it into tokens, discarding tokens of length <= 2, Portuguese stop words and
// purely numeric tokens. The result has no duplicates and preserves
// first-seen order.
func TokenizeDescription(description string) []string {
	normalized := CorrectTypos(NormalizeText(description))
	if normalized == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tokens []string
	for _, token := range strings.Fields(normalized) {
		if len([]rune(token)) <= 2 {
			continue
		}
		if stopWords[token] {
			continue
		}
		if numericRe.MatchString(token) {
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}
