// Package classifier decides whether a chat message is an arithmetic question
// and pulls the candidate expression out of it.
package classifier

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	digitOperatorDigit = regexp.MustCompile(`[0-9)]\s*[+\-*/%^×÷]\s*[-(]?\s*[0-9(.]`)
	expressionRuns     = regexp.MustCompile(`[0-9+\-*/%^().\s]+`)
	hasDigit           = regexp.MustCompile(`[0-9]`)
)

// keywords are matched against whole words, case-insensitively.
var keywords = map[string]struct{}{
	"calculate":  {},
	"compute":    {},
	"solve":      {},
	"evaluate":   {},
	"sum":        {},
	"plus":       {},
	"minus":      {},
	"times":      {},
	"multiply":   {},
	"multiplied": {},
	"divide":     {},
	"divided":    {},
	"احسب":       {},
	"ناتج":       {},
	"مجموع":      {},
	"اطرح":       {},
	"اضرب":       {},
	"اقسم":       {},
	"حل":         {},
	"جمع":        {},
	"طرح":        {},
	"ضرب":        {},
	"قسمة":       {},
}

// arabicPrefixes are attached particles stripped before keyword lookup,
// longest first.
var arabicPrefixes = []string{"وال", "فال", "بال", "ال", "و", "ف"}

// LooksLikeMath reports whether msg contains an operator between two
// operands, or an arithmetic keyword together with an extractable
// expression that has at least one operator.
func LooksLikeMath(msg string) bool {
	msg = Normalize(msg)
	if digitOperatorDigit.MatchString(msg) {
		return true
	}
	if !hasDigit.MatchString(msg) || !hasOperator(ExtractExpression(msg)) {
		return false
	}
	return hasKeyword(msg)
}

func hasKeyword(msg string) bool {
	words := strings.FieldsFunc(strings.ToLower(msg), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r)
	})
	for _, w := range words {
		if isKeyword(w) {
			return true
		}
	}
	return false
}

func isKeyword(word string) bool {
	if _, ok := keywords[word]; ok {
		return true
	}
	for _, p := range arabicPrefixes {
		if rest, ok := strings.CutPrefix(word, p); ok && rest != "" {
			if _, ok := keywords[rest]; ok {
				return true
			}
		}
	}
	return false
}

// hasOperator reports whether expr has an operator other than a leading sign.
func hasOperator(expr string) bool {
	return strings.ContainsAny(strings.TrimLeft(expr, "-( "), "+-*/%^")
}

// ExtractExpression joins every run of arithmetic characters in msg and
// trims the result.
func ExtractExpression(msg string) string {
	runs := expressionRuns.FindAllString(Normalize(msg), -1)
	return strings.TrimSpace(strings.Join(runs, ""))
}

var normalizer = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"٫", ".",
)

// Normalize maps Arabic-Indic digits and typographic operator signs onto
// their ASCII forms so the engine's alphabet can see them.
func Normalize(msg string) string {
	return normalizer.Replace(msg)
}
