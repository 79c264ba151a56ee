package moderation

import (
	"regexp"
	"strings"
)

const maskRune = '*'

// Redact replaces every whole-word occurrence of each flagged word
// with an equal-length run of mask characters. Matching is
// case-insensitive; words are applied in the order reported, so a
// word flagged twice is a no-op the second time.
func Redact(text string, flaggedWords []string) string {
	out := text
	for _, word := range flaggedWords {
		if word == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			continue
		}
		out = re.ReplaceAllStringFunc(out, func(match string) string {
			return strings.Repeat(string(maskRune), len([]rune(match)))
		})
	}
	return out
}
