// File path: internal/generator/sanitize.go
package generator

import (
	"strings"

	"github.com/sileaweb/content-engine/internal/llm"
)

// Conversational openers the model keeps emitting despite being told to
// output markup only. Matched case-insensitively, removed wherever they
// appear.
var fillerPhrases = []string{
	"sure, here is",
	"sure, here's",
	"certainly!",
	"of course!",
	"here is the article",
	"here's the article",
	"here is the content",
	"i hope this helps",
	"let me know if",
	"¡claro!",
	"aquí tienes",
	"por supuesto",
}

// Sanitize turns raw model output into publishable markup: code fences go,
// any conversational preamble before the first tag goes, known filler
// phrases go, and the result is trimmed. Best effort only; the model does
// not reliably follow the output-only-markup instruction.
func Sanitize(raw string) string {
	text := llm.StripFences(raw)
	if idx := firstTagIndex(text); idx > 0 {
		text = text[idx:]
	}
	lower := strings.ToLower(text)
	for _, phrase := range fillerPhrases {
		for {
			pos := strings.Index(lower, phrase)
			if pos < 0 {
				break
			}
			text = text[:pos] + text[pos+len(phrase):]
			lower = lower[:pos] + lower[pos+len(phrase):]
		}
	}
	return strings.TrimSpace(text)
}

// firstTagIndex finds the first markup tag opening, so leading prose like
// "Here is your article:" can be cut.
func firstTagIndex(text string) int {
	for i := 0; i < len(text)-1; i++ {
		if text[i] != '<' {
			continue
		}
		next := text[i+1]
		if (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
			return i
		}
	}
	return -1
}
