// File path: internal/llm/output.go
package llm

import (
	"errors"
	"strings"
)

// ErrNoJSON indicates the model output held no extractable JSON document.
var ErrNoJSON = errors.New("no json document found in model output")

// StripFences removes markdown code-fence lines the model wraps around its
// output despite instructions not to.
func StripFences(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// ExtractJSON locates the first JSON object or array in the text and returns
// the substring from its opening brace to the matching closer, tolerating
// conversational prose around it. String escapes are honoured while
// matching.
func ExtractJSON(text string) (string, error) {
	cleaned := StripFences(text)
	start := -1
	var open, close byte
	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] == '{' || cleaned[i] == '[' {
			start = i
			open = cleaned[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", ErrNoJSON
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}
