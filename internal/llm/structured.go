package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks a decoded value after JSON extraction.
type Validator[T any] func(T) error

// ExtractJSON pulls the first JSON object out of raw model output and
// decodes it into T. Markdown fences, surrounding prose and // or /* */
// comments are tolerated. A non-nil validate runs on the decoded value.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	block := firstObject(unfence(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var out T
	if err := json.Unmarshal([]byte(dropComments(block)), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(out); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// TrimProse cleans free-text model output: fences are removed along with
// surrounding whitespace.
func TrimProse(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	return strings.TrimSpace(unfence(s))
}

// unfence drops markdown fence lines and keeps everything else.
func unfence(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scanner tracks whether a byte position is inside a JSON string literal.
type scanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it belongs to a string literal
// (including the quotes themselves).
func (sc *scanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return true
	case sc.inString && c == '\\':
		sc.escaped = true
		return true
	case c == '"':
		sc.inString = !sc.inString
		return true
	default:
		return sc.inString
	}
}

// firstObject returns the first balanced {...} block in s, or "".
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	var sc scanner
	depth := 0
	for i := start; i < len(s); i++ {
		if sc.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// dropComments removes line and block comments outside string literals.
func dropComments(s string) string {
	var (
		b  strings.Builder
		sc scanner
	)
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) {
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end == -1 {
					return b.String()
				}
				i += end + 3
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
