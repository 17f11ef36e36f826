// Package markup checks message text against Telegram's legacy Markdown
// parse mode before it is sent.
package markup

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxMessageChars      = 4096
	MaxCallbackDataBytes = 64
)

var escaper = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	"`", "\\`",
	`[`, `\[`,
)

// Escape makes s render literally outside of any entity.
func Escape(s string) string {
	return escaper.Replace(s)
}

func isSpecial(r rune) bool {
	return r == '_' || r == '*' || r == '`' || r == '['
}

// Validate reports the first reason Telegram would refuse to parse text.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("validation error: empty text")
	}
	if n := utf8.RuneCountInString(text); n > MaxMessageChars {
		return fmt.Errorf("validation error: length %d exceeds limit %d", n, MaxMessageChars)
	}

	rs := []rune(text)
	triple := func(i int) bool {
		return i+2 < len(rs) && rs[i] == '`' && rs[i+1] == '`' && rs[i+2] == '`'
	}

	var (
		open  rune // 0 outside entities, 'p' inside a pre block
		start int
	)
	for i := 0; i < len(rs); i++ {
		ch := rs[i]
		switch open {
		case 0:
			switch {
			case ch == '\\':
				if i+1 < len(rs) && isSpecial(rs[i+1]) {
					i++
				}
			case triple(i):
				open, start = 'p', i
				i += 2
			case isSpecial(ch):
				open, start = ch, i
			}
		case 'p':
			if triple(i) {
				open = 0
				i += 2
			}
		case '[':
			if ch != ']' {
				continue
			}
			if i+1 >= len(rs) || rs[i+1] != '(' {
				return fmt.Errorf("validation error: link at offset %d has no url", start)
			}
			end := indexRune(rs, ')', i+2)
			if end < 0 {
				return fmt.Errorf("validation error: link url at offset %d is not closed", start)
			}
			i = end
			open = 0
		default:
			if ch == open {
				open = 0
			}
		}
	}

	if open != 0 {
		marker := string(open)
		if open == 'p' {
			marker = "```"
		}
		return fmt.Errorf("validation error: unterminated %q entity at offset %d", marker, start)
	}
	return nil
}

// ValidateCallbackData checks a callback token against the Bot API limits.
func ValidateCallbackData(token string) error {
	if token == "" {
		return fmt.Errorf("validation error: empty callback data")
	}
	if len(token) > MaxCallbackDataBytes {
		return fmt.Errorf("validation error: callback data %d bytes exceeds limit %d", len(token), MaxCallbackDataBytes)
	}
	return nil
}

func indexRune(rs []rune, r rune, from int) int {
	for i := from; i < len(rs); i++ {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
