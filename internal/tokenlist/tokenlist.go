// Package tokenlist splits a delimited string into discrete tokens while
// honoring quoted spans and backslash escapes.
//
// The scan is a single left-to-right pass:
//
//   - outside quotes, ',' ends a token and '"' or '\'' opens a quoted span;
//   - inside a span, the matching quote closes it and '\' copies the next
//     character literally;
//   - unbalanced quotes are allowed, the open span runs to end of input.
//
// Tokens are trimmed, and one wrapping pair of matching quotes left on a
// token is stripped in a second pass. Empty tokens are dropped; order and
// duplicates are preserved.
package tokenlist

import (
	"strings"

	"github.com/roach88/dayshift/internal/inputerr"
)

// TokenList is the result of a split: {"items": [...]}.
type TokenList struct {
	Items []string `json:"items"`
}

// Parse tokenizes in. Text input is scanned; Items are only trimmed.
func Parse(in Input) (TokenList, error) {
	switch v := in.(type) {
	case Text:
		return TokenList{Items: Split(string(v))}, nil
	case Items:
		return TokenList{Items: keep(v)}, nil
	default:
		return TokenList{}, inputerr.Parse(inputerr.ErrCodeInvalidList, "input", "unsupported list input")
	}
}

// Split runs the quote-aware scan over text and then the quote-strip pass.
// The result is never nil.
func Split(text string) []string {
	raw := scan(text)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if tok = stripWrapping(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// scan splits text on unquoted commas. Returned tokens are trimmed and
// non-empty. Every delimiter is ASCII, so the scan walks bytes and leaves
// invalid UTF-8 untouched.
func scan(text string) []string {
	var (
		tokens []string
		buf    strings.Builder
		quote  byte // 0 outside a quoted span
		escape bool
	)
	flush := func() {
		if tok := strings.TrimSpace(buf.String()); tok != "" {
			tokens = append(tokens, tok)
		}
		buf.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escape:
			buf.WriteByte(c)
			escape = false
		case quote != 0 && c == '\\':
			escape = true
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
			buf.WriteByte(c)
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			flush()
		default:
			buf.WriteByte(c)
		}
	}
	if escape {
		// a trailing backslash has nothing to escape
		buf.WriteByte('\\')
	}
	flush()
	return tokens
}

// stripWrapping removes one pair of matching quotes around tok and trims
// again.
func stripWrapping(tok string) string {
	if len(tok) >= 2 {
		first, last := tok[0], tok[len(tok)-1]
		if (first == '"' || first == '\'') && first == last {
			return strings.TrimSpace(tok[1 : len(tok)-1])
		}
	}
	return tok
}
