package tokenlist

import "regexp"

// inputKey recognizes a leading input key in a raw text body:
// `input: ...`, `input=...`, `"input": ...` or `'input' = ...`.
var inputKey = regexp.MustCompile(`^\s*(?:"input"|'input'|input)\s*[:=]\s*`)

// ExtractKeyed returns the list text of a raw body. If the body starts with
// an input key, everything after the key is the list; otherwise the whole
// body is. found reports whether a key was present.
func ExtractKeyed(body string) (text string, found bool) {
	loc := inputKey.FindStringIndex(body)
	if loc == nil {
		return body, false
	}
	return body[loc[1]:], true
}
