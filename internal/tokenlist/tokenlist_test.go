package tokenlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"mixed quotes", `"id1", "id2", 'id 3'`, []string{"id1", "id2", "id 3"}},
		{"escaped quote", `"a\"b",c`, []string{`a"b`, "c"}},
		{"empty entry dropped", `"a",, "b"`, []string{"a", "b"}},
		{"bare words", `a, b ,c`, []string{"a", "b", "c"}},
		{"duplicates kept", `x,x,"x"`, []string{"x", "x", "x"}},
		{"comma inside quotes", `"a,b",c`, []string{"a,b", "c"}},
		{"other quote is literal inside span", `'say "hi"',"it's"`, []string{`say "hi"`, "it's"}},
		{"backslash outside quotes is literal", `a\b,c`, []string{`a\b`, "c"}},
		{"escaped backslash", `"a\\b"`, []string{`a\b`}},
		{"escaped comma", `"a\,b"`, []string{"a,b"}},
		{"quote mid token", `ab"c,d"e,f`, []string{"abc,de", "f"}},
		{"unterminated span runs to end", `a,"b,c`, []string{"a", "b,c"}},
		{"trailing backslash kept", `"a\`, []string{`a\`}},
		{"whitespace only entries dropped", ` , ,"  ", `, []string{}},
		{"empty", ``, []string{}},
		{"nested quotes stripped in second pass", `'"x"'`, []string{"x"}},
		{"second pass trims", `'" x "'`, []string{"x"}},
		{"second pass strips one layer only", `'"\'y\'"'`, []string{"'y'"}},
		{"mismatched wrapping kept", `'"x\''`, []string{`"x'`}},
		{"unicode", `"héllo", wörld`, []string{"héllo", "wörld"}},
		{"escaped multibyte character", `"\é", x`, []string{"é", "x"}},
		{"invalid utf-8 kept", "a\xffb,c", []string{"a\xffb", "c"}},
		{"invalid utf-8 inside quotes", "'\xfe\xff', d", []string{"\xfe\xff", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text))
		})
	}
}

func TestSplitKeepsOrder(t *testing.T) {
	assert.Equal(t, []string{"c", "a", "b", "a"}, Split("c,a,b,a"))
}

func TestSplitMatchesItemsOnInvalidUTF8(t *testing.T) {
	text, err := Parse(Text("a\xffb,c"))
	require.NoError(t, err)
	items, err := Parse(Items{"a\xffb", "c"})
	require.NoError(t, err)
	assert.Equal(t, items, text)
}

func TestParse(t *testing.T) {
	got, err := Parse(Text(`"id1", "id2", 'id 3'`))
	require.NoError(t, err)
	assert.Equal(t, TokenList{Items: []string{"id1", "id2", "id 3"}}, got)

	got, err = Parse(Items{" a ", "", `"b"`, "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", `"b"`, "a"}, got.Items, "items are not quote-processed")

	got, err = Parse(Items{})
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestInputFrom(t *testing.T) {
	in, err := InputFrom(ir.IRString("a,b"))
	require.NoError(t, err)
	assert.Equal(t, Text("a,b"), in)

	in, err = InputFrom(ir.IRArray{
		ir.IRString(" x "),
		ir.IRInt(42),
		ir.IRNumber("1.50"),
		ir.IRBool(true),
		ir.IRNull{},
		ir.IRString(""),
	})
	require.NoError(t, err)
	assert.Equal(t, Items{" x ", "42", "1.50", "true", ""}, in)

	list, err := Parse(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "42", "1.50", "true"}, list.Items)
}

func TestInputFromRejects(t *testing.T) {
	tests := []struct {
		name    string
		value   ir.IRValue
		message string
	}{
		{"number", ir.IRInt(1), "input must be a string or an array of strings, got number"},
		{"object", ir.IRObject{}, "input must be a string or an array of strings, got object"},
		{"null", ir.IRNull{}, "input must be a string or an array of strings, got null"},
		{"nested array", ir.IRArray{ir.IRString("a"), ir.IRArray{}}, "input[1] must be a string, number, or boolean, got array"},
		{"nested object", ir.IRArray{ir.IRObject{}}, "input[0] must be a string, number, or boolean, got object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InputFrom(tt.value)
			require.Error(t, err)
			assert.Equal(t, inputerr.ErrCodeInvalidList, inputerr.CodeOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestExtractKeyed(t *testing.T) {
	tests := []struct {
		body      string
		wantText  string
		wantFound bool
	}{
		{`input: "id1", "id2", 'id 3'`, `"id1", "id2", 'id 3'`, true},
		{`input=a,b`, `a,b`, true},
		{`  "input" : a`, `a`, true},
		{`'input'=a`, `a`, true},
		{`a,b`, `a,b`, false},
		{`inputs: a`, `inputs: a`, false},
		{`x input: a`, `x input: a`, false},
		{`input`, `input`, false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			text, found := ExtractKeyed(tt.body)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestKeyedBodyScenario(t *testing.T) {
	text, _ := ExtractKeyed(`input: "id1", "id2", 'id 3'`)
	assert.Equal(t, []string{"id1", "id2", "id 3"}, Split(text))
}
