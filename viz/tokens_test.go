package viz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeMarkup(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a&b", `a\&b`},
		{"100%", `100\%`},
		{"$x$", `\$x\$`},
		{"#tag", `\#tag`},
		{"snake_case", `snake\_case`},
		{"{brace}", `\{brace\}`},
		{`back\slash`, `back\\slash`},
		{"& % $ # _ { } " + `\`, `\& \% \$ \# \_ \{ \} \\`},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeMarkup(tc.in))
		})
	}
}

func TestEscapeMarkupRoundTrip(t *testing.T) {
	inputs := []string{"a&b_c", `\raw`, "{x} 50% of #1", "nothing special here"}
	for _, in := range inputs {
		assert.Equal(t, in, unescapeMarkup(EscapeMarkup(in)), "round trip of %q", in)
	}
}

// unescapeMarkup strips the escapes EscapeMarkup inserts, in reverse order.
func unescapeMarkup(s string) string {
	for i := len(markupSpecials) - 1; i >= 0; i-- {
		s = strings.ReplaceAll(s, `\`+markupSpecials[i], markupSpecials[i])
	}
	return s
}

func TestDecodeTokens(t *testing.T) {
	vocab := map[int]string{1: "hello", 2: "_world", 3: "50%"}
	dec := TokenDecoderFunc(func(id int) (string, error) {
		text, ok := vocab[id]
		if !ok {
			return "", fmt.Errorf("unknown id %d", id)
		}
		return text, nil
	})

	tokens, err := DecodeTokens([]int{1, 2, 3}, dec)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", `\_world`, `50\%`}, tokens)
}

func TestDecodeTokensPropagatesDecoderError(t *testing.T) {
	sentinel := errors.New("bad vocab")
	dec := TokenDecoderFunc(func(id int) (string, error) {
		return "", sentinel
	})
	_, err := DecodeTokens([]int{7}, dec)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "decode token 7")
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken(" abc "))
	// NFKC folds the full-width form.
	assert.Equal(t, "ABC", NormalizeToken("ＡＢＣ"))
	assert.Equal(t, "ab", NormalizeToken("a\x00b"))
	assert.Equal(t, []string{"a", "b"}, NormalizeTokens([]string{" a", "b "}))
}
