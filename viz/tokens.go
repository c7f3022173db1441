package viz

import (
	"fmt"
	"strings"
)

// TokenDecoder maps a single token id to its text form.
type TokenDecoder interface {
	DecodeToken(id int) (string, error)
}

// TokenDecoderFunc adapts a plain function to the TokenDecoder interface.
type TokenDecoderFunc func(id int) (string, error)

// DecodeToken calls f.
func (f TokenDecoderFunc) DecodeToken(id int) (string, error) {
	return f(id)
}

// markupSpecials are the characters that trigger formatting in downstream
// markup/typesetting consumers. The backslash comes first so its own escape
// is applied before any escapes it introduces.
var markupSpecials = []string{`\`, "&", "%", "$", "#", "_", "{", "}"}

// EscapeMarkup prefixes every markup-sensitive character with a backslash,
// leaving all other characters unchanged.
func EscapeMarkup(s string) string {
	for _, special := range markupSpecials {
		s = strings.ReplaceAll(s, special, `\`+special)
	}
	return s
}

// DecodeTokens decodes each id and escapes the result so it is safe to embed
// in the heatmap rendering path or other markup consumers. Decoder errors
// propagate with the offending id.
func DecodeTokens(ids []int, dec TokenDecoder) ([]string, error) {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		text, err := dec.DecodeToken(id)
		if err != nil {
			return nil, fmt.Errorf("decode token %d: %w", id, err)
		}
		tokens[i] = EscapeMarkup(text)
	}
	return tokens, nil
}
