package viz

import (
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// HFDecoder adapts a HuggingFace tokenizer.json to the TokenDecoder
// interface, decoding one id at a time with special tokens skipped.
type HFDecoder struct {
	tk *tokenizer.Tokenizer
}

// NewHFDecoder wraps an already constructed tokenizer.
func NewHFDecoder(tk *tokenizer.Tokenizer) *HFDecoder {
	return &HFDecoder{tk: tk}
}

// NewHFDecoderFromFile loads a tokenizer.json from disk.
func NewHFDecoderFromFile(path string) (*HFDecoder, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", path, err)
	}
	return &HFDecoder{tk: tk}, nil
}

// DecodeToken returns the normalized text form of a single token id.
func (d *HFDecoder) DecodeToken(id int) (string, error) {
	if d == nil || d.tk == nil {
		return "", fmt.Errorf("tokenizer is not initialized")
	}
	return NormalizeToken(d.tk.Decode([]int{id}, true)), nil
}
