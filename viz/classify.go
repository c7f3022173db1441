package viz

import (
	"fmt"
	"math"
	"sort"
)

// ColorMode tags how a color-key column is interpreted.
type ColorMode int

const (
	// ModeCategorical maps distinct values onto a fixed cyclic palette.
	ModeCategorical ColorMode = iota
	// ModeContinuous maps raw values through a continuous gradient.
	ModeContinuous
)

// categoricalDistinctLimit is the distinct-value count below which a numeric
// column is still treated as categorical.
const categoricalDistinctLimit = 20

// ColorKeyClass is the result of classifying a color-key column.
// Categorical classes carry the sorted distinct values.
type ColorKeyClass struct {
	Mode   ColorMode
	Values []Value
}

// ClassifyColorKey decides the color mode once, decoupled from rendering:
// categorical when any value is non-numeric or the distinct count is below
// the limit, continuous otherwise.
func ClassifyColorKey(values []Value) ColorKeyClass {
	numeric := true
	distinct := make(map[string]Value)
	for _, v := range values {
		if !v.IsNumber {
			numeric = false
		}
		distinct[v.Key()] = v
	}
	if numeric && len(distinct) >= categoricalDistinctLimit {
		return ColorKeyClass{Mode: ModeContinuous}
	}
	vals := make([]Value, 0, len(distinct))
	for _, v := range distinct {
		vals = append(vals, v)
	}
	sort.Slice(vals, func(i, j int) bool {
		a, b := vals[i], vals[j]
		if a.IsNumber && b.IsNumber {
			return a.Number < b.Number
		}
		return a.Key() < b.Key()
	})
	return ColorKeyClass{Mode: ModeCategorical, Values: vals}
}

// FilterTopK keeps the k largest-|score| rows, per distinct color-key value
// when the classification is categorical and globally otherwise. k <= 0
// keeps everything. The input table is never mutated.
func FilterTopK(t *Table, scoreCol, colorCol string, k int, class ColorKeyClass) (*Table, error) {
	if k <= 0 {
		return t.Clone(), nil
	}
	scores, err := t.Floats(scoreCol)
	if err != nil {
		return nil, err
	}
	if class.Mode != ModeCategorical {
		return t.selectRows(topIndices(scores, allIndices(t.Len()), k)), nil
	}
	keys, err := t.Column(colorCol)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]int)
	for i, v := range keys {
		groups[v.Key()] = append(groups[v.Key()], i)
	}
	var kept []int
	for _, v := range class.Values {
		kept = append(kept, topIndices(scores, groups[v.Key()], k)...)
	}
	return t.selectRows(kept), nil
}

// topIndices returns at most k of the given row indices ordered by
// descending |score|, ties broken by original position.
func topIndices(scores []float64, indices []int, k int) []int {
	out := append([]int(nil), indices...)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(scores[out[i]]) > math.Abs(scores[out[j]])
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// String implements fmt.Stringer for log output.
func (m ColorMode) String() string {
	switch m {
	case ModeCategorical:
		return "categorical"
	case ModeContinuous:
		return "continuous"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}
