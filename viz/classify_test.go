package viz

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numericValues(n int) []Value {
	out := make([]Value, n)
	for i := range out {
		out[i] = Number(float64(i))
	}
	return out
}

func TestClassifyColorKeyBoundary(t *testing.T) {
	// 19 distinct numeric values stay categorical, 20 become continuous.
	c := ClassifyColorKey(numericValues(19))
	assert.Equal(t, ModeCategorical, c.Mode)
	assert.Len(t, c.Values, 19)

	c = ClassifyColorKey(numericValues(20))
	assert.Equal(t, ModeContinuous, c.Mode)
	assert.Empty(t, c.Values)
}

func TestClassifyColorKeyTextIsAlwaysCategorical(t *testing.T) {
	values := make([]Value, 0, 25)
	for i := 0; i < 25; i++ {
		values = append(values, Text(fmt.Sprintf("cluster-%02d", i)))
	}
	c := ClassifyColorKey(values)
	assert.Equal(t, ModeCategorical, c.Mode)
	assert.Len(t, c.Values, 25)
}

func TestClassifyColorKeySortsDistinctValues(t *testing.T) {
	c := ClassifyColorKey([]Value{Text("b"), Text("a"), Text("b"), Text("c")})
	require.Equal(t, ModeCategorical, c.Mode)
	keys := make([]string, len(c.Values))
	for i, v := range c.Values {
		keys[i] = v.Key()
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	c = ClassifyColorKey([]Value{Number(10), Number(2), Number(10)})
	require.Equal(t, ModeCategorical, c.Mode)
	assert.Equal(t, 2.0, c.Values[0].Number)
	assert.Equal(t, 10.0, c.Values[1].Number)
}

func scoreTable(t *testing.T, rows []struct {
	score   float64
	cluster Value
}) *Table {
	t.Helper()
	tbl := NewTable("head", "layer", "score", "cluster")
	for i, r := range rows {
		require.NoError(t, tbl.AppendRow(Number(float64(i%8)), Number(float64(i/8)), Number(r.score), r.cluster))
	}
	return tbl
}

func TestFilterTopKPerCategory(t *testing.T) {
	var rows []struct {
		score   float64
		cluster Value
	}
	for _, cluster := range []string{"a", "b", "c"} {
		for i := 1; i <= 5; i++ {
			sign := 1.0
			if i%2 == 0 {
				sign = -1
			}
			rows = append(rows, struct {
				score   float64
				cluster Value
			}{sign * float64(i) / 10, Text(cluster)})
		}
	}
	tbl := scoreTable(t, rows)
	class := classifyTableColumn(t, tbl, "cluster")
	require.Equal(t, ModeCategorical, class.Mode)

	filtered, err := FilterTopK(tbl, "score", "cluster", 2, class)
	require.NoError(t, err)
	assert.Equal(t, 6, filtered.Len(), "2 rows per each of 3 categories")

	scores, err := filtered.Floats("score")
	require.NoError(t, err)
	clusters, err := filtered.Column("cluster")
	require.NoError(t, err)
	perCategory := map[string]int{}
	for i := range scores {
		perCategory[clusters[i].Key()]++
		// The two largest magnitudes in each category are 0.5 and 0.4.
		assert.GreaterOrEqual(t, math.Abs(scores[i]), 0.4)
	}
	for cat, n := range perCategory {
		assert.LessOrEqual(t, n, 2, "category %s", cat)
	}

	// The caller's table is untouched.
	assert.Equal(t, 15, tbl.Len())
}

func TestFilterTopKGlobalForContinuous(t *testing.T) {
	var rows []struct {
		score   float64
		cluster Value
	}
	for i := 0; i < 25; i++ {
		rows = append(rows, struct {
			score   float64
			cluster Value
		}{float64(i) - 12, Number(float64(i))})
	}
	tbl := scoreTable(t, rows)
	class := classifyTableColumn(t, tbl, "cluster")
	require.Equal(t, ModeContinuous, class.Mode)

	filtered, err := FilterTopK(tbl, "score", "cluster", 4, class)
	require.NoError(t, err)
	require.Equal(t, 4, filtered.Len())

	scores, err := filtered.Floats("score")
	require.NoError(t, err)
	// Largest magnitudes are -12, 12, -11, 11.
	for _, s := range scores {
		assert.GreaterOrEqual(t, math.Abs(s), 11.0)
	}
	assert.Equal(t, 25, tbl.Len())
}

func TestFilterTopKLargerThanGroup(t *testing.T) {
	tbl := scoreTable(t, []struct {
		score   float64
		cluster Value
	}{{0.1, Text("a")}, {0.2, Text("a")}})
	class := classifyTableColumn(t, tbl, "cluster")

	filtered, err := FilterTopK(tbl, "score", "cluster", 10, class)
	require.NoError(t, err)
	assert.Equal(t, 2, filtered.Len())
}

func TestFilterTopKZeroKeepsEverything(t *testing.T) {
	tbl := scoreTable(t, []struct {
		score   float64
		cluster Value
	}{{0.1, Text("a")}, {0.2, Text("b")}})
	class := classifyTableColumn(t, tbl, "cluster")

	filtered, err := FilterTopK(tbl, "score", "cluster", 0, class)
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), filtered.Len())
}

func classifyTableColumn(t *testing.T, tbl *Table, name string) ColorKeyClass {
	t.Helper()
	col, err := tbl.Column(name)
	require.NoError(t, err)
	return ClassifyColorKey(col)
}
