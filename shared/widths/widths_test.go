package widths_test

import (
	"testing"

	"github.com/dracory/gridbase/shared/widths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runeCountMeasurer reports one pixel per rune, which makes expected
// widths easy to reason about in tests.
type runeCountMeasurer struct{}

func (runeCountMeasurer) MeasureWidth(text string, _ widths.Font) float64 {
	return float64(len([]rune(text)))
}

func grid(rows ...[]string) *widths.Grid {
	g := &widths.Grid{Font: widths.Font{Size: 14}}
	for _, values := range rows {
		row := &widths.Row{}
		for _, v := range values {
			row.Cells = append(row.Cells, widths.Cell{Display: v})
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

func TestGetComputesOnMiss(t *testing.T) {
	memo := widths.NewMemo(runeCountMeasurer{})
	g := grid(
		[]string{"a", "bbbb"},
		[]string{"ccc", "d"},
	)

	assert.Equal(t, 3.0, memo.Get(g, 0))
	assert.Equal(t, 4.0, memo.Get(g, 1))
}

func TestComputeReturnsPerColumnMax(t *testing.T) {
	memo := widths.NewMemo(runeCountMeasurer{})
	g := grid(
		[]string{"alpha", "x", "12"},
		[]string{"be", "yyyyyy", "3"},
		[]string{"c", "zz", "4567"},
	)

	got := memo.Compute(g)
	require.Len(t, got, 3)

	// Every visible cell's width must be covered by its column's entry.
	for _, row := range g.Rows {
		for i, cell := range row.Cells {
			assert.GreaterOrEqual(t, got[i], float64(len(cell.Display)))
		}
	}
	assert.Equal(t, []float64{5, 6, 4}, got)
}

func TestEditingCellUsesLiveValue(t *testing.T) {
	memo := widths.NewMemo(runeCountMeasurer{})
	g := grid([]string{"short"})
	g.Rows[0].Cells[0] = widths.Cell{
		Display: "short",
		Edit:    "a much longer live value",
		Editing: true,
	}

	assert.Equal(t, float64(len("a much longer live value")), memo.Get(g, 0))
}

func TestInvalidateForcesRecompute(t *testing.T) {
	memo := widths.NewMemo(runeCountMeasurer{})
	g := grid([]string{"aa"})

	assert.Equal(t, 2.0, memo.Get(g, 0))

	// Content changed; without invalidation the memo would serve the
	// stale width.
	g.Rows[0].Cells[0].Display = "aaaaaa"
	assert.Equal(t, 2.0, memo.Get(g, 0))

	memo.Invalidate(g)
	assert.Equal(t, 6.0, memo.Get(g, 0))
}

func TestRefreshRecomputesEagerly(t *testing.T) {
	memo := widths.NewMemo(runeCountMeasurer{})
	g := grid([]string{"aa", "b"})

	memo.Get(g, 0)
	g.Rows = append(g.Rows, &widths.Row{Cells: []widths.Cell{
		{Display: "cccc"}, {Display: "ddddd"},
	}})

	assert.Equal(t, []float64{4, 5}, memo.Refresh(g))
	assert.Equal(t, 5.0, memo.Get(g, 1))
}

func TestGridsHaveIndependentEntries(t *testing.T) {
	memo := widths.NewMemo(runeCountMeasurer{})
	g1 := grid([]string{"aaaa"})
	g2 := grid([]string{"bb"})

	assert.Equal(t, 4.0, memo.Get(g1, 0))
	assert.Equal(t, 2.0, memo.Get(g2, 0))

	memo.Invalidate(g1)
	g2.Rows[0].Cells[0].Display = "changed!!"

	// g2 was not invalidated, so its entry is untouched.
	assert.Equal(t, 2.0, memo.Get(g2, 0))
}

func TestColumnOutOfRangeIsZero(t *testing.T) {
	memo := widths.NewMemo(runeCountMeasurer{})
	g := grid([]string{"aa"})

	assert.Equal(t, 0.0, memo.Get(g, 5))
	assert.Equal(t, 0.0, memo.Get(g, -1))
}

func TestEmptyGrid(t *testing.T) {
	memo := widths.NewMemo(runeCountMeasurer{})
	g := &widths.Grid{}

	assert.Empty(t, memo.Compute(g))
	assert.Equal(t, 0.0, memo.Get(g, 0))
}

func TestDefaultMeasurerScalesWithFontSize(t *testing.T) {
	memo := widths.NewMemo(nil)
	small := &widths.Grid{Font: widths.Font{Size: 10}, Rows: []*widths.Row{
		{Cells: []widths.Cell{{Display: "hello world"}}},
	}}
	large := &widths.Grid{Font: widths.Font{Size: 20}, Rows: []*widths.Row{
		{Cells: []widths.Cell{{Display: "hello world"}}},
	}}

	assert.Greater(t, memo.Get(large, 0), memo.Get(small, 0))
	assert.InDelta(t, memo.Get(small, 0)*2, memo.Get(large, 0), 0.001)
}
