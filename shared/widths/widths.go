// Package widths memoizes the maximum rendered pixel width per column
// of a table render context, so input sizing does not have to re-measure
// every cell on every access. Entries are keyed by an explicit handle to
// the render context, never by table name, so two renders of the same
// table get independent entries.
package widths

import "sync"

// Font describes the text rendering context used for measurement.
type Font struct {
	Family string
	Size   float64 // pixels
}

// Cell is one rendered table cell: static display text plus the live
// editable value when the cell is in edit mode.
type Cell struct {
	Display string
	Edit    string
	Editing bool
}

// Text returns the value that participates in sizing: the live edit
// value while the cell is being edited, else its display text.
func (c Cell) Text() string {
	if c.Editing {
		return c.Edit
	}
	return c.Display
}

// Row is one rendered table row.
type Row struct {
	Cells []Cell
}

// Grid is the render context for one table. Memo entries are keyed by
// the *Grid pointer.
type Grid struct {
	Font Font
	Rows []*Row
}

// Measurer reports the rendered pixel width of text under a font.
// Implementations must be deterministic for a given text and font.
type Measurer interface {
	MeasureWidth(text string, font Font) float64
}

// Memo caches the maximum rendered width per column for each grid.
// An entry is absent until the first Get or Compute, dropped by
// Invalidate, and recomputed lazily on the next Get.
type Memo struct {
	mu       sync.Mutex
	measurer Measurer
	widths   map[*Grid][]float64
}

// NewMemo creates a memo using the given measurer. A nil measurer
// falls back to a deterministic font-metric approximation.
func NewMemo(m Measurer) *Memo {
	if m == nil {
		m = approxMeasurer{}
	}
	return &Memo{
		measurer: m,
		widths:   make(map[*Grid][]float64),
	}
}

// Get returns the memoized width for the column, computing every
// column's width first on a cache miss. Columns outside the grid
// report zero.
func (m *Memo) Get(g *Grid, column int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	widths, ok := m.widths[g]
	if !ok {
		widths = m.compute(g)
	}
	if column < 0 || column >= len(widths) {
		return 0
	}
	return widths[column]
}

// Invalidate drops every cached width for the grid. Any code path that
// adds, edits, or removes a rendered row must invalidate before the
// next Get.
func (m *Memo) Invalidate(g *Grid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.widths, g)
}

// Refresh invalidates and eagerly recomputes every column width.
func (m *Memo) Refresh(g *Grid) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.widths, g)
	return append([]float64(nil), m.compute(g)...)
}

// Compute measures every rendered cell and stores the per-column
// maximums. The column count derives from the first row.
func (m *Memo) Compute(g *Grid) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.compute(g)...)
}

func (m *Memo) compute(g *Grid) []float64 {
	var count int
	if len(g.Rows) > 0 {
		count = len(g.Rows[0].Cells)
	}

	widths := make([]float64, count)
	for i := 0; i < count; i++ {
		widths[i] = m.maxColumnTextWidth(g, i)
	}
	m.widths[g] = widths
	return widths
}

func (m *Memo) maxColumnTextWidth(g *Grid, column int) float64 {
	var max float64
	for _, row := range g.Rows {
		if column >= len(row.Cells) {
			continue
		}
		w := m.measurer.MeasureWidth(row.Cells[column].Text(), g.Font)
		if w > max {
			max = w
		}
	}
	return max
}
