package pager

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

type fakeSurface struct {
	viewport fyne.Size
	content  fyne.Size
	offset   float32
}

func (s *fakeSurface) ViewportSize() fyne.Size       { return s.viewport }
func (s *fakeSurface) ContentOffset() float32        { return s.offset }
func (s *fakeSurface) SetContentOffset(x float32)    { s.offset = x }
func (s *fakeSurface) ContentSize() fyne.Size        { return s.content }
func (s *fakeSurface) SetContentSize(size fyne.Size) { s.content = size }

type call struct {
	ref, reusable fyne.CanvasObject
}

// countingSource hands out rectangles, reusing the offered page when reuse
// is set, and records every call.
type countingSource struct {
	reuse    bool
	limit    int // pages created before answering nil, 0 for no limit
	created  int
	after    []call
	before   []call
	released []fyne.CanvasObject
}

func (s *countingSource) page(reusable fyne.CanvasObject) fyne.CanvasObject {
	if s.reuse && reusable != nil {
		return reusable
	}
	if s.limit > 0 && s.created >= s.limit {
		return nil
	}
	s.created++
	return canvas.NewRectangle(color.Gray{Y: uint8(s.created)})
}

func (s *countingSource) PageAfter(page, reusable fyne.CanvasObject) fyne.CanvasObject {
	s.after = append(s.after, call{page, reusable})
	return s.page(reusable)
}

func (s *countingSource) PageBefore(page, reusable fyne.CanvasObject) fyne.CanvasObject {
	s.before = append(s.before, call{page, reusable})
	return s.page(reusable)
}

func (s *countingSource) PageReleased(page fyne.CanvasObject) {
	s.released = append(s.released, page)
}

func newTestEngine(ds Datasource, pageSize fyne.Size) *engine {
	cfg := DefaultConfig()
	cfg.PageWidth, cfg.PageHeight = pageSize.Width, pageSize.Height
	e := newEngine(cfg)
	e.ds = ds
	return e
}

func checkContiguous(t *testing.T, e *engine) {
	t.Helper()
	for i := 1; i < len(e.window.slots); i++ {
		prev, cur := e.window.slots[i-1], e.window.slots[i]
		if prev.right() != cur.x {
			t.Fatalf("slots %d and %d are not contiguous: %v + %v != %v", i-1, i, prev.x, prev.width, cur.x)
		}
	}
}

func TestTile_FreshPageNeedsNoGrowth(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.Size{})
	s := &fakeSurface{viewport: fyne.NewSize(320, 100)}

	a := canvas.NewRectangle(color.White)
	e.setPage(s, a)

	if e.window.len() != 1 || e.window.first().page != a || e.window.first().x != 0 || e.window.first().width != 320 {
		t.Fatalf("expected [A@0,w=320], got %+v", e.window.slots)
	}

	e.tile(0, 320)
	if len(ds.after) != 0 || len(ds.before) != 0 {
		t.Fatalf("expected no datasource calls, got %d after / %d before", len(ds.after), len(ds.before))
	}
	if e.pool.len() != 0 {
		t.Fatalf("expected empty pool, got %d", e.pool.len())
	}
}

func TestTile_GrowsRightThenRecyclesAndReuses(t *testing.T) {
	ds := &countingSource{reuse: true}
	e := newTestEngine(ds, fyne.Size{})
	s := &fakeSurface{viewport: fyne.NewSize(320, 100)}

	a := canvas.NewRectangle(color.White)
	e.setPage(s, a)

	e.tile(160, 480)
	if len(ds.after) != 1 || ds.after[0].ref != a || ds.after[0].reusable != nil {
		t.Fatalf("expected one PageAfter(A, nil), got %+v", ds.after)
	}
	if e.window.len() != 2 || e.window.first().page != a || e.window.last().x != 320 {
		t.Fatalf("expected A kept and B at 320, got %+v", e.window.slots)
	}
	b := e.window.last().page

	e.tile(400, 720)
	if e.pool.len() != 1 || e.pool.first() != a {
		t.Fatalf("expected A in the pool, got %v", e.pool.pages)
	}
	if e.window.first().page != b {
		t.Fatalf("expected B to be first after A left, got %+v", e.window.slots)
	}
	if e.states[a] != statePooled {
		t.Fatalf("expected A tagged pooled, got %v", e.states[a])
	}

	e.tile(700, 1020)
	last := ds.after[len(ds.after)-1]
	if last.reusable != a {
		t.Fatalf("expected A offered for reuse, got %v", last.reusable)
	}
	if e.window.last().page != a || e.states[a] != stateVisible {
		t.Fatalf("expected A mounted again at the right edge, got %+v", e.window.slots)
	}
	if e.pool.contains(a) {
		t.Fatal("A must leave the pool once it is mounted")
	}
	checkContiguous(t, e)
}

func TestTile_GrowsLeft(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.NewSize(100, 50))
	s := &fakeSurface{viewport: fyne.NewSize(300, 50)}

	a := canvas.NewRectangle(color.White)
	e.setPage(s, a)
	e.tile(-250, 50)

	if len(ds.before) != 3 {
		t.Fatalf("expected 3 PageBefore calls, got %d", len(ds.before))
	}
	if ds.before[0].ref != a {
		t.Fatal("expected the first PageBefore to reference A")
	}
	if got := e.window.first().x; got != -300 {
		t.Fatalf("expected first page at -300, got %v", got)
	}
	if e.window.last().page != a {
		t.Fatal("expected A to stay the rightmost page")
	}
	checkContiguous(t, e)
}

func TestTile_TrimsPoolOldestFirst(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.NewSize(100, 50))
	s := &fakeSurface{viewport: fyne.NewSize(400, 50)}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.tile(0, 400)
	if e.window.len() != 4 {
		t.Fatalf("expected 4 pages covering [0,400), got %d", e.window.len())
	}
	pages := e.window.pages()

	e.tile(350, 450)
	if e.pool.len() != DefaultReuseCapacity {
		t.Fatalf("expected the pool trimmed to %d, got %d", DefaultReuseCapacity, e.pool.len())
	}
	if len(ds.released) != 1 || ds.released[0] != pages[0] {
		t.Fatalf("expected the oldest page released, got %v", ds.released)
	}
	if e.pool.pages[0] != pages[1] || e.pool.pages[1] != pages[2] {
		t.Fatalf("expected pool [B C], got %v", e.pool.pages)
	}
	if _, tracked := e.states[pages[0]]; tracked {
		t.Fatal("released pages must not stay in the state table")
	}
}

func TestTile_KeepsPagesOnExactEdges(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.NewSize(100, 50))
	s := &fakeSurface{viewport: fyne.NewSize(100, 50)}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.tile(0, 200)
	if e.window.len() != 2 {
		t.Fatalf("expected 2 pages, got %d", e.window.len())
	}

	// The first page ends at 100 and the second starts at 100: both stay.
	e.tile(100, 100)
	if e.window.len() != 2 || e.pool.len() != 0 {
		t.Fatalf("expected no recycling on exact edges, got %d visible %d pooled", e.window.len(), e.pool.len())
	}
}

func TestTile_EmptyWindowIsNoop(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.Size{})
	s := &fakeSurface{viewport: fyne.NewSize(320, 100)}

	e.layout(s)
	e.tile(-1000, 1000)
	if len(ds.after)+len(ds.before) != 0 || !e.window.empty() {
		t.Fatal("expected no tiling without a seed page")
	}
}

func TestTile_StopsWhenDatasourceIsExhausted(t *testing.T) {
	ds := &countingSource{limit: 2}
	e := newTestEngine(ds, fyne.NewSize(100, 50))
	s := &fakeSurface{viewport: fyne.NewSize(100, 50)}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.tile(-500, 500)

	if e.window.len() != 3 {
		t.Fatalf("expected the seed plus 2 pages, got %d", e.window.len())
	}
	checkContiguous(t, e)
}

type selfSource struct{}

func (selfSource) PageBefore(page, _ fyne.CanvasObject) fyne.CanvasObject { return page }
func (selfSource) PageAfter(page, _ fyne.CanvasObject) fyne.CanvasObject  { return page }

func TestTile_RejectsAlreadyMountedPage(t *testing.T) {
	e := newTestEngine(selfSource{}, fyne.NewSize(100, 50))
	s := &fakeSurface{viewport: fyne.NewSize(100, 50)}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.tile(-300, 300)
	if e.window.len() != 1 {
		t.Fatalf("expected the mounted page not to be placed twice, got %d slots", e.window.len())
	}
}

func TestTile_ZeroWidthPagesDoNotTile(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.Size{})
	s := &fakeSurface{}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.tile(0, 10)
	if len(ds.after)+len(ds.before) != 0 {
		t.Fatal("expected no requests while the page width is zero")
	}
}

func TestReset_IsIdempotent(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.NewSize(100, 50))
	s := &fakeSurface{viewport: fyne.NewSize(250, 50)}

	var mounted []fyne.CanvasObject
	e.mount = func(o fyne.CanvasObject) { mounted = append(mounted, o) }
	e.unmount = func(o fyne.CanvasObject) {
		for i, m := range mounted {
			if m == o {
				mounted = append(mounted[:i], mounted[i+1:]...)
				return
			}
		}
	}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.tile(0, 250)
	e.tile(150, 400)
	known := e.window.len() + e.pool.len()
	s.offset = 1234

	e.reset(s)
	e.reset(s)

	if !e.window.empty() || e.pool.len() != 0 || len(e.states) != 0 {
		t.Fatalf("expected empty state, got %d visible %d pooled %d tracked", e.window.len(), e.pool.len(), len(e.states))
	}
	if s.offset != 0 {
		t.Fatalf("expected offset reset to 0, got %v", s.offset)
	}
	if len(mounted) != 0 {
		t.Fatalf("expected every page unmounted, %d left", len(mounted))
	}
	if len(ds.released) != known {
		t.Fatalf("expected %d pages released once each, got %d", known, len(ds.released))
	}
}

func TestLayout_RecentersWithoutMovingPagesOnScreen(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.Size{})
	s := &fakeSurface{viewport: fyne.NewSize(320, 100)}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.layout(s)
	if s.offset != 4960 || e.window.first().x != 4960 {
		t.Fatalf("expected the first pass to centre the seed page, got offset %v page %v", s.offset, e.window.first().x)
	}

	// Drift far to the right, tile there, then let a pass recenter.
	s.offset = 4960 + 9*320 + 17
	e.tile(s.offset, s.offset+320)

	before := map[fyne.CanvasObject]float32{}
	for _, sl := range e.window.slots {
		before[sl.page] = sl.x - s.offset
	}

	delta := e.layout(s)
	if delta == 0 {
		t.Fatal("expected a recenter")
	}
	if s.offset != 4960 {
		t.Fatalf("expected offset back at the centre, got %v", s.offset)
	}
	for _, sl := range e.window.slots {
		was, ok := before[sl.page]
		if !ok {
			continue
		}
		if got := sl.x - s.offset; math.Abs(float64(got-was)) > 0.001 {
			t.Fatalf("page moved on screen from %v to %v", was, got)
		}
	}
}

func TestLayout_ResizeKeepsPositionWithinPage(t *testing.T) {
	ds := &countingSource{}
	e := newTestEngine(ds, fyne.Size{})
	s := &fakeSurface{viewport: fyne.NewSize(320, 100)}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.layout(s)

	s.offset = 4960 + 480
	e.layout(s)
	first := e.window.first()
	if first.x != 5280 || s.offset-first.x != 160 {
		t.Fatalf("expected half way into the page at 5280, got page %v offset %v", first.x, s.offset)
	}

	s.viewport = fyne.NewSize(640, 100)
	e.layout(s)

	if s.content.Width != 640*DefaultSpaceMultiplier {
		t.Fatalf("expected content width to follow the viewport, got %v", s.content.Width)
	}
	if e.window.first().page != first.page || e.window.first().x != 5280 {
		t.Fatalf("expected the same first page at 5280, got %+v", e.window.first())
	}
	if e.window.first().width != 640 {
		t.Fatalf("expected pages resized to 640, got %v", e.window.first().width)
	}
	if s.offset != 5600 {
		t.Fatalf("expected offset scaled to half of the new page width, got %v", s.offset)
	}
	checkContiguous(t, e)
}

func TestLayout_RandomWalkKeepsInvariants(t *testing.T) {
	ds := &countingSource{reuse: true}
	e := newTestEngine(ds, fyne.NewSize(150, 80))
	s := &fakeSurface{viewport: fyne.NewSize(400, 80)}

	e.setPage(s, canvas.NewRectangle(color.White))
	e.layout(s)

	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		s.offset += float32(rnd.Intn(1601) - 800)
		if i%97 == 0 {
			s.viewport = fyne.NewSize(float32(200+rnd.Intn(400)), 80)
		}
		e.layout(s)

		checkContiguous(t, e)
		if e.pool.len() > DefaultReuseCapacity {
			t.Fatalf("step %d: pool grew to %d", i, e.pool.len())
		}
		minX, maxX := s.offset, s.offset+s.viewport.Width
		if e.window.first().x > minX || e.window.last().right() < maxX {
			t.Fatalf("step %d: [%v,%v) not covered by [%v,%v)", i, minX, maxX, e.window.first().x, e.window.last().right())
		}
		for _, sl := range e.window.slots {
			if e.states[sl.page] != stateVisible {
				t.Fatalf("step %d: mounted page tagged %v", i, e.states[sl.page])
			}
		}
		for _, page := range e.pool.pages {
			if e.states[page] != statePooled {
				t.Fatalf("step %d: pooled page tagged %v", i, e.states[page])
			}
		}
	}
}
