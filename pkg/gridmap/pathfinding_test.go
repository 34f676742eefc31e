package gridmap

import (
	"math/rand"
	"testing"
)

// bfsLength returns the node count of the shortest traversable path, or 0 when disconnected.
func bfsLength(g *Grid, start, goal Coord) int {
	dist := map[Coord]int{start: 1}
	queue := []Coord{start}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == goal {
			return dist[cur]
		}
		for _, n := range g.Neighbors(cur) {
			if _, seen := dist[n]; !seen {
				dist[n] = dist[cur] + 1
				queue = append(queue, n)
			}
		}
	}
	return 0
}

func randomGrid(rng *rand.Rand, width, height int, pathDensity float64) *Grid {
	g := NewGrid(width, height, 40)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := Coord{Row: row, Col: col}
			if c == g.Spawn || c == g.Base {
				continue
			}
			switch r := rng.Float64(); {
			case r < pathDensity:
				g.Cells[row][col] = Path
			case r < pathDensity+0.1:
				g.Cells[row][col] = Blocked
			}
		}
	}
	return g
}

func TestDefaultGridHasPath(t *testing.T) {
	g := NewDefaultGrid(20, 15, 40)
	path, ok := g.FindPath(g.Spawn, g.Base)
	if !ok {
		t.Fatalf("default map must connect spawn and base")
	}
	if len(path) != 20 {
		t.Fatalf("expected straight 20-node path, got %d", len(path))
	}
	if path[0] != g.CellCenter(g.Spawn) || path[len(path)-1] != g.CellCenter(g.Base) {
		t.Fatalf("path must run from spawn centre to base centre, got %v .. %v", path[0], path[len(path)-1])
	}
	if cell, _ := g.Cell(Coord{Row: 1, Col: 5}); cell != Blocked {
		t.Fatalf("expected blocked decoration at 1,5, got %v", cell)
	}
	if cell, _ := g.Cell(Coord{Row: 3, Col: 10}); cell != Path {
		t.Fatalf("expected loop corridor at 3,10, got %v", cell)
	}
}

func TestFindPathMatchesBFSOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		g := randomGrid(rng, 12, 9, 0.55)
		want := bfsLength(g, g.Spawn, g.Base)
		path, ok := g.FindPath(g.Spawn, g.Base)
		if want == 0 {
			if ok {
				t.Fatalf("grid %d: expected no path, got %d nodes\n%s", i, len(path), g)
			}
			continue
		}
		if !ok {
			t.Fatalf("grid %d: expected path of %d nodes, got none\n%s", i, want, g)
		}
		if len(path) != want {
			t.Fatalf("grid %d: expected %d nodes, got %d\n%s", i, want, len(path), g)
		}
		for j := 1; j < len(path); j++ {
			if d := path[j].Sub(path[j-1]).Len(); d != g.TileSize {
				t.Fatalf("grid %d: non-adjacent step %d (%v)", i, j, d)
			}
		}
	}
}

func TestFindPathDisconnected(t *testing.T) {
	g, err := Parse([]string{
		"S==#==B",
	}, 10)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := g.FindPath(g.Spawn, g.Base); ok {
		t.Fatalf("wall must disconnect the grid")
	}
	if g.Path() != nil {
		t.Fatalf("Path() should be nil for a disconnected grid")
	}
}

func TestFindPathIsDeterministic(t *testing.T) {
	rows := []string{
		"=====",
		"S===B",
		"=====",
	}
	a, _ := Parse(rows, 10)
	b, _ := Parse(rows, 10)
	pa, _ := a.FindPath(a.Spawn, a.Base)
	pb, _ := b.FindPath(b.Spawn, b.Base)
	if len(pa) != len(pb) {
		t.Fatalf("length mismatch %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("paths diverge at %d: %v vs %v", i, pa[i], pb[i])
		}
	}
}

func TestPathCacheInvalidatedOnSetCell(t *testing.T) {
	g, _ := Parse([]string{
		"=====",
		"S===B",
		"=====",
	}, 10)
	first := g.Path()
	if len(first) != 5 {
		t.Fatalf("expected 5 nodes, got %d", len(first))
	}
	// Mutating the returned slice must not leak into the cache.
	first[1].X = -1
	if g.Path()[1].X == -1 {
		t.Fatalf("cached path was aliased by caller")
	}

	g.SetCell(Coord{Row: 1, Col: 2}, Tower)
	second := g.Path()
	if len(second) != 7 {
		t.Fatalf("expected detour of 7 nodes after blocking the middle, got %d", len(second))
	}
}

func TestNonCanonicalQueriesRecompute(t *testing.T) {
	g, _ := Parse([]string{
		"S===B",
	}, 10)
	g.Path()
	path, ok := g.FindPath(Coord{Row: 0, Col: 1}, g.Base)
	if !ok || len(path) != 4 {
		t.Fatalf("expected 4-node partial path, got %d (ok=%v)", len(path), ok)
	}
}

func TestSetCellProtectsSpawnAndBase(t *testing.T) {
	g := NewDefaultGrid(20, 15, 40)
	if g.SetCell(g.Spawn, Tower) || g.SetCell(g.Base, Tower) {
		t.Fatalf("spawn/base must not be overwritten")
	}
	if cell, _ := g.Cell(g.Spawn); cell != Spawn {
		t.Fatalf("spawn reclassified to %v", cell)
	}
}

func TestCanPlaceTowerMatchesConnectivity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		g := randomGrid(rng, 8, 6, 0.6)
		// Turn some path cells buildable so placement can actually sever routes.
		for row := 0; row < g.Height; row++ {
			for col := 0; col < g.Width; col++ {
				if g.Cells[row][col] == Path && rng.Float64() < 0.3 {
					g.Cells[row][col] = Buildable
				}
			}
		}
		before := g.String()
		for row := 0; row < g.Height; row++ {
			for col := 0; col < g.Width; col++ {
				c := Coord{Row: row, Col: col}
				got := g.CanPlaceTower(c)

				var want bool
				if g.Cells[row][col] == Buildable {
					probe := g.Clone()
					probe.Cells[row][col] = Tower
					want = bfsLength(probe, probe.Spawn, probe.Base) > 0
				}
				if got != want {
					t.Fatalf("grid %d cell %v: CanPlaceTower=%v, want %v\n%s", i, c, got, want, g)
				}
			}
		}
		if g.String() != before {
			t.Fatalf("CanPlaceTower mutated the grid")
		}
	}
}

func TestCanPlaceTowerRejectsSeveringCell(t *testing.T) {
	g, _ := Parse([]string{
		"#####",
		"S=.=B",
		"#####",
	}, 10)
	// '.' is buildable but not traversable, so the map is already disconnected.
	if g.CanPlaceTower(Coord{Row: 1, Col: 2}) {
		t.Fatalf("placement on an already disconnected map must be rejected")
	}
	if g.CanPlaceTower(Coord{Row: 0, Col: 0}) {
		t.Fatalf("blocked cells are never buildable")
	}
	if g.CanPlaceTower(Coord{Row: 9, Col: 9}) {
		t.Fatalf("out of range cells are never buildable")
	}
}

func TestParseRejectsBadLayouts(t *testing.T) {
	cases := map[string][]string{
		"empty":      {},
		"ragged":     {"S=", "==B"},
		"no base":    {"S=="},
		"two spawns": {"S=S=B"},
		"bad rune":   {"S=x=B"},
	}
	for name, rows := range cases {
		if _, err := Parse(rows, 10); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestWorldToCellRoundTrip(t *testing.T) {
	g := NewGrid(20, 15, 40)
	c := Coord{Row: 4, Col: 11}
	if got := g.WorldToCell(g.CellCenter(c)); got != c {
		t.Fatalf("round trip: got %v, want %v", got, c)
	}
}
