// pkg/gridmap/map.go
package gridmap

import (
	"fmt"
	"grid-tower-defense/pkg/utils"
	"strings"
)

// CellType - классификация клетки.
type CellType uint8

const (
	Buildable CellType = iota
	Blocked
	Path
	Spawn
	Base
	Tower
)

func (c CellType) String() string {
	switch c {
	case Buildable:
		return "BUILDABLE"
	case Blocked:
		return "BLOCKED"
	case Path:
		return "PATH"
	case Spawn:
		return "SPAWN"
	case Base:
		return "BASE"
	case Tower:
		return "TOWER"
	default:
		return "UNKNOWN"
	}
}

// Traversable сообщает, могут ли мобы проходить через клетку.
func (c CellType) Traversable() bool {
	return c == Path || c == Spawn || c == Base
}

// Grid - прямоугольная сетка с точкой появления и базой.
type Grid struct {
	Cells    [][]CellType
	Width    int
	Height   int
	TileSize float64
	Spawn    Coord
	Base     Coord

	// Кэш пути spawn->base, сбрасывается при любой смене клетки.
	cachedPath []utils.Vec2
	cacheValid bool
}

// NewGrid создаёт сетку, целиком заполненную Buildable, со spawn/base посередине левого и правого краёв.
func NewGrid(width, height int, tileSize float64) *Grid {
	cells := make([][]CellType, height)
	for row := range cells {
		cells[row] = make([]CellType, width)
	}
	g := &Grid{
		Cells:    cells,
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Spawn:    Coord{Row: height / 2, Col: 0},
		Base:     Coord{Row: height / 2, Col: width - 1},
	}
	g.Cells[g.Spawn.Row][g.Spawn.Col] = Spawn
	g.Cells[g.Base.Row][g.Base.Col] = Base
	return g
}

// NewDefaultGrid строит стандартную S-образную карту.
func NewDefaultGrid(width, height int, tileSize float64) *Grid {
	g := NewGrid(width, height, tileSize)
	midRow := height / 2

	// Горизонтальный коридор через середину
	for col := 0; col < width; col++ {
		g.Cells[midRow][col] = Path
	}

	// Вертикальные отрезки на четвертях ширины и перемычка по строке 3
	quarter := width / 4
	for row := 3; row <= midRow; row++ {
		g.setIfValid(Coord{Row: row, Col: quarter}, Path)
		g.setIfValid(Coord{Row: row, Col: quarter * 3}, Path)
	}
	for col := quarter; col <= quarter*3; col++ {
		g.setIfValid(Coord{Row: 3, Col: col}, Path)
	}

	g.Cells[g.Spawn.Row][g.Spawn.Col] = Spawn
	g.Cells[g.Base.Row][g.Base.Col] = Base

	for _, c := range []Coord{{1, 5}, {1, 15}, {height - 2, 5}, {height - 2, 15}} {
		if g.IsValid(c) && g.Cells[c.Row][c.Col] == Buildable {
			g.Cells[c.Row][c.Col] = Blocked
		}
	}
	return g
}

// Parse строит сетку из ASCII-строк:
// '.' - Buildable, '#' - Blocked, '=' - Path, 'S' - Spawn, 'B' - Base, 'T' - Tower.
func Parse(rows []string, tileSize float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty layout")
	}
	width := len(rows[0])
	g := &Grid{
		Cells:    make([][]CellType, len(rows)),
		Width:    width,
		Height:   len(rows),
		TileSize: tileSize,
	}
	spawns, bases := 0, 0
	for row, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("row %d has width %d, expected %d", row, len(line), width)
		}
		g.Cells[row] = make([]CellType, width)
		for col, ch := range line {
			var cell CellType
			switch ch {
			case '.':
				cell = Buildable
			case '#':
				cell = Blocked
			case '=':
				cell = Path
			case 'S':
				cell = Spawn
				g.Spawn = Coord{Row: row, Col: col}
				spawns++
			case 'B':
				cell = Base
				g.Base = Coord{Row: row, Col: col}
				bases++
			case 'T':
				cell = Tower
			default:
				return nil, fmt.Errorf("unknown cell %q at %d,%d", ch, row, col)
			}
			g.Cells[row][col] = cell
		}
	}
	if spawns != 1 || bases != 1 {
		return nil, fmt.Errorf("layout needs exactly one spawn and one base, got %d/%d", spawns, bases)
	}
	return g, nil
}

// String печатает сетку в формате Parse.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			b.WriteByte(".#=SBT"[g.Cells[row][col]])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// IsValid проверяет, что клетка лежит внутри сетки.
func (g *Grid) IsValid(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Height && c.Col >= 0 && c.Col < g.Width
}

// Cell возвращает классификацию клетки; ok == false за пределами сетки.
func (g *Grid) Cell(c Coord) (CellType, bool) {
	if !g.IsValid(c) {
		return 0, false
	}
	return g.Cells[c.Row][c.Col], true
}

// SetCell меняет классификацию клетки и сбрасывает кэш пути.
// Spawn и Base не перезаписываются.
func (g *Grid) SetCell(c Coord, t CellType) bool {
	if !g.IsValid(c) || c == g.Spawn || c == g.Base {
		return false
	}
	g.Cells[c.Row][c.Col] = t
	g.cacheValid = false
	g.cachedPath = nil
	return true
}

func (g *Grid) setIfValid(c Coord, t CellType) {
	if g.IsValid(c) {
		g.Cells[c.Row][c.Col] = t
	}
}

// CanPlaceTower проверяет, можно ли поставить башню так, чтобы путь остался.
// Проверка не оставляет следов: клетка и кэш возвращаются в исходное состояние.
func (g *Grid) CanPlaceTower(c Coord) bool {
	cell, ok := g.Cell(c)
	if !ok || cell != Buildable {
		return false
	}
	g.Cells[c.Row][c.Col] = Tower
	exists := g.search(g.Spawn, g.Base) != nil
	g.Cells[c.Row][c.Col] = Buildable
	return exists
}

// CellCenter returns the world-space centre of a cell.
func (g *Grid) CellCenter(c Coord) utils.Vec2 {
	return c.ToWorld(g.TileSize)
}

// WorldToCell returns the cell containing a world-space point.
func (g *Grid) WorldToCell(p utils.Vec2) Coord {
	return WorldToCoord(p, g.TileSize)
}

// Neighbors возвращает проходимых соседей клетки.
func (g *Grid) Neighbors(c Coord) []Coord {
	result := make([]Coord, 0, 4)
	for _, d := range NeighborDirections {
		n := c.Add(d)
		if cell, ok := g.Cell(n); ok && cell.Traversable() {
			result = append(result, n)
		}
	}
	return result
}

// Clone делает полную копию сетки вместе с кэшем.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	cp := *g
	cp.Cells = make([][]CellType, len(g.Cells))
	for i, row := range g.Cells {
		cp.Cells[i] = append([]CellType(nil), row...)
	}
	if g.cachedPath != nil {
		cp.cachedPath = append([]utils.Vec2(nil), g.cachedPath...)
	}
	return &cp
}
