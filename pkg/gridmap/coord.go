// pkg/gridmap/coord.go
package gridmap

import (
	"grid-tower-defense/pkg/utils"
	"math"
)

// Coord - клетка сетки (строка, столбец).
type Coord struct {
	Row, Col int
}

// NeighborDirections - 4-связность: вверх, вниз, влево, вправо.
// Порядок фиксирован, от него зависит форма пути при равных оценках.
var NeighborDirections = []Coord{
	{Row: -1, Col: 0}, {Row: 1, Col: 0},
	{Row: 0, Col: -1}, {Row: 0, Col: 1},
}

// Add returns c shifted by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Manhattan - манхэттенское расстояние между клетками.
func (c Coord) Manhattan(o Coord) int {
	return utils.Abs(c.Row-o.Row) + utils.Abs(c.Col-o.Col)
}

// ToWorld конвертирует клетку в мировые координаты её центра.
func (c Coord) ToWorld(tileSize float64) utils.Vec2 {
	return utils.Vec2{
		X: float64(c.Col)*tileSize + tileSize/2,
		Y: float64(c.Row)*tileSize + tileSize/2,
	}
}

// WorldToCoord конвертирует мировые координаты в клетку.
func WorldToCoord(p utils.Vec2, tileSize float64) Coord {
	return Coord{
		Row: int(math.Floor(p.Y / tileSize)),
		Col: int(math.Floor(p.X / tileSize)),
	}
}
