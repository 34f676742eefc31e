// pkg/render/grid_renderer.go
package render

import (
	"image/color"
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/pkg/gridmap"
	"grid-tower-defense/pkg/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// GridRenderer рисует карту, башни, мобов и снаряды одного снимка состояния.
type GridRenderer struct {
	layout   *gridmap.Grid
	colors   *MapColors
	entities *EntityColors
	fontFace font.Face
	mapImage *ebiten.Image // предрендеренная статичная карта
}

// NewGridRenderer creates a renderer for the given layout and pre-renders the map.
func NewGridRenderer(layout *gridmap.Grid, colors *MapColors, entities *EntityColors, face font.Face) *GridRenderer {
	w := int(float64(layout.Width) * layout.TileSize)
	h := int(float64(layout.Height) * layout.TileSize)
	r := &GridRenderer{
		layout:   layout,
		colors:   colors,
		entities: entities,
		fontFace: face,
		mapImage: ebiten.NewImage(w, h),
	}
	r.RenderMapImage()
	return r
}

// RenderMapImage создаёт предрендеренное изображение задника.
// Башни динамические и в задник не попадают.
func (r *GridRenderer) RenderMapImage() {
	r.mapImage.Fill(r.colors.BackgroundColor)
	ts := float32(r.layout.TileSize)
	for row := 0; row < r.layout.Height; row++ {
		for col := 0; col < r.layout.Width; col++ {
			cell := r.layout.Cells[row][col]
			x, y := float32(col)*ts, float32(row)*ts
			vector.DrawFilledRect(r.mapImage, x, y, ts, ts, r.cellColor(cell), false)
			vector.StrokeRect(r.mapImage, x, y, ts, ts, r.colors.StrokeWidth, r.colors.GridLineColor, false)
		}
	}
	r.DrawLabel(r.mapImage, r.layout.Spawn, "S")
	r.DrawLabel(r.mapImage, r.layout.Base, "B")
}

func (r *GridRenderer) cellColor(cell gridmap.CellType) color.RGBA {
	switch cell {
	case gridmap.Blocked:
		return r.colors.BlockedColor
	case gridmap.Path:
		return r.colors.PathColor
	case gridmap.Spawn:
		return r.colors.SpawnColor
	case gridmap.Base:
		return r.colors.BaseColor
	default:
		// Tower тоже рисуется как Buildable: сама башня поверх
		return r.colors.BuildableColor
	}
}

// Draw рисует снимок. previewRange - радиус (в клетках) башни, выбранной для постройки, 0 если нет.
func (r *GridRenderer) Draw(screen *ebiten.Image, st *entity.State, previewRange float64) {
	screen.DrawImage(r.mapImage, nil)

	for _, tower := range st.Towers.Values() {
		r.drawTower(screen, tower, tower.ID == st.SelectedTowerID)
	}
	if st.SelectedTowerType != "" && st.HoveredCell != nil {
		r.drawPlacementPreview(screen, st, *st.HoveredCell, previewRange)
	}
	for _, mob := range st.Mobs.Values() {
		r.drawMob(screen, mob, st.Interpolation)
	}
	for _, p := range st.Projectiles.Values() {
		pos := utils.LerpVec2(p.PrevPosition, p.Position, st.Interpolation)
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), 3, r.entities.Projectile, true)
	}
}

func (r *GridRenderer) drawTower(screen *ebiten.Image, tower *component.Tower, selected bool) {
	ts := float32(r.layout.TileSize)
	x, y := float32(tower.Cell.Col)*ts, float32(tower.Cell.Row)*ts
	base := r.entities.Towers[string(tower.Kind)]
	inset := ts * 0.1
	vector.DrawFilledRect(screen, x+inset, y+inset, ts-2*inset, ts-2*inset, base, false)
	vector.StrokeRect(screen, x+inset, y+inset, ts-2*inset, ts-2*inset, 2, DarkenColor(base), false)

	// Уровень башни точками по нижнему краю
	for i := 0; i < tower.Tier; i++ {
		vector.DrawFilledCircle(screen, x+ts*0.25+float32(i)*ts*0.25, y+ts*0.78, 2.5, color.White, true)
	}
	if selected {
		vector.StrokeRect(screen, x+1, y+1, ts-2, ts-2, 2, r.entities.Selection, false)
		c := r.layout.CellCenter(tower.Cell)
		r.drawRange(screen, c, tower.Range, r.entities.Range)
	}
}

func (r *GridRenderer) drawPlacementPreview(screen *ebiten.Image, st *entity.State, cell gridmap.Coord, rangeCells float64) {
	if !st.Grid.IsValid(cell) {
		return
	}
	clr := r.entities.InvalidPlacement
	if st.Grid.CanPlaceTower(cell) {
		clr = r.entities.ValidPlacement
	}
	ts := float32(r.layout.TileSize)
	vector.DrawFilledRect(screen, float32(cell.Col)*ts, float32(cell.Row)*ts, ts, ts, clr, false)
	if rangeCells > 0 {
		r.drawRange(screen, st.Grid.CellCenter(cell), rangeCells, clr)
	}
}

func (r *GridRenderer) drawRange(screen *ebiten.Image, center utils.Vec2, rangeCells float64, clr color.RGBA) {
	radius := float32(rangeCells * r.layout.TileSize)
	vector.StrokeCircle(screen, float32(center.X), float32(center.Y), radius, 1.5, clr, true)
}

func (r *GridRenderer) drawMob(screen *ebiten.Image, mob *component.Mob, alpha float64) {
	pos := utils.LerpVec2(mob.PrevPosition, mob.Position, alpha)
	x, y := float32(pos.X), float32(pos.Y)
	size := float32(r.layout.TileSize) * 0.3
	if mob.Type == defs.MobTank {
		size *= 1.3
	}
	clr := r.entities.Mobs[string(mob.Type)]
	vector.DrawFilledCircle(screen, x, y, size, clr, true)
	if component.StrongestValue(mob.Effects, defs.EffectSlow) > 0 {
		vector.StrokeCircle(screen, x, y, size+2, 2, r.entities.Slowed, true)
	}

	// Полоска здоровья над мобом
	if mob.MaxHP <= 0 {
		return
	}
	frac := math.Max(0, math.Min(1, mob.HP/mob.MaxHP))
	barW := size * 2
	barY := y - size - 6
	vector.DrawFilledRect(screen, x-size, barY, barW, 4, r.entities.HealthBarBG, false)
	vector.DrawFilledRect(screen, x-size, barY, barW*float32(frac), 4, HealthColor(frac), false)
}

// DrawLabel рисует подпись по центру клетки.
func (r *GridRenderer) DrawLabel(screen *ebiten.Image, cell gridmap.Coord, label string) {
	c := r.layout.CellCenter(cell)
	b := text.BoundString(r.fontFace, label)
	text.Draw(screen, label, r.fontFace, int(c.X)-b.Dx()/2, int(c.Y)+b.Dy()/2, color.White)
}
