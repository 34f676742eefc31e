// internal/state/menu_state.go
package state

import (
	"image/color"

	"grid-tower-defense/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var menuLines = []string{
	"GRID TOWER DEFENSE",
	"",
	"SPACE - new game",
	"1/2/3 - arrow / cannon / frost, click to build",
	"click a tower: U upgrade, S sell, T targeting",
	"N - call next wave early, F - speed, SPACE - pause",
	"R - restart, ESC - cancel selection",
}

// MenuState - стартовый экран.
type MenuState struct {
	sm  *StateMachine
	sim *app.Simulation
}

func NewMenuState(sm *StateMachine, sim *app.Simulation) *MenuState {
	return &MenuState{sm: sm, sim: sim}
}

func (m *MenuState) Enter() {
	// Ничего не делаем при входе
}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.sim.NewGame()
		m.sm.SetState(NewGameState(m.sm, m.sim))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})
	w := screen.Bounds().Dx()
	y := screen.Bounds().Dy()/2 - len(menuLines)*10
	for _, line := range menuLines {
		b := text.BoundString(basicfont.Face7x13, line)
		text.Draw(screen, line, basicfont.Face7x13, (w-b.Dx())/2, y, color.White)
		y += 20
	}
}

func (m *MenuState) Exit() {
	// Ничего не делаем при выходе
}
