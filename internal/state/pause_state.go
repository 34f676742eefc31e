// internal/state/pause_state.go
package state

import (
	"fmt"
	"image/color"

	"grid-tower-defense/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Убеждаемся, что оверлеи соответствуют интерфейсу State
var (
	_ State = (*PauseState)(nil)
	_ State = (*GameOverState)(nil)
)

// PauseState рисует игру под затемнением, пока симуляция стоит на паузе.
type PauseState struct {
	sm   *StateMachine
	game *GameState
}

func NewPauseState(sm *StateMachine, game *GameState) *PauseState {
	return &PauseState{sm: sm, game: game}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	// Строить и продавать можно и на паузе
	s.game.handleMouse()

	unpause := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if unpause && s.game.sim.State().Paused {
		s.game.report(s.game.sim.Resume())
	}
	s.game.snapshot = s.game.sim.State()
	if !s.game.snapshot.Paused {
		s.sm.SetState(s.game)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.game.Draw(screen)
	drawOverlay(screen, s.game.gridHeight, phaseLabel(s.game.snapshot.Phase), "SPACE to resume")
}

func (s *PauseState) Exit() {}

// GameOverState показывает итог партии. R начинает новую, ESC возвращает в меню.
type GameOverState struct {
	sm   *StateMachine
	game *GameState
}

func NewGameOverState(sm *StateMachine, game *GameState) *GameOverState {
	return &GameOverState{sm: sm, game: game}
}

func (s *GameOverState) Enter() {}

func (s *GameOverState) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.game.restart()
		s.sm.SetState(s.game)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.game.Close()
		s.sm.SetState(NewMenuState(s.sm, s.game.sim))
	}
}

func (s *GameOverState) Draw(screen *ebiten.Image) {
	s.game.Draw(screen)
	st := s.game.snapshot
	drawOverlay(screen, s.game.gridHeight, phaseLabel(st.Phase), summary(s.game.sim, st.CurrentWave, st.Lives))
}

func (s *GameOverState) Exit() {}

func summary(sim *app.Simulation, wave, lives int) string {
	return fmt.Sprintf("wave %d/%d, lives %d  -  R restart, ESC menu", wave, sim.Tuning().WaveCount, lives)
}

// drawOverlay затемняет игровое поле и пишет заголовок с подсказкой.
func drawOverlay(screen *ebiten.Image, height int, title, hint string) {
	w := screen.Bounds().Dx()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(height), color.RGBA{0, 0, 0, 128}, false)

	face := basicfont.Face7x13
	for i, line := range []string{title, hint} {
		b := text.BoundString(face, line)
		text.Draw(screen, line, face, (w-b.Dx())/2, height/2-10+i*22, color.White)
	}
}
