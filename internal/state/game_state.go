// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image"
	"time"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/ui"
	"grid-tower-defense/pkg/gridmap"
	"grid-tower-defense/pkg/render"
	"grid-tower-defense/pkg/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const messageTTL = 2 * time.Second

var buildKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}

// GameState - состояние игры: ввод, отрисовка снимка и HUD.
type GameState struct {
	sm       *StateMachine
	sim      *app.Simulation
	renderer *render.GridRenderer
	effects  *render.VisualEffects
	face     font.Face

	snapshot    *entity.State // последний снимок от подписки
	unsubscribe func()

	buildButtons  map[defs.TowerKind]*ui.Button
	pauseButton   *ui.PauseButton
	speedButton   *ui.SpeedButton
	indicator     *ui.StateIndicator
	waveIndicator *ui.WaveIndicator
	infoPanel     *ui.InfoPanel

	gridHeight  int // высота игрового поля в пикселях
	message     string
	messageTime time.Time
}

func NewGameState(sm *StateMachine, sim *app.Simulation) *GameState {
	st := sim.State()
	face := basicfont.Face7x13

	mapColors := &render.MapColors{
		BackgroundColor: config.BackgroundColor,
		BuildableColor:  config.BuildableColor,
		BlockedColor:    config.BlockedColor,
		PathColor:       config.PathColor,
		SpawnColor:      config.SpawnColor,
		BaseColor:       config.BaseColor,
		GridLineColor:   config.GridLineColor,
		StrokeWidth:     1,
	}
	entityColors := &render.EntityColors{
		Towers:           config.TowerColors,
		Mobs:             config.MobColors,
		Projectile:       config.ProjectileColor,
		Selection:        config.SelectionColor,
		Range:            config.RangeColor,
		ValidPlacement:   config.ValidPlacement,
		InvalidPlacement: config.InvalidPlacement,
		HealthBarBG:      config.HealthBarBG,
		Slowed:           config.SlowedColor,
	}

	gridHeight := int(float64(st.Grid.Height) * st.Grid.TileSize)
	gridWidth := int(float64(st.Grid.Width) * st.Grid.TileSize)
	hudY := gridHeight + 4

	g := &GameState{
		sm:            sm,
		sim:           sim,
		renderer:      render.NewGridRenderer(st.Grid, mapColors, entityColors, face),
		effects:       render.NewVisualEffects(),
		face:          face,
		snapshot:      st,
		buildButtons:  make(map[defs.TowerKind]*ui.Button, len(defs.TowerKinds)),
		pauseButton:   ui.NewPauseButton(float32(gridWidth-85), float32(hudY+55), 12, config.PauseColor, config.PlayColor),
		speedButton:   ui.NewSpeedButton(float32(gridWidth-40), float32(hudY+55), 12, config.SpeedColors),
		indicator:     ui.NewStateIndicator(float32(gridWidth-30), float32(hudY+18), config.IndicatorRadius),
		waveIndicator: ui.NewWaveIndicator(gridWidth-85, hudY+24),
		infoPanel:     ui.NewInfoPanel(360, hudY, config.HUDHeight-8, face),
		gridHeight:    gridHeight,
	}
	for i, kind := range defs.TowerKinds {
		def := sim.Library().Towers[kind]
		x := 5 + i*115
		label := fmt.Sprintf("%d %s $%d", i+1, def.Name, def.BaseCost)
		g.buildButtons[kind] = ui.NewButton(image.Rect(x, hudY, x+110, hudY+26), label)
	}
	return g
}

var effectEvents = []event.EventType{event.ProjectileHit, event.EffectApplied}

func (g *GameState) Enter() {
	if g.unsubscribe == nil {
		g.unsubscribe = g.sim.Subscribe(func(st *entity.State) {
			g.snapshot = st
		})
		for _, t := range effectEvents {
			g.sim.EventDispatcher.Subscribe(t, g.effects)
		}
	}
}

func (g *GameState) Update(deltaTime float64) {
	g.handleKeys()
	g.handleMouse()

	g.sim.Update(deltaTime * 1000)
	// Кадры без значимых изменений подписчиков не будят
	g.snapshot = g.sim.State()
	if !g.snapshot.Paused {
		g.effects.Update(deltaTime * float64(g.snapshot.Speed))
	}

	if g.snapshot.Phase.Terminal() {
		g.sm.SetState(NewGameOverState(g.sm, g))
		return
	}
	if g.snapshot.Paused {
		g.sm.SetState(NewPauseState(g.sm, g))
	}
}

func (g *GameState) handleKeys() {
	for i, kind := range defs.TowerKinds {
		if i < len(buildKeys) && inpututil.IsKeyJustPressed(buildKeys[i]) {
			g.report(g.sim.SelectTowerType(kind))
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.toggleSpeed()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.startWaveEarly()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.report(g.sim.SelectTowerType(""))
		g.sim.DeselectTower()
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		g.panelAction(ui.ActionUpgrade)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.panelAction(ui.ActionSell)
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.panelAction(ui.ActionCycleStrategy)
	}
}

func (g *GameState) handleMouse() {
	x, y := ebiten.CursorPosition()
	g.updateHover(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.report(g.sim.SelectTowerType(""))
		g.sim.DeselectTower()
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	if y >= g.gridHeight {
		g.handleHUDClick(x, y)
		return
	}
	g.handleGridClick(x, y)
}

// updateHover сообщает симуляции клетку под курсором, только когда она меняется.
func (g *GameState) updateHover(x, y int) {
	var cell *gridmap.Coord
	if y >= 0 && y < g.gridHeight {
		c := g.snapshot.Grid.WorldToCell(utils.Vec2{X: float64(x), Y: float64(y)})
		if g.snapshot.Grid.IsValid(c) {
			cell = &c
		}
	}
	cur := g.snapshot.HoveredCell
	if (cell == nil) == (cur == nil) && (cell == nil || *cell == *cur) {
		return
	}
	g.sim.SetHoveredCell(cell)
}

func (g *GameState) handleGridClick(x, y int) {
	st := g.snapshot
	cell := st.Grid.WorldToCell(utils.Vec2{X: float64(x), Y: float64(y)})
	if tower, ok := st.TowerAt(cell); ok {
		g.report(g.sim.SelectTower(tower.ID))
		return
	}
	if st.SelectedTowerType == "" {
		g.sim.DeselectTower()
		return
	}
	_, err := g.sim.PlaceTower(cell)
	g.report(err)
}

func (g *GameState) handleHUDClick(x, y int) {
	cooldown := time.Duration(config.ClickCooldown) * time.Millisecond
	switch {
	case g.pauseButton.IsClicked(x, y):
		if time.Since(g.pauseButton.LastClickTime) >= cooldown {
			g.pauseButton.Click()
			g.togglePause()
		}
		return
	case g.speedButton.IsClicked(x, y):
		if time.Since(g.speedButton.LastClickTime) >= cooldown {
			g.speedButton.Click()
			g.toggleSpeed()
		}
		return
	case g.indicator.IsClicked(x, y):
		if time.Since(g.indicator.LastClickTime) >= cooldown {
			g.indicator.HandleClick()
			g.startWaveEarly()
		}
		return
	}
	for _, kind := range defs.TowerKinds {
		if g.buildButtons[kind].Contains(x, y) {
			if g.snapshot.SelectedTowerType == kind {
				kind = ""
			}
			g.report(g.sim.SelectTowerType(kind))
			return
		}
	}
	if g.snapshot.SelectedTowerID != "" && g.infoPanel.Contains(x, y) {
		g.panelAction(g.infoPanel.HandleClick(x, y))
	}
}

func (g *GameState) panelAction(action ui.InfoPanelAction) {
	id := g.snapshot.SelectedTowerID
	if id == "" {
		return
	}
	switch action {
	case ui.ActionUpgrade:
		g.report(g.sim.UpgradeTower(id))
	case ui.ActionSell:
		refund, err := g.sim.SellTower(id)
		if err == nil {
			g.say(fmt.Sprintf("Sold for $%d", refund))
		}
		g.report(err)
	case ui.ActionCycleStrategy:
		if tower, ok := g.snapshot.Towers.Get(id); ok {
			g.report(g.sim.SetTargetingStrategy(id, tower.Strategy.Next()))
		}
	}
}

func (g *GameState) restart() {
	g.effects.Reset()
	g.sim.NewGame()
	g.snapshot = g.sim.State()
}

func (g *GameState) togglePause() {
	g.report(g.sim.TogglePause())
}

func (g *GameState) toggleSpeed() {
	next := 2
	if g.snapshot.Speed == 2 {
		next = 1
	}
	g.report(g.sim.SetSpeed(next))
}

func (g *GameState) startWaveEarly() {
	bonus, err := g.sim.StartWaveEarly()
	if err == nil && bonus > 0 {
		g.say(fmt.Sprintf("Early start bonus $%d", bonus))
	}
	g.report(err)
}

// report показывает причину отказа команды.
func (g *GameState) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, app.ErrInsufficientFunds):
		g.say("Not enough money")
	case errors.Is(err, app.ErrPathBlocked):
		g.say("That would block the path")
	case errors.Is(err, app.ErrNotBuildable):
		g.say("Can't build there")
	default:
		g.say(err.Error())
	}
}

func (g *GameState) say(msg string) {
	g.message = msg
	g.messageTime = time.Now()
}

func (g *GameState) Draw(screen *ebiten.Image) {
	st := g.snapshot
	screen.Fill(config.HUDColor)

	previewRange := 0.0
	if st.SelectedTowerType != "" {
		if stats, ok := g.sim.Library().Towers[st.SelectedTowerType].Tier(1); ok {
			previewRange = stats.Range
		}
	}
	g.renderer.Draw(screen, st, previewRange)
	g.effects.Draw(screen, st, float32(st.Grid.TileSize*0.3))
	g.drawHUD(screen, st)
}

func (g *GameState) drawHUD(screen *ebiten.Image, st *entity.State) {
	tuning := g.sim.Tuning()
	for _, kind := range defs.TowerKinds {
		b := g.buildButtons[kind]
		b.Active = st.SelectedTowerType == kind
		b.Disabled = st.Money < g.sim.Library().Towers[kind].BaseCost
		b.Draw(screen, g.face)
	}

	status := fmt.Sprintf("$%d  Lives %d  Wave %d/%d", st.Money, st.Lives, st.CurrentWave, tuning.WaveCount)
	if !st.WaveActive && st.CurrentWave < tuning.WaveCount {
		status += fmt.Sprintf("  next in %.1fs", st.WaveTimerMs/1000)
	}
	ebitenutil.DebugPrintAt(screen, status, 5, g.gridHeight+36)
	if g.message != "" && time.Since(g.messageTime) < messageTTL {
		ebitenutil.DebugPrintAt(screen, g.message, 5, g.gridHeight+56)
	}

	// Индикатор: заполненная дуга - сколько осталось до следующей волны
	stateColor, progress := config.WaveStateColor, 0.0
	if !st.WaveActive {
		stateColor = config.CountdownStateColor
		if tuning.WavePreparationMs > 0 {
			progress = st.WaveTimerMs / tuning.WavePreparationMs
		}
	}
	g.indicator.Draw(screen, stateColor, progress)
	g.waveIndicator.Draw(screen, g.face, st.CurrentWave, tuning.WaveCount)
	g.pauseButton.Draw(screen, st.Paused)
	g.speedButton.Draw(screen, st.Speed)

	if tower, ok := st.Towers.Get(st.SelectedTowerID); ok {
		upgradeCost := -1
		if stats, ok := g.sim.Library().Towers[tower.Kind].Tier(tower.Tier + 1); ok {
			upgradeCost = stats.Cost
		}
		g.infoPanel.Draw(screen, tower, upgradeCost, app.SellValue(tower, tuning.SellRefundRate), st.Money)
	}
}

// Close отписывает экран от симуляции.
func (g *GameState) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
		for _, t := range effectEvents {
			g.sim.EventDispatcher.Unsubscribe(t, g.effects)
		}
	}
}

func (g *GameState) Exit() {
	// Подписка живёт, пока экран может вернуться из паузы
}

// phaseLabel - надпись для оверлеев.
func phaseLabel(p component.Phase) string {
	switch p {
	case component.PhaseWon:
		return "VICTORY"
	case component.PhaseLost:
		return "DEFEAT"
	default:
		return "PAUSED"
	}
}
