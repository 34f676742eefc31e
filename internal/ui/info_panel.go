// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelWidth  = 330
	panelMargin = 5
	lineHeight  = 16
)

// InfoPanelAction - что пользователь нажал в панели.
type InfoPanelAction int

const (
	ActionNone InfoPanelAction = iota
	ActionUpgrade
	ActionSell
	ActionCycleStrategy
)

// InfoPanel displays information about the selected tower.
type InfoPanel struct {
	X, Y            int
	Height          int
	fontFace        font.Face
	UpgradeButton   *Button
	SellButton      *Button
	StrategyButton  *Button
	backgroundColor color.RGBA
}

// NewInfoPanel creates a new information panel anchored at x, y.
func NewInfoPanel(x, y, height int, face font.Face) *InfoPanel {
	buttonY := y + height - 30
	return &InfoPanel{
		X:               x,
		Y:               y,
		Height:          height,
		fontFace:        face,
		UpgradeButton:   NewButton(image.Rect(x+panelMargin, buttonY, x+115, buttonY+24), "Upgrade"),
		SellButton:      NewButton(image.Rect(x+120, buttonY, x+215, buttonY+24), "Sell"),
		StrategyButton:  NewButton(image.Rect(x+220, buttonY, x+panelWidth-panelMargin, buttonY+24), "Target"),
		backgroundColor: color.RGBA{30, 30, 40, 230},
	}
}

// Contains проверяет, попадает ли клик в панель.
func (p *InfoPanel) Contains(x, y int) bool {
	return image.Pt(x, y).In(image.Rect(p.X, p.Y, p.X+panelWidth, p.Y+p.Height))
}

// HandleClick переводит клик в действие над выбранной башней.
func (p *InfoPanel) HandleClick(x, y int) InfoPanelAction {
	switch {
	case p.UpgradeButton.Contains(x, y) && !p.UpgradeButton.Disabled:
		return ActionUpgrade
	case p.SellButton.Contains(x, y):
		return ActionSell
	case p.StrategyButton.Contains(x, y):
		return ActionCycleStrategy
	}
	return ActionNone
}

// Draw рисует характеристики башни. upgradeCost < 0 - башня на максимальном уровне.
func (p *InfoPanel) Draw(screen *ebiten.Image, tower *component.Tower, upgradeCost, sellValue, money int) {
	if tower == nil {
		return
	}
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), panelWidth, float32(p.Height), p.backgroundColor, false)

	lines := []string{
		fmt.Sprintf("%s  tier %d/%d", tower.Kind, tower.Tier, defs.MaxTier),
		fmt.Sprintf("dmg %.0f  rng %.1f  spd %.1f/s", tower.Damage, tower.Range, tower.AttackSpeed),
	}
	if tower.SplashRadius > 0 {
		lines[1] += fmt.Sprintf("  splash %.2f", tower.SplashRadius)
	}
	for i, line := range lines {
		text.Draw(screen, line, p.fontFace, p.X+panelMargin, p.Y+lineHeight*(i+1), color.White)
	}

	if upgradeCost < 0 {
		p.UpgradeButton.Text = "Max tier"
		p.UpgradeButton.Disabled = true
	} else {
		p.UpgradeButton.Text = fmt.Sprintf("Upgrade $%d", upgradeCost)
		p.UpgradeButton.Disabled = upgradeCost > money
	}
	p.SellButton.Text = fmt.Sprintf("Sell $%d", sellValue)
	p.StrategyButton.Text = string(tower.Strategy)

	p.UpgradeButton.Draw(screen, p.fontFace)
	p.SellButton.Draw(screen, p.fontFace)
	p.StrategyButton.Draw(screen, p.fontFace)
}
