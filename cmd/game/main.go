// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"time"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
)

const startFromGame = false // true - начинать с игры, false - с меню

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
	width, height  int
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

func main() {
	envFile := flag.String("env", "", "optional .env file with TD_* settings")
	towersFile := flag.String("towers", "", "optional JSON file overriding tower definitions")
	enemiesFile := flag.String("enemies", "", "optional JSON file overriding enemy definitions")
	flag.Parse()

	tuning, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	library, err := defs.DefaultLibrary()
	if err != nil {
		log.Fatal(err)
	}
	if *towersFile != "" {
		if err := library.LoadTowerDefinitions(*towersFile); err != nil {
			log.Fatal(err)
		}
	}
	if *enemiesFile != "" {
		if err := library.LoadEnemyDefinitions(*enemiesFile); err != nil {
			log.Fatal(err)
		}
	}

	sim, err := app.New(app.Options{Tuning: &tuning, Library: library})
	if err != nil {
		log.Fatal(err)
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	if startFromGame {
		sim.NewGame()
		sm.SetState(state.NewGameState(sm, sim))
	} else {
		sm.SetState(state.NewMenuState(sm, sim))
	}
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
		width:          int(float64(tuning.GridWidth) * tuning.TileSize),
		height:         int(float64(tuning.GridHeight)*tuning.TileSize) + config.HUDHeight,
	}
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("Grid Tower Defense")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
