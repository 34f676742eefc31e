// cmd/tdsim/main.go
//
// tdsim прогоняет партию без окна: ставит башни из флага и крутит симуляцию
// фиксированными кадрами до победы, поражения или лимита времени.
package main

import (
	"flag"
	"log"
	"os"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/event"
)

func main() {
	envFile := flag.String("env", "", "optional .env file with TD_* settings")
	seed := flag.Int64("seed", 0, "id seed, overrides TD_SEED when non-zero")
	towers := flag.String("towers", "arrow@6,4;arrow@8,4;cannon@6,9;frost@8,12", "build order: kind@row,col;...")
	frameMs := flag.Float64("frame-ms", 16, "wall-clock milliseconds per frame")
	maxSeconds := flag.Float64("max-seconds", 900, "stop after this much simulated wall-clock time")
	speed := flag.Int("speed", 2, "speed multiplier, 1 or 2")
	flag.Parse()

	logger := log.New(os.Stdout, "tdsim ", log.Ltime)

	tuning, err := config.Load(*envFile)
	if err != nil {
		logger.Fatal(err)
	}
	if *seed != 0 {
		tuning.Seed = *seed
	}
	order, err := parseBuildOrder(*towers)
	if err != nil {
		logger.Fatal(err)
	}
	library, err := defs.DefaultLibrary()
	if err != nil {
		logger.Fatal(err)
	}
	sim, err := app.New(app.Options{Tuning: &tuning, Library: library, Logger: logger})
	if err != nil {
		logger.Fatal(err)
	}

	counts := make(map[event.EventType]int)
	sim.EventDispatcher.Subscribe(event.Any, event.ListenerFunc(func(e event.Event) {
		counts[e.Type]++
		if e.Type == event.MobLeaked {
			if data, ok := e.Data.(event.MobLeakedData); ok {
				logger.Printf("Mob %s leaked, %d lives left", data.MobID, data.LivesRemaining)
			}
		}
	}))

	sim.NewGame()
	if err := sim.SetSpeed(*speed); err != nil {
		logger.Fatal(err)
	}
	for _, p := range order {
		if err := sim.SelectTowerType(p.Kind); err != nil {
			logger.Fatal(err)
		}
		id, err := sim.PlaceTower(p.Cell)
		if err != nil {
			logger.Printf("Skipping %s at %v: %v", p.Kind, p.Cell, err)
			continue
		}
		logger.Printf("Placed %s %s at %v", p.Kind, id, p.Cell)
	}

	elapsed := 0.0
	for elapsed < *maxSeconds*1000 {
		st := sim.Update(*frameMs)
		elapsed += *frameMs
		if st.Phase.Terminal() {
			break
		}
	}

	st := sim.State()
	logger.Printf("Finished: phase=%s wave=%d/%d lives=%d money=%d ticks=%d sim=%.1fs",
		st.Phase, st.CurrentWave, tuning.WaveCount, st.Lives, st.Money, st.Tick, st.SimulationTime)
	logger.Printf("Events: spawned=%d killed=%d leaked=%d fired=%d hits=%d",
		counts[event.MobSpawned], counts[event.MobKilled], counts[event.MobLeaked],
		counts[event.ProjectileFired], counts[event.ProjectileHit])
	if !st.Phase.Terminal() {
		os.Exit(2)
	}
}
