// internal/defs/loader.go
package defs

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
)

//go:embed data/towers.json data/enemies.json
var builtin embed.FS

// Library holds every static table the simulation consumes.
type Library struct {
	Towers  map[TowerKind]TowerDefinition
	Mobs    map[MobType]MobDefinition
	Waves   []WaveDefinition
	Effects map[EffectType]EffectSpec
}

// DefaultLibrary builds a library from the embedded tables.
func DefaultLibrary() (*Library, error) {
	lib := &Library{
		Waves:   WavePatterns,
		Effects: make(map[EffectType]EffectSpec, len(DefaultEffects)),
	}
	for k, v := range DefaultEffects {
		lib.Effects[k] = v
	}

	towers, err := builtin.ReadFile("data/towers.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tower definitions: %w", err)
	}
	if err := lib.parseTowers(towers); err != nil {
		return nil, err
	}
	mobs, err := builtin.ReadFile("data/enemies.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded enemy definitions: %w", err)
	}
	if err := lib.parseMobs(mobs); err != nil {
		return nil, err
	}
	return lib, lib.Validate()
}

// MustDefaultLibrary is DefaultLibrary for callers that cannot recover, such as tests and main.
func MustDefaultLibrary() *Library {
	lib, err := DefaultLibrary()
	if err != nil {
		panic(err)
	}
	return lib
}

// LoadTowerDefinitions reads the tower configuration file and replaces the tower table.
func (l *Library) LoadTowerDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tower definitions file: %w", err)
	}
	if err := l.parseTowers(file); err != nil {
		return err
	}
	log.Printf("Loaded %d tower definitions from %s", len(l.Towers), path)
	return l.Validate()
}

// LoadEnemyDefinitions reads the enemy configuration file and replaces the mob table.
func (l *Library) LoadEnemyDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read enemy definitions file: %w", err)
	}
	if err := l.parseMobs(file); err != nil {
		return err
	}
	log.Printf("Loaded %d enemy definitions from %s", len(l.Mobs), path)
	return l.Validate()
}

func (l *Library) parseTowers(data []byte) error {
	var towerDefs []TowerDefinition
	if err := json.Unmarshal(data, &towerDefs); err != nil {
		return fmt.Errorf("failed to unmarshal tower definitions: %w", err)
	}
	l.Towers = make(map[TowerKind]TowerDefinition, len(towerDefs))
	for _, def := range towerDefs {
		l.Towers[def.Kind] = def
	}
	return nil
}

func (l *Library) parseMobs(data []byte) error {
	var mobDefs []MobDefinition
	if err := json.Unmarshal(data, &mobDefs); err != nil {
		return fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}
	l.Mobs = make(map[MobType]MobDefinition, len(mobDefs))
	for _, def := range mobDefs {
		l.Mobs[def.Type] = def
	}
	return nil
}

// Validate проверяет, что таблицы покрывают все виды башен и мобов, а уровни заданы корректно.
func (l *Library) Validate() error {
	for _, kind := range TowerKinds {
		def, ok := l.Towers[kind]
		if !ok {
			return fmt.Errorf("tower definition %q is missing", kind)
		}
		if len(def.Tiers) != MaxTier {
			return fmt.Errorf("tower %q has %d tiers, expected %d", kind, len(def.Tiers), MaxTier)
		}
		for i, tier := range def.Tiers {
			if tier.AttackSpeed <= 0 || tier.Range <= 0 {
				return fmt.Errorf("tower %q tier %d needs positive range and attack speed", kind, i+1)
			}
		}
	}
	for _, wave := range l.Waves {
		for _, entry := range wave.Entries {
			if _, ok := l.Mobs[entry.MobType]; !ok {
				return fmt.Errorf("wave references unknown mob type %q", entry.MobType)
			}
		}
	}
	return nil
}

// Wave returns the definition of the 1-based wave number.
// Волны после последней в таблице повторяют последние пять.
func (l *Library) Wave(waveNumber int) (WaveDefinition, bool) {
	n := len(l.Waves)
	if waveNumber < 1 || n == 0 {
		return WaveDefinition{}, false
	}
	if waveNumber <= n {
		return l.Waves[waveNumber-1], true
	}
	cycle := 5
	if n < cycle {
		cycle = n
	}
	first := n - cycle + 1
	repeating := ((waveNumber - first) % cycle) + first
	return l.Waves[repeating-1], true
}

// Effect returns the payload parameters for an effect type.
func (l *Library) Effect(t EffectType) EffectSpec {
	if spec, ok := l.Effects[t]; ok {
		return spec
	}
	return DefaultEffects[t]
}
