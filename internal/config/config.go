// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Значения по умолчанию для всех настроек симуляции.
const (
	TickRate               = 60 // Гц
	MaxFrameSkip           = 5  // защита от "спирали смерти"
	GridWidth              = 20
	GridHeight             = 15
	TileSize               = 40.0 // пикселей
	StartingMoney          = 150
	StartingLives          = 20
	WaveCount              = 10
	WavePreparationMs      = 10000.0
	FirstWaveDelayMs       = 5000.0
	MinDamage              = 1.0
	SlowMinSpeedMultiplier = 0.4
	SplashFalloffFloor     = 0.3
	ProjectileHitRadius    = 0.3 // доля размера клетки
	DefaultProjectileSpeed = 10.0
	SellRefundRate         = 0.7
	EarlyWaveMaxBonus      = 10

	ScreenWidth  = GridWidth * int(TileSize)
	ScreenHeight = GridHeight*int(TileSize) + HUDHeight
	HUDHeight    = 80
	MaxDeltaTime = 0.25 // секунды, больше кадр не передаёт

	ClickCooldown   = 200 // мс между нажатиями кнопок HUD
	IndicatorRadius = 14
)

// Tuning - все числовые настройки, которые потребляет ядро.
type Tuning struct {
	TickRate               int
	MaxFrameSkip           int
	GridWidth              int
	GridHeight             int
	TileSize               float64
	StartingMoney          int
	StartingLives          int
	WaveCount              int
	WavePreparationMs      float64
	FirstWaveDelayMs       float64
	MinDamage              float64
	SlowMinSpeedMultiplier float64
	SplashFalloffFloor     float64
	ProjectileHitRadius    float64
	DefaultProjectileSpeed float64
	SellRefundRate         float64
	EarlyWaveMaxBonus      int
	Seed                   int64
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		TickRate:               TickRate,
		MaxFrameSkip:           MaxFrameSkip,
		GridWidth:              GridWidth,
		GridHeight:             GridHeight,
		TileSize:               TileSize,
		StartingMoney:          StartingMoney,
		StartingLives:          StartingLives,
		WaveCount:              WaveCount,
		WavePreparationMs:      WavePreparationMs,
		FirstWaveDelayMs:       FirstWaveDelayMs,
		MinDamage:              MinDamage,
		SlowMinSpeedMultiplier: SlowMinSpeedMultiplier,
		SplashFalloffFloor:     SplashFalloffFloor,
		ProjectileHitRadius:    ProjectileHitRadius,
		DefaultProjectileSpeed: DefaultProjectileSpeed,
		SellRefundRate:         SellRefundRate,
		EarlyWaveMaxBonus:      EarlyWaveMaxBonus,
		Seed:                   1,
	}
}

// TickDurationMs - длительность одного тика в миллисекундах.
func (t Tuning) TickDurationMs() float64 {
	return 1000.0 / float64(t.TickRate)
}

// TickSeconds - dt одного тика в секундах.
func (t Tuning) TickSeconds() float64 {
	return t.TickDurationMs() / 1000.0
}

// Validate rejects settings the clock or the grid cannot work with.
func (t Tuning) Validate() error {
	switch {
	case t.TickRate <= 0:
		return errors.New("tick rate must be positive")
	case t.MaxFrameSkip <= 0:
		return errors.New("max frame skip must be positive")
	case t.GridWidth < 2 || t.GridHeight < 1:
		return fmt.Errorf("grid %dx%d is too small", t.GridWidth, t.GridHeight)
	case t.TileSize <= 0:
		return errors.New("tile size must be positive")
	case t.SlowMinSpeedMultiplier < 0 || t.SlowMinSpeedMultiplier > 1:
		return errors.New("slow floor must lie in [0,1]")
	case t.WaveCount < 1:
		return errors.New("wave count must be at least 1")
	}
	return nil
}

// Load читает необязательный .env-файл и переменные окружения поверх значений по умолчанию.
// Переменные окружения процесса важнее файла.
func Load(envFile string) (Tuning, error) {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil {
			return Tuning{}, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		values = fileValues
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}

	t := Default()
	ints := map[string]*int{
		"TD_TICK_RATE":            &t.TickRate,
		"TD_MAX_FRAME_SKIP":       &t.MaxFrameSkip,
		"TD_GRID_WIDTH":           &t.GridWidth,
		"TD_GRID_HEIGHT":          &t.GridHeight,
		"TD_STARTING_MONEY":       &t.StartingMoney,
		"TD_STARTING_LIVES":       &t.StartingLives,
		"TD_WAVE_COUNT":           &t.WaveCount,
		"TD_EARLY_WAVE_MAX_BONUS": &t.EarlyWaveMaxBonus,
	}
	for key, dst := range ints {
		if raw, ok := lookup(key); ok {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return Tuning{}, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = v
		}
	}
	floats := map[string]*float64{
		"TD_TILE_SIZE":                 &t.TileSize,
		"TD_WAVE_PREPARATION_MS":       &t.WavePreparationMs,
		"TD_FIRST_WAVE_DELAY_MS":       &t.FirstWaveDelayMs,
		"TD_MIN_DAMAGE":                &t.MinDamage,
		"TD_SLOW_MIN_SPEED_MULTIPLIER": &t.SlowMinSpeedMultiplier,
		"TD_SPLASH_FALLOFF_FLOOR":      &t.SplashFalloffFloor,
		"TD_PROJECTILE_HIT_RADIUS":     &t.ProjectileHitRadius,
		"TD_DEFAULT_PROJECTILE_SPEED":  &t.DefaultProjectileSpeed,
		"TD_SELL_REFUND_RATE":          &t.SellRefundRate,
	}
	for key, dst := range floats {
		if raw, ok := lookup(key); ok {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Tuning{}, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = v
		}
	}
	if raw, ok := lookup("TD_SEED"); ok {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Tuning{}, fmt.Errorf("invalid TD_SEED: %w", err)
		}
		t.Seed = v
	}
	return t, t.Validate()
}

// Цвета для отрисовки.
var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	PathColor        = color.RGBA{139, 115, 85, 255}
	BuildableColor   = color.RGBA{34, 139, 34, 255}
	BlockedColor     = color.RGBA{105, 105, 105, 255}
	SpawnColor       = color.RGBA{65, 105, 225, 255}
	BaseColor        = color.RGBA{220, 20, 60, 255}
	GridLineColor    = color.RGBA{0, 0, 0, 60}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	HealthBarBG      = color.RGBA{51, 51, 51, 255}
	RangeColor       = color.RGBA{255, 255, 255, 76}
	ValidPlacement   = color.RGBA{0, 255, 0, 76}
	InvalidPlacement = color.RGBA{255, 0, 0, 76}
	ProjectileColor  = color.RGBA{255, 255, 200, 255}
	SelectionColor   = color.RGBA{255, 215, 0, 255}
	SlowedColor      = color.RGBA{135, 206, 250, 255}
	HUDColor         = color.RGBA{25, 25, 35, 255}

	// Индикатор фазы: отсчёт до волны и идущая волна.
	CountdownStateColor = color.RGBA{50, 205, 50, 255}
	WaveStateColor      = color.RGBA{220, 20, 60, 255}
	PauseColor          = color.RGBA{255, 255, 255, 255}
	PlayColor           = color.RGBA{50, 205, 50, 255}
	SpeedColors         = []color.Color{color.RGBA{255, 255, 255, 255}, color.RGBA{255, 165, 0, 255}}

	TowerColors = map[string]color.RGBA{
		"arrow":  {139, 69, 19, 255},
		"cannon": {47, 79, 79, 255},
		"frost":  {70, 130, 180, 255},
	}
	MobColors = map[string]color.RGBA{
		"normal": {255, 99, 71, 255},
		"fast":   {255, 215, 0, 255},
		"tank":   {139, 0, 139, 255},
		"flying": {135, 206, 235, 255},
	}
)
