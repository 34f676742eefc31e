// internal/app/errors.go
package app

import "errors"

// Причины отказа команд. Отказ никогда не меняет состояние.
var (
	ErrNotPlaying        = errors.New("game is not in progress")
	ErrNoTowerSelected   = errors.New("no tower type selected")
	ErrUnknownTowerKind  = errors.New("unknown tower kind")
	ErrInvalidCell       = errors.New("cell is outside the grid")
	ErrNotBuildable      = errors.New("cell is not buildable")
	ErrPathBlocked       = errors.New("tower would block the path")
	ErrInsufficientFunds = errors.New("not enough money")
	ErrTowerNotFound     = errors.New("tower not found")
	ErrMaxTier           = errors.New("tower is already at max tier")
	ErrWaveActive        = errors.New("wave already in progress")
	ErrNoWavesLeft       = errors.New("no waves left")
	ErrInvalidSpeed      = errors.New("speed must be 1 or 2")
	ErrUnknownStrategy   = errors.New("unknown targeting strategy")
)
