package defs

import (
	"math"
	"time"
)

// WaveEntry - одна группа мобов внутри волны.
type WaveEntry struct {
	MobType MobType       // Тип моба из enemies.json
	Count   int           // Количество мобов в группе
	Spacing time.Duration // Интервал между появлением мобов
	Delay   time.Duration // Задержка от начала волны до первого моба
}

// WaveDefinition описывает параметры для одной волны врагов.
type WaveDefinition struct {
	Entries []WaveEntry
	Reward  int // Награда за прохождение волны
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// WavePatterns определяет последовательность волн в игре.
// Индекс среза - номер волны минус один.
var WavePatterns = []WaveDefinition{
	{Entries: []WaveEntry{
		{MobType: MobNormal, Count: 5, Spacing: ms(1500)},
	}, Reward: 50},
	{Entries: []WaveEntry{
		{MobType: MobNormal, Count: 8, Spacing: ms(1200)},
	}, Reward: 80},
	{Entries: []WaveEntry{
		{MobType: MobNormal, Count: 5, Spacing: ms(1500)},
		{MobType: MobFast, Count: 3, Spacing: ms(1000), Delay: 5 * time.Second},
	}, Reward: 100},
	{Entries: []WaveEntry{
		{MobType: MobFast, Count: 5, Spacing: ms(800)},
		{MobType: MobNormal, Count: 10, Spacing: ms(1000), Delay: 3 * time.Second},
	}, Reward: 150},
	{Entries: []WaveEntry{
		{MobType: MobTank, Count: 2, Spacing: ms(3000)},
		{MobType: MobNormal, Count: 8, Spacing: ms(800), Delay: 2 * time.Second},
		{MobType: MobFast, Count: 4, Spacing: ms(600), Delay: 8 * time.Second},
	}, Reward: 200},
	{Entries: []WaveEntry{
		{MobType: MobTank, Count: 5, Spacing: ms(2000)},
		{MobType: MobFast, Count: 10, Spacing: ms(500), Delay: 5 * time.Second},
	}, Reward: 250},
	{Entries: []WaveEntry{
		{MobType: MobNormal, Count: 20, Spacing: ms(500)},
		{MobType: MobFast, Count: 15, Spacing: ms(400), Delay: 5 * time.Second},
		{MobType: MobTank, Count: 3, Spacing: ms(2500), Delay: 10 * time.Second},
	}, Reward: 300},
	{Entries: []WaveEntry{
		{MobType: MobFlying, Count: 5, Spacing: ms(1500)},
		{MobType: MobTank, Count: 4, Spacing: ms(2000), Delay: 3 * time.Second},
		{MobType: MobNormal, Count: 15, Spacing: ms(600), Delay: 8 * time.Second},
	}, Reward: 400},
	{Entries: []WaveEntry{
		{MobType: MobFlying, Count: 8, Spacing: ms(1000)},
		{MobType: MobTank, Count: 6, Spacing: ms(1500), Delay: 2 * time.Second},
		{MobType: MobFast, Count: 20, Spacing: ms(300), Delay: 5 * time.Second},
		{MobType: MobNormal, Count: 10, Spacing: ms(800), Delay: 10 * time.Second},
	}, Reward: 500},
	{Entries: []WaveEntry{
		{MobType: MobTank, Count: 10, Spacing: ms(1000)},
		{MobType: MobFlying, Count: 10, Spacing: ms(800), Delay: 5 * time.Second},
		{MobType: MobFast, Count: 25, Spacing: ms(300), Delay: 10 * time.Second},
		{MobType: MobNormal, Count: 20, Spacing: ms(500), Delay: 15 * time.Second},
	}, Reward: 1000},
}

// WaveScaling - множитель характеристик для номера волны (1-based).
// Растёт монотонно: 1 + (n-1)*0.15.
func WaveScaling(waveNumber int) float64 {
	if waveNumber < 1 {
		waveNumber = 1
	}
	return 1 + float64(waveNumber-1)*0.15
}

// ScaledHP returns floor(baseHp * scaling^hpScaling) for the given wave.
func (d MobDefinition) ScaledHP(waveNumber int) float64 {
	return math.Floor(d.BaseHP * math.Pow(WaveScaling(waveNumber), d.HPScaling))
}

// ScaledBounty returns floor(baseBounty * scaling^bountyScaling) for the given wave.
func (d MobDefinition) ScaledBounty(waveNumber int) int {
	return int(math.Floor(float64(d.BaseBounty) * math.Pow(WaveScaling(waveNumber), d.BountyScaling)))
}
