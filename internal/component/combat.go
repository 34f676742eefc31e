package component

// TargetingStrategy - правило выбора цели башней.
type TargetingStrategy string

const (
	TargetFirst     TargetingStrategy = "first"     // дальше всех по пути
	TargetLast      TargetingStrategy = "last"      // меньше всех прошёл
	TargetNearest   TargetingStrategy = "nearest"   // ближайший к башне
	TargetStrongest TargetingStrategy = "strongest" // больше всего HP
	TargetWeakest   TargetingStrategy = "weakest"   // меньше всего HP
)

// TargetingStrategies lists the strategies in UI cycling order.
var TargetingStrategies = []TargetingStrategy{TargetFirst, TargetLast, TargetNearest, TargetStrongest, TargetWeakest}

// Valid reports whether s is a known strategy.
func (s TargetingStrategy) Valid() bool {
	switch s {
	case TargetFirst, TargetLast, TargetNearest, TargetStrongest, TargetWeakest:
		return true
	default:
		return false
	}
}

// Next returns the strategy after s in cycling order.
func (s TargetingStrategy) Next() TargetingStrategy {
	for i, v := range TargetingStrategies {
		if v == s {
			return TargetingStrategies[(i+1)%len(TargetingStrategies)]
		}
	}
	return TargetFirst
}
