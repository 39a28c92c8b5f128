package health

type ComputationMode string

const (
	ComputationAverage  ComputationMode = "average"
	ComputationWeighted ComputationMode = "weighted"
)

// ComputeHealth folds the four attributes into a single score. Hunger and
// dirtiness are bad-when-high, so they count as 100 minus their value.
func ComputeHealth(hunger, energy, happiness, dirtiness float64, mode ComputationMode) float64 {
	fed := 100 - hunger
	clean := 100 - dirtiness

	var health float64

	switch mode {
	case ComputationWeighted:
		health = fed*0.3 + energy*0.2 + happiness*0.35 + clean*0.15
	default: // average
		health = (fed + energy + happiness + clean) / 4
	}

	return max(0, min(100, health))
}
