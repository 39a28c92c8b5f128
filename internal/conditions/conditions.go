package conditions

type Condition string

const (
	CondHungry          Condition = "Hungry"
	CondTired           Condition = "Tired"
	CondSad             Condition = "Sad"
	CondDirty           Condition = "Dirty"
	CondHappyAndHealthy Condition = "Happy and Healthy"
)

// Attributes is the read side of a pet that conditions are derived from.
type Attributes interface {
	Hunger() float64
	Energy() float64
	Happiness() float64
	Dirtiness() float64
}

// Thresholds are strict bounds: hunger and dirtiness must exceed theirs,
// energy and happiness must fall below theirs.
type Thresholds struct {
	Hungry float64 `toml:"hungry" yaml:"hungry"`
	Tired  float64 `toml:"tired" yaml:"tired"`
	Sad    float64 `toml:"sad" yaml:"sad"`
	Dirty  float64 `toml:"dirty" yaml:"dirty"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Hungry: 70,
		Tired:  30,
		Sad:    40,
		Dirty:  60,
	}
}

type DerivedStatus struct {
	Primary    Condition
	AllOrdered []Condition
}

func Derive(a Attributes, th Thresholds) DerivedStatus {
	var allOrdered []Condition

	add := func(c Condition) {
		allOrdered = append(allOrdered, c)
	}

	// Evaluation order is part of the output format.
	if a.Hunger() > th.Hungry {
		add(CondHungry)
	}
	if a.Energy() < th.Tired {
		add(CondTired)
	}
	if a.Happiness() < th.Sad {
		add(CondSad)
	}
	if a.Dirtiness() > th.Dirty {
		add(CondDirty)
	}

	primary := CondHappyAndHealthy
	if len(allOrdered) > 0 {
		primary = allOrdered[0]
	}

	return DerivedStatus{
		Primary:    primary,
		AllOrdered: allOrdered,
	}
}

// FormatConditions joins conditions with ", " in the order given.
// Returns "Happy and Healthy" if the slice is empty.
func FormatConditions(conds []Condition) string {
	if len(conds) == 0 {
		return string(CondHappyAndHealthy)
	}

	result := string(conds[0])
	for i := 1; i < len(conds); i++ {
		result += ", " + string(conds[i])
	}
	return result
}

// String is the status line for a derived status.
func (s DerivedStatus) String() string {
	return FormatConditions(s.AllOrdered)
}
