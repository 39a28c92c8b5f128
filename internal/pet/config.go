package pet

import (
	"time"

	"github.com/sethgrid/bolita/internal/conditions"
	"github.com/sethgrid/bolita/internal/health"
)

const (
	DefaultName = "Bolita"
	DefaultFPS  = 60

	MinAttribute = 0.0
	MaxAttribute = 100.0
)

type PetConfig struct {
	Version           string                 `toml:"version" yaml:"version"`
	Name              string                 `toml:"name" yaml:"name"`
	CreatedAt         time.Time              `toml:"createdAt" yaml:"createdAt"`
	FPS               int                    `toml:"fps" yaml:"fps"`
	HealthComputation health.ComputationMode `toml:"healthComputation" yaml:"healthComputation"`

	Rules      Rules                 `toml:"rules" yaml:"rules"`
	Thresholds conditions.Thresholds `toml:"thresholds" yaml:"thresholds"`
}

// Effect is a set of deltas applied together by an action.
type Effect struct {
	Hunger    float64 `toml:"hunger" yaml:"hunger"`
	Energy    float64 `toml:"energy" yaml:"energy"`
	Happiness float64 `toml:"happiness" yaml:"happiness"`
	Dirtiness float64 `toml:"dirtiness" yaml:"dirtiness"`
}

// Rules holds every rate and amount the simulation uses. Rates are per
// second of simulated time.
type Rules struct {
	HungerPerSecond    float64 `toml:"hungerPerSecond" yaml:"hungerPerSecond"`
	EnergyPerSecond    float64 `toml:"energyPerSecond" yaml:"energyPerSecond"`
	HappinessPerSecond float64 `toml:"happinessPerSecond" yaml:"happinessPerSecond"`
	DirtinessPerSecond float64 `toml:"dirtinessPerSecond" yaml:"dirtinessPerSecond"`

	// Extra happiness drain while hunger or dirtiness is above DistressLevel.
	DistressLevel            float64 `toml:"distressLevel" yaml:"distressLevel"`
	DistressPenaltyPerSecond float64 `toml:"distressPenaltyPerSecond" yaml:"distressPenaltyPerSecond"`

	// Extra happiness drain while energy is below ExhaustionLevel.
	ExhaustionLevel            float64 `toml:"exhaustionLevel" yaml:"exhaustionLevel"`
	ExhaustionPenaltyPerSecond float64 `toml:"exhaustionPenaltyPerSecond" yaml:"exhaustionPenaltyPerSecond"`

	// Play requires energy strictly above this.
	PlayMinEnergy float64 `toml:"playMinEnergy" yaml:"playMinEnergy"`

	Feed           Effect  `toml:"feed" yaml:"feed"`
	Play           Effect  `toml:"play" yaml:"play"`
	Sleep          Effect  `toml:"sleep" yaml:"sleep"`
	CleanHappiness float64 `toml:"cleanHappiness" yaml:"cleanHappiness"`
}

func DefaultRules() Rules {
	return Rules{
		HungerPerSecond:    2.0,
		EnergyPerSecond:    0.5,
		HappinessPerSecond: 1.0,
		DirtinessPerSecond: 0.2,

		DistressLevel:            80,
		DistressPenaltyPerSecond: 2.0,

		ExhaustionLevel:            20,
		ExhaustionPenaltyPerSecond: 1.0,

		PlayMinEnergy: 10,

		Feed:           Effect{Hunger: -30, Energy: 5, Dirtiness: 5},
		Play:           Effect{Hunger: 10, Energy: -15, Happiness: 20, Dirtiness: 5},
		Sleep:          Effect{Hunger: 10, Energy: 50},
		CleanHappiness: -5,
	}
}

// DefaultConfig is the config a fresh pet is created with.
func DefaultConfig(name string) PetConfig {
	if name == "" {
		name = DefaultName
	}
	return PetConfig{
		Version:           "1.0",
		Name:              name,
		FPS:               DefaultFPS,
		HealthComputation: health.ComputationAverage,
		Rules:             DefaultRules(),
		Thresholds:        conditions.DefaultThresholds(),
	}
}

// WithDefaults fills in the name, fps and health mode. Rules and
// thresholds are used as given, so zero is a valid rate; start from
// DefaultConfig to get the standard ones.
func (c PetConfig) WithDefaults() PetConfig {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.HealthComputation == "" {
		c.HealthComputation = health.ComputationAverage
	}
	return c
}
