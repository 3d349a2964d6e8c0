package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz         int `yaml:"tick_rate_hz" json:"tick_rate_hz"`
	SnapshotEveryTicks int `yaml:"snapshot_every_ticks" json:"snapshot_every_ticks"`

	Bots  BotTuning   `yaml:"bots" json:"bots"`
	Mover MoverTuning `yaml:"mover" json:"mover"`
}

type BotTuning struct {
	SpawnEveryTicks int `yaml:"spawn_every_ticks" json:"spawn_every_ticks"`
	MaxBots         int `yaml:"max_bots" json:"max_bots"`
}

// MoverTuning parameterizes the linear mover every bot carries.
type MoverTuning struct {
	Acceleration   float64 `yaml:"acceleration" json:"acceleration"`
	Friction       float64 `yaml:"friction" json:"friction"`
	Mass           float64 `yaml:"mass" json:"mass"`
	ArriveDistance float64 `yaml:"arrive_distance" json:"arrive_distance"`
}

// Defaults spawns a bot every 2s at 10Hz.
func Defaults() Tuning {
	return Tuning{
		TickRateHz:         10,
		SnapshotEveryTicks: 3000,
		Bots: BotTuning{
			SpawnEveryTicks: 20,
			MaxBots:         32,
		},
		Mover: MoverTuning{
			Acceleration:   8,
			Friction:       4,
			Mass:           1,
			ArriveDistance: 0.1,
		},
	}
}

// Load reads tuning.yaml on top of Defaults. An empty path yields the defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.TickRateHz <= 0 || t.TickRateHz > 1000 {
		return fmt.Errorf("tick_rate_hz must be in (0, 1000]")
	}
	if t.SnapshotEveryTicks < 0 {
		return fmt.Errorf("snapshot_every_ticks must be >= 0")
	}
	if t.Bots.SpawnEveryTicks <= 0 {
		return fmt.Errorf("bots.spawn_every_ticks must be > 0")
	}
	if t.Bots.MaxBots < 0 {
		return fmt.Errorf("bots.max_bots must be >= 0")
	}
	if t.Mover.Mass <= 0 {
		return fmt.Errorf("mover.mass must be > 0")
	}
	if t.Mover.Acceleration <= 0 {
		return fmt.Errorf("mover.acceleration must be > 0")
	}
	if t.Mover.Friction < 0 {
		return fmt.Errorf("mover.friction must be >= 0")
	}
	if t.Mover.ArriveDistance <= 0 {
		return fmt.Errorf("mover.arrive_distance must be > 0")
	}
	return nil
}
