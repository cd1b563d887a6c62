package search

import (
	"fmt"
	"slices"

	"github.com/limaJavier/hstt/pkg/move"
)

type Mode string

const (
	ModeDescent Mode = "descent"
	ModeSA      Mode = "sa"
	ModeILS     Mode = "ils"
	ModeVNS     Mode = "vns"
)

var Modes = []Mode{ModeDescent, ModeSA, ModeILS, ModeVNS}

type Config struct {
	Mode      Mode
	TimeLimit float64 // Seconds, zero for no limit
	Seed      uint64

	DescentMax int // Consecutive non-improving moves before descent stops
	SaMax      int // Moves per temperature
	IlsMax     int // ILS iterations
	VnsMax     int // VNS iterations

	TempIni float64
	TempMin float64
	Alpha   float64 // Geometric cooling factor
	Reheats int

	PertIni int // Initial perturbation strength
	PertMax int
	BlMax   int // Moves of the bounded descent run after each perturbation

	Ceiling    int     // Largest neighbourhood that is materialised
	HardWeight float64 // Weight of a hard unit against a soft one in annealing deltas
	Weights    map[string]float64
}

func DefaultConfig() Config {
	return Config{
		Mode:       ModeILS,
		TimeLimit:  60,
		Seed:       1,
		DescentMax: 10000,
		SaMax:      1000,
		IlsMax:     1000,
		VnsMax:     1000,
		TempIni:    10,
		TempMin:    0.01,
		Alpha:      0.95,
		Reheats:    2,
		PertIni:    1,
		PertMax:    10,
		BlMax:      2000,
		Ceiling:    move.DefaultCeiling,
		HardWeight: 1000,
	}
}

func (config Config) Validate() error {
	if !slices.Contains(Modes, config.Mode) {
		return fmt.Errorf("unknown search mode \"%v\": allowed values are %v", config.Mode, Modes)
	}
	if config.TimeLimit < 0 {
		return fmt.Errorf("time limit must not be negative: %v", config.TimeLimit)
	}
	if config.DescentMax <= 0 || config.SaMax <= 0 || config.IlsMax <= 0 || config.VnsMax <= 0 || config.BlMax <= 0 {
		return fmt.Errorf("iteration limits must be positive")
	}
	if config.TempIni <= 0 || config.TempMin <= 0 || config.TempMin > config.TempIni {
		return fmt.Errorf("temperatures must satisfy 0 < tempMin <= tempIni: %v, %v", config.TempMin, config.TempIni)
	}
	if config.Alpha <= 0 || config.Alpha >= 1 {
		return fmt.Errorf("cooling factor must lie in (0, 1): %v", config.Alpha)
	}
	if config.Reheats < 0 {
		return fmt.Errorf("reheats must not be negative: %v", config.Reheats)
	}
	if config.PertIni <= 0 || config.PertMax < config.PertIni {
		return fmt.Errorf("perturbation strengths must satisfy 0 < pertIni <= pertMax: %v, %v", config.PertIni, config.PertMax)
	}
	if config.Ceiling <= 0 {
		return fmt.Errorf("ceiling must be positive: %v", config.Ceiling)
	}
	if config.HardWeight < 1 {
		return fmt.Errorf("hard weight must be at least 1: %v", config.HardWeight)
	}
	for name, weight := range config.Weights {
		if weight < 0 {
			return fmt.Errorf("weight of neighbourhood %v must not be negative: %v", name, weight)
		}
	}
	return nil
}
