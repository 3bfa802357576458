package segregation

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfiguration reports a configuration value outside its domain.
	ErrInvalidConfiguration = errors.New("segregation: invalid configuration")
	// ErrNoVacancies reports that relocation cannot proceed because the
	// grid holds no empty cells.
	ErrNoVacancies = errors.New("segregation: no vacant cells available for relocation")
)

// Unbounded disables the iteration budget: the run ends only on convergence.
const Unbounded = -1

// MaxAgentTypes is the largest number of distinct agent types a cell
// value can represent.
const MaxAgentTypes = 255

// Config controls the segregation simulation.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// AgentTypes is the number of distinct agent types placed on the
	// grid, in [1, MaxAgentTypes].
	AgentTypes int `yaml:"agent_types"`

	// PercentEmpty is the fraction of cells left vacant at reset, in [0,1).
	PercentEmpty float64 `yaml:"percent_empty"`

	// SameNeighbour is the fraction of occupied neighbours that must share
	// an agent's type for it to stay put, in [0,1). Equality counts as happy.
	SameNeighbour float64 `yaml:"same_neighbour"`

	// Iterations caps the number of update passes; Unbounded runs until
	// every agent is happy.
	Iterations int `yaml:"iterations"`

	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:         60,
		Height:        60,
		AgentTypes:    2,
		PercentEmpty:  0.5,
		SameNeighbour: 0.4,
		Iterations:    Unbounded,
		Seed:          1337,
	}
}

// EmptyCells returns the number of cells left vacant at reset.
func (c Config) EmptyCells() int {
	return int(math.Round(c.PercentEmpty * float64(c.Width*c.Height)))
}

// Validate rejects out-of-domain values eagerly, before any grid is built.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid dimensions %dx%d must be positive", ErrInvalidConfiguration, c.Width, c.Height)
	}
	if c.AgentTypes < 1 || c.AgentTypes > MaxAgentTypes {
		return fmt.Errorf("%w: agent types must be in [1,%d], got %d", ErrInvalidConfiguration, MaxAgentTypes, c.AgentTypes)
	}
	if c.PercentEmpty < 0 || c.PercentEmpty >= 1 {
		return fmt.Errorf("%w: percent empty %v must be in [0,1)", ErrInvalidConfiguration, c.PercentEmpty)
	}
	if c.SameNeighbour < 0 || c.SameNeighbour >= 1 {
		return fmt.Errorf("%w: same neighbour threshold %v must be in [0,1)", ErrInvalidConfiguration, c.SameNeighbour)
	}
	if c.Iterations != Unbounded && c.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be at least 1 or Unbounded, got %d", ErrInvalidConfiguration, c.Iterations)
	}
	if c.EmptyCells() == 0 {
		return fmt.Errorf("%w: percent empty %v leaves no vacancies on a %dx%d grid", ErrNoVacancies, c.PercentEmpty, c.Width, c.Height)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that fail to parse or that would leave their field out of domain
// are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["types"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= MaxAgentTypes {
			c.AgentTypes = parsed
		}
	}
	if v, ok := cfg["percent_empty"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed < 1 {
			c.PercentEmpty = parsed
		}
	}
	if v, ok := cfg["same_neighbour"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 1 {
			c.SameNeighbour = parsed
		}
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && (parsed == Unbounded || parsed >= 1) {
			c.Iterations = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// LoadFile reads a YAML preset. Fields absent from the file keep their
// defaults; the result is validated before use.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("segregation: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("segregation: parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
