package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the live viewer.
type Config struct {
	Width         int
	Height        int
	AgentTypes    int
	PercentEmpty  float64
	SameNeighbour float64
	Scale         int
	TPS           int
	Seed          int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:         60,
		Height:        60,
		AgentTypes:    2,
		PercentEmpty:  0.5,
		SameNeighbour: 0.4,
		Scale:         8,
		TPS:           4,
		Seed:          1337,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width")
	fs.IntVar(&c.Height, "h", c.Height, "grid height")
	fs.IntVar(&c.AgentTypes, "types", c.AgentTypes, "number of agent types")
	fs.Float64Var(&c.PercentEmpty, "empty", c.PercentEmpty, "fraction of vacant cells")
	fs.Float64Var(&c.SameNeighbour, "similar", c.SameNeighbour, "same-neighbour threshold")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
}

// SimParams renders the viewer flags as a string map for the sim registry.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"w":              strconv.Itoa(c.Width),
		"h":              strconv.Itoa(c.Height),
		"types":          strconv.Itoa(c.AgentTypes),
		"percent_empty":  strconv.FormatFloat(c.PercentEmpty, 'f', -1, 64),
		"same_neighbour": strconv.FormatFloat(c.SameNeighbour, 'f', -1, 64),
		"seed":           strconv.FormatInt(c.Seed, 10),
	}
}
