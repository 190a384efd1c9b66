package config

import (
	"fmt"
	"strconv"
)

// ApplyArgs overrides the evolution parameters from positional arguments in
// the order desired_number, population_size, cross_range, sleep (seconds).
// Missing arguments keep their configured values; values are clamped, not rejected.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) > 4 {
		return fmt.Errorf("expected at most 4 arguments, got %d", len(args))
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"desired_number", &c.Evolution.DesiredNumber},
		{"population_size", &c.Evolution.PopulationSize},
		{"cross_range", &c.Evolution.CrossRange},
	}
	for i, arg := range args {
		if i < len(ints) {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", ints[i].name, err)
			}
			*ints[i].dst = v
			continue
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("parsing sleep: %w", err)
		}
		c.Evolution.Sleep = v
	}

	c.Normalize()
	return nil
}
