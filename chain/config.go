package chain

import (
	"fmt"

	"github.com/onurmatik/MarkovMusic/constants"
	"github.com/onurmatik/MarkovMusic/quantize"
)

// Config carries the model hyperparameters. Validate runs before any
// training happens.
type Config struct {
	Order    int
	Rounding quantize.Rounding
}

func DefaultConfig() Config {
	return Config{
		Order:    constants.DefaultOrder,
		Rounding: quantize.Default(),
	}
}

func (c Config) Validate() error {
	if c.Order <= 0 {
		return fmt.Errorf("markov order must be positive, got %v", c.Order)
	}
	return c.Rounding.Validate()
}
