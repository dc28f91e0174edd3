package domain

import (
	"fmt"
	"math"
)

// Cents is a money amount in integer cents, keeping rollup sums exact.
type Cents int64

// CentsFromFloat converts a currency amount expressed in whole units
// (e.g. 12.34) to Cents, rounding to the nearest cent.
func CentsFromFloat(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Float returns the amount in whole currency units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	return fmt.Sprintf("%.2f", c.Float())
}
