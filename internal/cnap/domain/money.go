package domain

import "fmt"

// Cents is an amount of US dollars in minor units.
type Cents int64

func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// Dollars returns c as a float for display formatting only.
func (c Cents) Dollars() float64 { return float64(c) / 100 }
