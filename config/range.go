package config

import (
	"fmt"
	"math/rand"
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Uniform draws a value uniformly from the range.
func (r Range) Uniform(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

func (r Range) validate(name string) []error {
	if r.Max < r.Min {
		return []error{fmt.Errorf("%s: max (%g) is less than min (%g)", name, r.Max, r.Min)}
	}
	return nil
}

// Varied is a range with additional symmetric noise applied after the draw.
type Varied struct {
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max"`
	Variation float64 `yaml:"variation"`
}

// Range returns the base interval without noise.
func (v Varied) Range() Range {
	return Range{Min: v.Min, Max: v.Max}
}

// Sample draws from [Min, Max] and perturbs by U[-Variation, Variation].
func (v Varied) Sample(rng *rand.Rand) float64 {
	base := v.Range().Uniform(rng)
	return base + (rng.Float64()*2-1)*v.Variation
}

func (v Varied) validate(name string) []error {
	errs := v.Range().validate(name)
	if v.Variation < 0 {
		errs = append(errs, fmt.Errorf("%s: variation must be non-negative, got %g", name, v.Variation))
	}
	return errs
}

// Fraction2 is a point expressed as fractions of the screen size.
type Fraction2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}
