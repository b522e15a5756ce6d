package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/drift/config"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		rates  []float64
		target float64
		want   float64
	}{
		{"on target and steady", []float64{5, 5, 5}, 5, 0},
		{"double target", []float64{10, 10}, 5, 1},
		{"bursty costs more", []float64{0, 10}, 5, 0.1},
		{"nothing culled", []float64{0, 0}, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Score(tt.rates, tt.target)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}

	if got, _ := Score(nil, 5); !math.IsInf(got, 1) {
		t.Errorf("Score(nil) = %v, want +Inf", got)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Count, cfg.Particles.Limit = 100, 100
	cfg.Telemetry.StatsWindow = 20
	cfg.Audio.Enabled = false

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 200, []int64{1, 2}, cfg, 1)

	a := fe.Evaluate(pv.DefaultVector())
	b := fe.Evaluate(pv.DefaultVector())
	if a != b {
		t.Errorf("same inputs scored %v then %v", a, b)
	}
	if math.IsInf(a, 0) || math.IsNaN(a) {
		t.Errorf("fitness = %v, want finite", a)
	}
}
