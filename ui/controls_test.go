package ui

import (
	"testing"

	"github.com/pthm-cable/drift/config"
)

func TestSlidersRoundTrip(t *testing.T) {
	cfg := config.Default()
	tun := Tunables{Forces: cfg.Forces, AngularStep: cfg.Sources.AngularStep}

	for _, s := range Sliders() {
		t.Run(s.Label, func(t *testing.T) {
			if s.Min >= s.Max {
				t.Fatalf("empty range [%v, %v]", s.Min, s.Max)
			}
			def := s.Get(&tun)
			if def < float64(s.Min) || def > float64(s.Max) {
				t.Errorf("default %v outside slider range [%v, %v]", def, s.Min, s.Max)
			}

			cp := tun
			want := float64(s.Min+s.Max) / 2
			s.Set(&cp, want)
			if got := s.Get(&cp); got != want {
				t.Errorf("Get after Set = %v, want %v", got, want)
			}
			if s.Get(&tun) != def {
				t.Error("Set modified the original tunables")
			}
		})
	}
}

func TestSlidersCoverEveryForce(t *testing.T) {
	var tun Tunables
	for i, s := range Sliders() {
		s.Set(&tun, float64(i+1))
	}
	f := tun.Forces
	if f.Attraction == 0 || f.Repulsion == 0 || f.Interactive == 0 || f.Swirl == 0 || tun.AngularStep == 0 {
		t.Errorf("some tunable has no slider: %+v", tun)
	}
}
