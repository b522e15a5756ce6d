package systems

import "testing"

func TestRegistryOrderMatchesPipeline(t *testing.T) {
	want := []string{PhaseInput, PhaseSpawn, PhaseForces, PhaseIntegrate, PhaseCull, PhaseSources, PhaseFrame}
	got := NewSystemRegistry().IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryLookups(t *testing.T) {
	r := NewSystemRegistry()

	if info, ok := r.Get(PhaseCull); !ok || info.Name != "Cull" {
		t.Errorf("Get(cull) = %+v, %v", info, ok)
	}
	if _, ok := r.Get("flora"); ok {
		t.Error("Get found an unregistered system")
	}
	if got := r.GetName("mystery"); got != "mystery" {
		t.Errorf("GetName fallback = %q, want the ID", got)
	}
	if n := len(r.ByCategory("physics")); n != 3 {
		t.Errorf("physics systems = %d, want 3", n)
	}
}
