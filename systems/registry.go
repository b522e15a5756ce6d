package systems

// Phase IDs for the per-tick pipeline, in execution order.
const (
	PhaseInput     = "input"
	PhaseSpawn     = "spawn"
	PhaseForces    = "forces"
	PhaseIntegrate = "integrate"
	PhaseCull      = "cull"
	PhaseSources   = "sources"
	PhaseFrame     = "frame"
)

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "physics")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the pipeline phases in execution order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhaseInput, Name: "Input", Description: "Applies pointer commands", Category: "core"})
	r.Register(SystemInfo{ID: PhaseSpawn, Name: "Spawn", Description: "Creates particles per spawn policy", Category: "lifecycle"})
	r.Register(SystemInfo{ID: PhaseForces, Name: "Forces", Description: "Accumulates source forces", Category: "physics"})
	r.Register(SystemInfo{ID: PhaseIntegrate, Name: "Integrate", Description: "Updates velocity, position and trails", Category: "physics"})
	r.Register(SystemInfo{ID: PhaseCull, Name: "Cull", Description: "Removes off-screen particles", Category: "lifecycle"})
	r.Register(SystemInfo{ID: PhaseSources, Name: "Sources", Description: "Advances source orbits", Category: "physics"})
	r.Register(SystemInfo{ID: PhaseFrame, Name: "Frame", Description: "Snapshots state for rendering", Category: "core"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
