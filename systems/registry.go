package systems

import "fmt"

// Phase is one named stage of a game step.
type Phase struct {
	ID   string // perf key, see telemetry.Phases
	Name string // label shown in the perf panel
	Run  func()
}

// SystemRegistry runs phases in the order they were added.
type SystemRegistry struct {
	phases []Phase
	index  map[string]int
}

// NewSystemRegistry returns an empty registry.
func NewSystemRegistry() *SystemRegistry {
	return &SystemRegistry{index: make(map[string]int)}
}

// Add appends a phase. IDs must be unique and Run must be set.
func (r *SystemRegistry) Add(id, name string, run func()) error {
	if run == nil {
		return fmt.Errorf("phase %q: nil run func", id)
	}
	if _, dup := r.index[id]; dup {
		return fmt.Errorf("phase %q: already registered", id)
	}
	r.index[id] = len(r.phases)
	r.phases = append(r.phases, Phase{ID: id, Name: name, Run: run})
	return nil
}

// MustAdd is Add for fixed setup code; it panics on error.
func (r *SystemRegistry) MustAdd(id, name string, run func()) {
	if err := r.Add(id, name, run); err != nil {
		panic(err)
	}
}

// Run executes every phase. before, if set, is called with each phase ID
// right before that phase runs.
func (r *SystemRegistry) Run(before func(id string)) {
	for _, p := range r.phases {
		if before != nil {
			before(p.ID)
		}
		p.Run()
	}
}

// GetName returns the display name for id, or id itself when unknown.
func (r *SystemRegistry) GetName(id string) string {
	if i, ok := r.index[id]; ok {
		return r.phases[i].Name
	}
	return id
}

// IDs returns phase IDs in execution order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.phases))
	for i, p := range r.phases {
		ids[i] = p.ID
	}
	return ids
}

// Len returns the number of phases.
func (r *SystemRegistry) Len() int { return len(r.phases) }
