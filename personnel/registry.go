package personnel

import (
	"fmt"

	"github.com/warp/workforce-sim/generic"
)

// =============================================================================
// REGISTRY - Arena of persons addressed by ID
// =============================================================================

// Registry is a dense vector of persons plus an ID index. Persons are never
// removed: separated persons stay for historical analytics. Iteration order
// is creation order, which keeps every RNG-consuming loop deterministic.
type Registry struct {
	persons []*Person
	index   map[ID]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[ID]int)}
}

// Add appends a person. Adding a duplicate ID panics: IDs are never reused.
func (r *Registry) Add(p *Person) {
	if _, ok := r.index[p.ID]; ok {
		panic(fmt.Sprintf("personnel: duplicate person id %d", p.ID))
	}
	r.index[p.ID] = len(r.persons)
	r.persons = append(r.persons, p)
}

// Get resolves an ID.
func (r *Registry) Get(id ID) (*Person, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.persons[i], true
}

// Lookup resolves an ID or returns ErrPersonNotFound.
func (r *Registry) Lookup(id ID) (*Person, error) {
	p, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", generic.ErrPersonNotFound, id)
	}
	return p, nil
}

// SupervisorOf resolves a person's supervisor, if any.
func (r *Registry) SupervisorOf(p *Person) (*Person, bool) {
	id, ok := p.Supervisor.Get()
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// All returns every person in creation order, separated ones included.
func (r *Registry) All() []*Person { return r.persons }

// Active returns the persons still employed, in creation order.
func (r *Registry) Active() []*Person {
	out := make([]*Person, 0, len(r.persons))
	for _, p := range r.persons {
		if !p.Separated {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of persons ever created.
func (r *Registry) Len() int { return len(r.persons) }

// Records flattens every person.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.persons))
	for i, p := range r.persons {
		out[i] = p.ToRecord()
	}
	return out
}
