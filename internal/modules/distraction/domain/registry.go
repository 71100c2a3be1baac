package domain

// Registry owns the live set of spawned distractions, keyed by surface id.
// It is mutated only from the session's event loop, so it carries no lock.
type Registry struct {
	objects map[string]*Object
}

func NewRegistry() *Registry {
	return &Registry{objects: map[string]*Object{}}
}

func (r *Registry) Add(o *Object) {
	r.objects[o.ID] = o
}

// Remove deletes the object if present and reports whether it was there.
// Removing an absent id is a defined no-op: a TTL callback and a bulk clear
// may race for the same object.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.objects[id]; !ok {
		return false
	}
	delete(r.objects, id)
	return true
}

func (r *Registry) Get(id string) (*Object, bool) {
	o, ok := r.objects[id]
	return o, ok
}

func (r *Registry) Len() int {
	return len(r.objects)
}

// Clear removes every entry and returns the removed ids so the caller can
// release the corresponding surface elements.
func (r *Registry) Clear() []string {
	ids := make([]string, 0, len(r.objects))
	for id := range r.objects {
		ids = append(ids, id)
	}
	r.objects = map[string]*Object{}
	return ids
}
