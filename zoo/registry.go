package zoo

// Registry holds the animals and people loaded for a run. It is filled
// during load and only read while commands are processed.
type Registry struct {
	animals     map[string]Animal
	animalOrder []string
	people      map[string]Person
	peopleOrder []string
}

func NewRegistry() *Registry {
	return &Registry{
		animals: make(map[string]Animal),
		people:  make(map[string]Person),
	}
}

// AddAnimal registers a by name. A later animal with the same name replaces
// the earlier one.
func (r *Registry) AddAnimal(a Animal) {
	if _, ok := r.animals[a.Name]; !ok {
		r.animalOrder = append(r.animalOrder, a.Name)
	}
	r.animals[a.Name] = a
}

// AddPerson registers p by id, last one wins.
func (r *Registry) AddPerson(p Person) {
	if _, ok := r.people[p.ID]; !ok {
		r.peopleOrder = append(r.peopleOrder, p.ID)
	}
	r.people[p.ID] = p
}

func (r *Registry) Animal(name string) (Animal, error) {
	a, ok := r.animals[name]
	if !ok {
		return Animal{}, &EntityNotFoundError{Kind: KindAnimal, Key: name}
	}
	return a, nil
}

func (r *Registry) Person(id string) (Person, error) {
	p, ok := r.people[id]
	if !ok {
		return Person{}, &EntityNotFoundError{Kind: KindPerson, Key: id}
	}
	return p, nil
}

// Animals returns animals in first-registered order.
func (r *Registry) Animals() []Animal {
	out := make([]Animal, 0, len(r.animalOrder))
	for _, name := range r.animalOrder {
		out = append(out, r.animals[name])
	}
	return out
}

// People returns people in first-registered order.
func (r *Registry) People() []Person {
	out := make([]Person, 0, len(r.peopleOrder))
	for _, id := range r.peopleOrder {
		out = append(out, r.people[id])
	}
	return out
}
