package ledger

import (
	"iter"
	"slices"

	"railway-reservation/model"
)

// Registry holds trains in insertion order. Train numbers are not unique;
// every lookup resolves to the first train carrying the number.
type Registry struct {
	trains []model.Train
}

func NewRegistry(trains []model.Train) *Registry {
	return &Registry{trains: slices.Clone(trains)}
}

func (r *Registry) Add(train model.Train) {
	r.trains = append(r.trains, train)
}

func (r *Registry) Find(number int) (model.Train, bool) {
	i := r.index(number)
	if i < 0 {
		return model.Train{}, false
	}
	return r.trains[i], true
}

// AdjustSeats adds delta to the first matching train. It applies no lower bound,
// so callers must check availability first. Reports whether a train matched.
func (r *Registry) AdjustSeats(number, delta int) bool {
	i := r.index(number)
	if i < 0 {
		return false
	}
	r.trains[i].AvailableSeats += delta
	return true
}

func (r *Registry) All() iter.Seq[model.Train] {
	return slices.Values(r.trains)
}

func (r *Registry) Snapshot() []model.Train {
	return slices.Clone(r.trains)
}

func (r *Registry) Len() int {
	return len(r.trains)
}

func (r *Registry) index(number int) int {
	return slices.IndexFunc(r.trains, func(t model.Train) bool {
		return t.Number == number
	})
}
