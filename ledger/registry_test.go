package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"railway-reservation/model"
)

func TestRegistryAdjustSeats(t *testing.T) {
	r := NewRegistry([]model.Train{
		{Number: 1, Name: "A", AvailableSeats: 1},
		{Number: 2, Name: "B", AvailableSeats: 1},
		{Number: 1, Name: "C", AvailableSeats: 1},
	})

	assert.True(t, r.AdjustSeats(1, -1))
	assert.True(t, r.AdjustSeats(1, -1))
	assert.False(t, r.AdjustSeats(3, +1))

	assert.Equal(t, []int{-1, 1, 1}, seatCounts(r))
}

func TestRegistrySnapshotIsolated(t *testing.T) {
	r := NewRegistry(nil)
	r.Add(model.Train{Number: 1, Name: "A", AvailableSeats: 2})

	snap := r.Snapshot()
	r.AdjustSeats(1, -1)

	assert.Equal(t, 2, snap[0].AvailableSeats)
	assert.Equal(t, 1, r.Len())
}

func seatCounts(r *Registry) []int {
	var out []int
	for t := range r.All() {
		out = append(out, t.AvailableSeats)
	}
	return out
}
