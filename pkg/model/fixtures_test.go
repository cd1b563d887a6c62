package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// smallRawInstance has four times, one teacher, one class and two rooms. Event "lecture"
// spans two times and needs a room, "tutorial" only needs the teacher and "lab" needs the
// class and the first room
func smallRawInstance() RawInstance {
	return RawInstance{
		Name:  "small",
		Times: []string{"Mon1", "Mon2", "Mon3", "Mon4"},
		TimeGroups: []RawTimeGroup{
			{Name: "Monday", Times: []int{0, 1, 2, 3}},
		},
		Resources: []RawResource{
			{Name: "T1", Kind: "teacher"},
			{Name: "C1", Kind: "class"},
			{Name: "R1", Kind: "room"},
			{Name: "R2", Kind: "room"},
		},
		Events: []RawEvent{
			{Name: "lecture", Duration: 2, Resources: []int{0, 1}, Rooms: []int{2, 3}},
			{Name: "tutorial", Duration: 1, Resources: []int{0}},
			{Name: "lab", Duration: 1, Resources: []int{1}, Rooms: []int{2}},
		},
		Constraints: []RawConstraint{
			{Name: "assign all", Kind: "assign-time", Required: true},
			{Name: "no clashes", Kind: "avoid-clashes", Required: true},
			{Name: "teacher leaves early", Kind: "avoid-unavailable-times", Resources: []int{0}, Times: []int{3}},
			{Name: "compact class", Kind: "limit-busy-times", Resources: []int{1}, TimeGroups: []int{0}, Minimum: 2, Maximum: 3},
			{Name: "lecture split", Kind: "split-events", Events: []int{0}, MinAmount: 1, MaxAmount: 2, MinDuration: 1, MaxDuration: 2},
		},
	}
}

func smallInstance(t *testing.T) *Instance {
	instance, err := ProcessRawInstance(smallRawInstance())
	require.Nil(t, err)
	return &instance
}
