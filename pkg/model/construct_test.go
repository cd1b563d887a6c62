package model

import (
	"testing"

	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/limaJavier/hstt/pkg/sat"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruct(t *testing.T) {
	//** Arrange
	soln := NewSolution(smallInstance(t))

	//** Act
	err := soln.Construct(sat.NewGophersatSolver(), DefaultMaxVariables)

	//** Assert
	require.Nil(t, err)
	assert.True(t, lo.EveryBy(soln.Meets(), func(meet Meet) bool { return meet.Assigned() }))
	assigned, _ := soln.Root().CostByType(monitor.KindAssignTime)
	clashes, _ := soln.Root().CostByType(monitor.KindAvoidClashes)
	assert.Equal(t, cost.Zero, assigned)
	assert.Equal(t, cost.Zero, clashes)
	for _, meet := range soln.Meets() {
		if len(soln.Instance().Events[meet.Event].Rooms) > 0 {
			assert.GreaterOrEqual(t, meet.Room, 0, "meet of %v has no room", soln.Instance().Events[meet.Event].Name)
		}
	}
	assert.True(t, soln.Verify())
}

func TestConstructRespectsRequiredUnavailability(t *testing.T) {
	//** Arrange
	raw := smallRawInstance()
	raw.Constraints[2].Required = true
	instance, err := ProcessRawInstance(raw)
	require.Nil(t, err)
	soln := NewSolution(&instance)

	//** Act
	require.Nil(t, soln.Construct(sat.NewGophersatSolver(), DefaultMaxVariables))

	//** Assert
	assert.Zero(t, soln.Cost().Hard)
	for _, m := range append(soln.MeetsOf(0), soln.MeetsOf(1)...) {
		meet := soln.Meet(m)
		assert.Less(t, meet.Start+meet.Duration-1, 3, "the teacher is unavailable at the last time")
	}
}

func TestConstructUnsatisfiable(t *testing.T) {
	//** Arrange
	instance, err := ProcessRawInstance(RawInstance{
		Name:      "overbooked",
		Times:     []string{"t0", "t1"},
		Resources: []RawResource{{Name: "T1", Kind: "teacher"}},
		Events: []RawEvent{
			{Name: "A", Duration: 2, Resources: []int{0}},
			{Name: "B", Duration: 1, Resources: []int{0}},
		},
		Constraints: []RawConstraint{{Name: "assign all", Kind: "assign-time", Required: true}},
	})
	require.Nil(t, err)
	soln := NewSolution(&instance)

	//** Act
	err = soln.Construct(sat.NewGophersatSolver(), DefaultMaxVariables)

	//** Assert
	assert.Nil(t, err)
	assert.Equal(t, cost.Hard(3), soln.Cost(), "every meet is left for the search")
}

func TestConstructSkipsLargeEncodings(t *testing.T) {
	soln := NewSolution(smallInstance(t))

	require.Nil(t, soln.Construct(sat.NewGophersatSolver(), 1))

	assert.Equal(t, cost.Hard(4), soln.Cost())
}

func TestBuildSatIsDeterministic(t *testing.T) {
	soln := NewSolution(smallInstance(t))
	state := constraintState{soln: soln, indexer: newIndexer(4), meets: []int{0, 1, 2}, times: 4}
	constraints := []func(state constraintState) [][]int64{completenessConstraints, uniquenessConstraints, clashConstraints}

	first := buildSat(12, constraints, state)
	second := buildSat(12, constraints, state)

	assert.Equal(t, first, second)
	// Lecture has 3 starts, tutorial and lab 4 each
	assert.Contains(t, first.Clauses, []int64{1, 2, 3})
	assert.Contains(t, first.Clauses, []int64{-1, -2})
}

func TestIndexer(t *testing.T) {
	indexer := newIndexer(5)
	for meet := range 4 {
		for start := range 5 {
			m, s := indexer.Attributes(indexer.Index(meet, start))
			assert.Equal(t, [2]int{meet, start}, [2]int{m, s})
		}
	}
}

func TestAssignRooms(t *testing.T) {
	t.Run("Complete matching", func(t *testing.T) {
		fits := func(meet, room int) bool { return meet == 1 || room == 10 }

		assignments, err := assignRooms([]int{0, 1}, []int{10, 11}, fits)

		assert.Nil(t, err)
		assert.Equal(t, [][2]int{{0, 10}, {1, 11}}, assignments)
	})

	t.Run("Partial matching", func(t *testing.T) {
		fits := func(meet, room int) bool { return room == 10 }

		assignments, err := assignRooms([]int{0, 1}, []int{10, 11}, fits)

		assert.Equal(t, unassignableError{unmatched: 1}, err)
		assert.Len(t, assignments, 1)
	})

	t.Run("No rooms", func(t *testing.T) {
		_, err := assignRooms([]int{0}, nil, func(int, int) bool { return true })
		assert.NotNil(t, err)
	})
}

func TestAssignRoomsAvoidsBusyRooms(t *testing.T) {
	//** Arrange
	soln := NewSolution(smallInstance(t))
	soln.AssignTime(0, 0)
	soln.AssignTime(2, 1)
	soln.AssignRoom(2, 2) // The lab takes R1 at time 1

	//** Act
	unmatched := soln.AssignRooms()

	//** Assert
	assert.Zero(t, unmatched)
	assert.Equal(t, 3, soln.Meet(0).Room, "R1 is busy during the lecture")
	assert.True(t, soln.Verify())
}
