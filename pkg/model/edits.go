package model

import (
	"log"
	"slices"

	"github.com/limaJavier/hstt/pkg/monitor"
)

// Every edit comes as a Check predicate and an applying method. Applying an edit whose
// check fails is a programming error and panics

func (soln *Solution) checkMeet(m int) {
	if m < 0 || m >= len(soln.meets) {
		log.Panicf("meet %d is out of range [0, %d)", m, len(soln.meets))
	}
}

func (soln *Solution) fits(meet Meet, start int) bool {
	return start >= 0 && start+meet.Duration <= len(soln.instance.Times)
}

func (soln *Solution) CheckAssignTime(m, start int) bool {
	soln.checkMeet(m)
	meet := soln.meets[m]
	return !meet.Assigned() && soln.fits(meet, start)
}

func (soln *Solution) AssignTime(m, start int) {
	if !soln.CheckAssignTime(m, start) {
		log.Panicf("cannot assign time %d to meet %d", start, m)
	}
	meet := &soln.meets[m]
	meet.Start = start
	soln.events[meet.Event].notify(func(observer monitor.EventObserver) { observer.AssignTime(meet.Duration) })
	soln.occupy(*meet, 1)
	soln.flush()
}

func (soln *Solution) CheckUnassignTime(m int) bool {
	soln.checkMeet(m)
	return soln.meets[m].Assigned()
}

func (soln *Solution) UnassignTime(m int) {
	if !soln.CheckUnassignTime(m) {
		log.Panicf("cannot unassign the time of meet %d: it has none", m)
	}
	meet := &soln.meets[m]
	soln.occupy(*meet, -1)
	meet.Start = -1
	soln.events[meet.Event].notify(func(observer monitor.EventObserver) { observer.UnassignTime(meet.Duration) })
	soln.flush()
}

func (soln *Solution) CheckMoveTime(m, start int) bool {
	soln.checkMeet(m)
	meet := soln.meets[m]
	return meet.Assigned() && meet.Start != start && soln.fits(meet, start)
}

func (soln *Solution) MoveTime(m, start int) {
	if !soln.CheckMoveTime(m, start) {
		log.Panicf("cannot move meet %d to time %d", m, start)
	}
	meet := &soln.meets[m]
	soln.occupy(*meet, -1)
	meet.Start = start
	soln.occupy(*meet, 1)
	soln.flush()
}

func (soln *Solution) CheckSwapTimes(m1, m2 int) bool {
	soln.checkMeet(m1)
	soln.checkMeet(m2)
	meet1, meet2 := soln.meets[m1], soln.meets[m2]
	return m1 != m2 &&
		meet1.Assigned() && meet2.Assigned() &&
		meet1.Start != meet2.Start &&
		soln.fits(meet1, meet2.Start) && soln.fits(meet2, meet1.Start)
}

func (soln *Solution) SwapTimes(m1, m2 int) {
	if !soln.CheckSwapTimes(m1, m2) {
		log.Panicf("cannot swap the times of meets %d and %d", m1, m2)
	}
	meet1, meet2 := &soln.meets[m1], &soln.meets[m2]
	soln.occupy(*meet1, -1)
	soln.occupy(*meet2, -1)
	meet1.Start, meet2.Start = meet2.Start, meet1.Start
	soln.occupy(*meet1, 1)
	soln.occupy(*meet2, 1)
	soln.flush()
}

// CheckAssignRoom accepts any candidate room of the meet's event other than its current one
func (soln *Solution) CheckAssignRoom(m, room int) bool {
	soln.checkMeet(m)
	meet := soln.meets[m]
	return meet.Room != room && slices.Contains(soln.instance.Events[meet.Event].Rooms, room)
}

func (soln *Solution) AssignRoom(m, room int) {
	if !soln.CheckAssignRoom(m, room) {
		log.Panicf("cannot assign room %d to meet %d", room, m)
	}
	soln.setRoom(m, room)
}

func (soln *Solution) CheckUnassignRoom(m int) bool {
	soln.checkMeet(m)
	return soln.meets[m].Room >= 0
}

func (soln *Solution) UnassignRoom(m int) {
	if !soln.CheckUnassignRoom(m) {
		log.Panicf("cannot unassign the room of meet %d: it has none", m)
	}
	soln.setRoom(m, -1)
}

func (soln *Solution) setRoom(m, room int) {
	meet := &soln.meets[m]
	soln.occupy(*meet, -1)
	meet.Room = room
	soln.occupy(*meet, 1)
	soln.flush()
}

func (soln *Solution) CheckSplitMeet(m, duration1 int) bool {
	soln.checkMeet(m)
	return duration1 > 0 && duration1 < soln.meets[m].Duration
}

// SplitMeet shortens meet m to duration1 and returns the index of the new meet holding the
// rest. The new meet starts right after m and keeps its room, so occupancy is unchanged
func (soln *Solution) SplitMeet(m, duration1 int) int {
	if !soln.CheckSplitMeet(m, duration1) {
		log.Panicf("cannot split meet %d at duration %d", m, duration1)
	}
	meet := &soln.meets[m]
	duration, duration2 := meet.Duration, meet.Duration-duration1
	rest := Meet{Event: meet.Event, Duration: duration2, Start: -1, Room: meet.Room}
	if meet.Assigned() {
		rest.Start = meet.Start + duration1
	}
	meet.Duration = duration1
	assigned := meet.Assigned()
	soln.meets = append(soln.meets, rest)

	soln.events[rest.Event].notify(func(observer monitor.EventObserver) {
		observer.SplitMeet(duration, duration1, duration2, assigned)
	})
	soln.flush()
	return len(soln.meets) - 1
}

// CheckMergeMeets accepts two meets of one event that are both unassigned, or where m2
// starts right where m1 ends in the same room
func (soln *Solution) CheckMergeMeets(m1, m2 int) bool {
	soln.checkMeet(m1)
	soln.checkMeet(m2)
	meet1, meet2 := soln.meets[m1], soln.meets[m2]
	if m1 == m2 || meet1.Event != meet2.Event || meet1.Room != meet2.Room {
		return false
	}
	if !meet1.Assigned() && !meet2.Assigned() {
		return true
	}
	return meet1.Assigned() && meet2.Assigned() && meet1.Start+meet1.Duration == meet2.Start
}

// MergeMeets absorbs m2 into m1. The last meet takes m2's index; the returned index is m1's
// position afterwards
func (soln *Solution) MergeMeets(m1, m2 int) int {
	if !soln.CheckMergeMeets(m1, m2) {
		log.Panicf("cannot merge meets %d and %d", m1, m2)
	}
	meet1, meet2 := &soln.meets[m1], soln.meets[m2]
	duration1, duration2 := meet1.Duration, meet2.Duration
	meet1.Duration += duration2
	assigned := meet1.Assigned()

	last := len(soln.meets) - 1
	soln.meets[m2] = soln.meets[last]
	soln.meets = soln.meets[:last]
	if m1 == last {
		m1 = m2
	}

	soln.events[meet2.Event].notify(func(observer monitor.EventObserver) {
		observer.MergeMeet(duration1, duration2, duration1+duration2, assigned)
	})
	soln.flush()
	return m1
}
