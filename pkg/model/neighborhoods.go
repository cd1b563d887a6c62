package model

import (
	"github.com/limaJavier/hstt/pkg/move"
	"github.com/limaJavier/hstt/pkg/search"
)

// Neighborhoods binds the solution's neighbourhoods. Empty ones are left out
func (soln *Solution) Neighborhoods() []search.Neighborhood {
	neighborhoods := make([]search.Neighborhood, 0, 4)
	if len(soln.meets) >= 2 {
		neighborhoods = append(neighborhoods, &swapNeighborhood{soln: soln})
	}
	if len(soln.meets) > 0 {
		neighborhoods = append(neighborhoods, &timeNeighborhood{soln: soln}, &kempeNeighborhood{soln: soln})
	}
	if len(soln.meets) > 0 && len(soln.instance.Rooms) > 0 {
		neighborhoods = append(neighborhoods, &roomNeighborhood{soln: soln})
	}
	return neighborhoods
}

// swapNeighborhood exchanges the starts of two assigned meets
type swapNeighborhood struct {
	soln *Solution
	last move.Move
}

func (n *swapNeighborhood) Name() string { return "swap" }

func (n *swapNeighborhood) Dims() (int, int) { return len(n.soln.meets), 0 }

func (n *swapNeighborhood) Apply(mv move.Move) bool {
	if !n.soln.CheckSwapTimes(mv.I, mv.J) {
		return false
	}
	n.soln.SwapTimes(mv.I, mv.J)
	n.last = mv
	return true
}

func (n *swapNeighborhood) Undo() {
	n.soln.SwapTimes(n.last.I, n.last.J)
}

// timeNeighborhood gives meet I the start J, assigning it if it had none
type timeNeighborhood struct {
	soln      *Solution
	meet      int
	lastStart int
}

func (n *timeNeighborhood) Name() string { return "time" }

func (n *timeNeighborhood) Dims() (int, int) { return len(n.soln.meets), len(n.soln.instance.Times) }

func (n *timeNeighborhood) Apply(mv move.Move) bool {
	meet := n.soln.meets[mv.I]
	if meet.Assigned() {
		if !n.soln.CheckMoveTime(mv.I, mv.J) {
			return false
		}
		n.soln.MoveTime(mv.I, mv.J)
	} else {
		if !n.soln.CheckAssignTime(mv.I, mv.J) {
			return false
		}
		n.soln.AssignTime(mv.I, mv.J)
	}
	n.meet, n.lastStart = mv.I, meet.Start
	return true
}

func (n *timeNeighborhood) Undo() {
	if n.lastStart < 0 {
		n.soln.UnassignTime(n.meet)
	} else {
		n.soln.MoveTime(n.meet, n.lastStart)
	}
}

// roomNeighborhood gives meet I the J-th room of the instance
type roomNeighborhood struct {
	soln     *Solution
	meet     int
	lastRoom int
}

func (n *roomNeighborhood) Name() string { return "room" }

func (n *roomNeighborhood) Dims() (int, int) { return len(n.soln.meets), len(n.soln.instance.Rooms) }

func (n *roomNeighborhood) Apply(mv move.Move) bool {
	room := n.soln.instance.Rooms[mv.J]
	if !n.soln.CheckAssignRoom(mv.I, room) {
		return false
	}
	n.meet, n.lastRoom = mv.I, n.soln.meets[mv.I].Room
	n.soln.AssignRoom(mv.I, room)
	return true
}

func (n *roomNeighborhood) Undo() {
	if n.lastRoom < 0 {
		n.soln.UnassignRoom(n.meet)
	} else {
		n.soln.AssignRoom(n.meet, n.lastRoom)
	}
}

// kempeNeighborhood moves meet I to start J together with its Kempe chain
type kempeNeighborhood struct {
	soln       *Solution
	lastMeets  []int
	lastStarts []int
}

func (n *kempeNeighborhood) Name() string { return "kempe" }

func (n *kempeNeighborhood) Dims() (int, int) { return len(n.soln.meets), len(n.soln.instance.Times) }

func (n *kempeNeighborhood) Apply(mv move.Move) bool {
	if !n.soln.CheckKempeMove(mv.I, mv.J) {
		return false
	}
	n.lastMeets, n.lastStarts = n.soln.KempeMove(mv.I, mv.J)
	return true
}

func (n *kempeNeighborhood) Undo() {
	n.soln.setStarts(n.lastMeets, n.lastStarts)
}
