package monitor

import (
	"log"

	"github.com/limaJavier/hstt/pkg/cost"
)

// Event is the structural event a monitor watches. AttachMonitor must replay the event's
// current meets to the observer before registering it
type Event interface {
	EventName() string
	AttachMonitor(observer EventObserver)
	DetachMonitor(observer EventObserver)
	CloneEvent(ctx *CopyContext) Event
}

// Resource is the structural resource a monitor watches. AttachMonitor must replay every
// non-zero time count to the observer before registering it
type Resource interface {
	ResourceName() string
	AttachMonitor(observer ResourceObserver)
	DetachMonitor(observer ResourceObserver)
	CloneResource(ctx *CopyContext) Resource
}

// EventObserver receives edits of an event's meets. Callbacks only stage deviations;
// the structural layer calls Flush once per logical edit
type EventObserver interface {
	Monitor
	AddMeet(duration int, assigned bool)
	DeleteMeet(duration int, assigned bool)
	SplitMeet(duration, duration1, duration2 int, assigned bool)
	MergeMeet(duration1, duration2, duration int, assigned bool)
	AssignTime(duration int)
	UnassignTime(duration int)
}

// ResourceObserver receives changes of the number of meets occupying a resource at a time
type ResourceObserver interface {
	Monitor
	ChangeTimeCount(time, oldCount, newCount int)
}

// CloneMonitor returns the clone of monitor within ctx
func CloneMonitor(ctx *CopyContext, monitor Monitor) Monitor {
	return monitor.clone(ctx)
}

// leaf is embedded by every constraint monitor
type leaf struct {
	tree       *Tree
	id         ID
	constraint *Constraint
}

func newLeaf(tree *Tree, constraint *Constraint) leaf {
	return leaf{
		tree:       tree,
		id:         tree.alloc(constraint.Kind),
		constraint: constraint,
	}
}

func (l *leaf) ID() ID                  { return l.id }
func (l *leaf) Kind() Kind              { return l.constraint.Kind }
func (l *leaf) Constraint() *Constraint { return l.constraint }
func (l *leaf) Cost() cost.Cost         { return l.tree.node(l.id).cost }
func (l *leaf) Attached() bool          { return l.tree.node(l.id).attached }

func (l *leaf) setAttached(attached bool) {
	l.tree.node(l.id).attached = attached
}

func (l *leaf) changeCost(newCost cost.Cost) {
	l.tree.changeCost(l.id, newCost)
}

// publish bills the constraint's cost of dev if it changed since the last flush
func (l *leaf) publish(dev *DevMonitor) {
	if dev.Flush() {
		l.changeCost(l.constraint.Cost(dev))
	}
}

func (l *leaf) mustAttach() {
	if l.Attached() {
		log.Panicf("monitor %v is already attached", l.id)
	}
	if !l.Cost().IsZero() {
		log.Panicf("monitor %v must have zero cost to be attached", l.id)
	}
	l.setAttached(true)
}

func (l *leaf) mustDetach() {
	if !l.Attached() {
		log.Panicf("monitor %v is not attached", l.id)
	}
}

// finishDetach zeroes the cost and marks the monitor detached
func (l *leaf) finishDetach() {
	l.changeCost(cost.Zero)
	l.setAttached(false)
}

func (l *leaf) checkDeviation(i, count int) {
	if i < 0 || i >= count {
		log.Panicf("deviation index %d out of range [0, %d) for monitor %v", i, count, l.id)
	}
}

func (l *leaf) cloneLeaf(ctx *CopyContext) leaf {
	return leaf{
		tree:       l.tree.Clone(ctx),
		id:         l.id,
		constraint: l.constraint,
	}
}
