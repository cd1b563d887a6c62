package monitor

import "fmt"

// AssignTimeMonitor bills the total duration of an event's meets that have no time
type AssignTimeMonitor struct {
	leaf
	event      Event
	unassigned int
	dev        *DevMonitor
}

func NewAssignTimeMonitor(tree *Tree, constraint *Constraint, event Event) *AssignTimeMonitor {
	monitor := &AssignTimeMonitor{
		leaf:  newLeaf(tree, constraint),
		event: event,
		dev:   NewDevMonitor(),
	}
	tree.bind(monitor.id, monitor)
	return monitor
}

func (monitor *AssignTimeMonitor) Event() Event { return monitor.event }

func (monitor *AssignTimeMonitor) AttachToSoln() {
	monitor.mustAttach()
	monitor.event.AttachMonitor(monitor)
	monitor.Flush()
}

func (monitor *AssignTimeMonitor) DetachFromSoln() {
	monitor.mustDetach()
	monitor.event.DetachMonitor(monitor)
	monitor.unassigned = 0
	monitor.dev.Reset()
	monitor.finishDetach()
}

func (monitor *AssignTimeMonitor) AttachCheck() {
	if !monitor.Attached() {
		monitor.AttachToSoln()
	}
}

func (monitor *AssignTimeMonitor) Flush() {
	if monitor.Attached() {
		monitor.publish(monitor.dev)
	}
}

func (monitor *AssignTimeMonitor) setUnassigned(unassigned int) {
	monitor.dev.Update(monitor.unassigned, unassigned)
	monitor.unassigned = unassigned
}

func (monitor *AssignTimeMonitor) AddMeet(duration int, assigned bool) {
	if !assigned {
		monitor.setUnassigned(monitor.unassigned + duration)
	}
}

func (monitor *AssignTimeMonitor) DeleteMeet(duration int, assigned bool) {
	if !assigned {
		monitor.setUnassigned(monitor.unassigned - duration)
	}
}

// Splitting or merging keeps the unassigned total
func (monitor *AssignTimeMonitor) SplitMeet(duration, duration1, duration2 int, assigned bool) {}

func (monitor *AssignTimeMonitor) MergeMeet(duration1, duration2, duration int, assigned bool) {}

func (monitor *AssignTimeMonitor) AssignTime(duration int) {
	monitor.setUnassigned(monitor.unassigned - duration)
}

func (monitor *AssignTimeMonitor) UnassignTime(duration int) {
	monitor.setUnassigned(monitor.unassigned + duration)
}

func (monitor *AssignTimeMonitor) DeviationCount() int { return 1 }

func (monitor *AssignTimeMonitor) Deviation(i int) int {
	monitor.checkDeviation(i, 1)
	return monitor.unassigned
}

func (monitor *AssignTimeMonitor) DeviationDescription(i int) string {
	monitor.checkDeviation(i, 1)
	return fmt.Sprintf("%v: %d unassigned", monitor.event.EventName(), monitor.unassigned)
}

func (monitor *AssignTimeMonitor) clone(ctx *CopyContext) Monitor {
	return Copy(ctx, monitor, func(dst, src *AssignTimeMonitor) {
		dst.leaf = src.cloneLeaf(ctx)
		dst.event = src.event.CloneEvent(ctx)
		dst.unassigned = src.unassigned
		dst.dev = src.dev.Clone()
	})
}
