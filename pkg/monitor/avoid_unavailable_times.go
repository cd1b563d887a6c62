package monitor

import "fmt"

// AvoidUnavailableTimesMonitor bills the number of forbidden times at which the resource is busy
type AvoidUnavailableTimesMonitor struct {
	leaf
	resource  Resource
	forbidden map[int]bool
	busy      int
	dev       *DevMonitor
}

func NewAvoidUnavailableTimesMonitor(tree *Tree, constraint *Constraint, resource Resource, forbidden []int) *AvoidUnavailableTimesMonitor {
	monitor := &AvoidUnavailableTimesMonitor{
		leaf:      newLeaf(tree, constraint),
		resource:  resource,
		forbidden: make(map[int]bool, len(forbidden)),
		dev:       NewDevMonitor(),
	}
	for _, time := range forbidden {
		monitor.forbidden[time] = true
	}
	tree.bind(monitor.id, monitor)
	return monitor
}

func (monitor *AvoidUnavailableTimesMonitor) Resource() Resource { return monitor.resource }

func (monitor *AvoidUnavailableTimesMonitor) Forbidden(time int) bool { return monitor.forbidden[time] }

func (monitor *AvoidUnavailableTimesMonitor) AttachToSoln() {
	monitor.mustAttach()
	monitor.resource.AttachMonitor(monitor)
	monitor.Flush()
}

func (monitor *AvoidUnavailableTimesMonitor) DetachFromSoln() {
	monitor.mustDetach()
	monitor.resource.DetachMonitor(monitor)
	monitor.busy = 0
	monitor.dev.Reset()
	monitor.finishDetach()
}

func (monitor *AvoidUnavailableTimesMonitor) AttachCheck() {
	if !monitor.Attached() {
		monitor.AttachToSoln()
	}
}

func (monitor *AvoidUnavailableTimesMonitor) Flush() {
	if monitor.Attached() {
		monitor.publish(monitor.dev)
	}
}

func (monitor *AvoidUnavailableTimesMonitor) ChangeTimeCount(time, oldCount, newCount int) {
	if !monitor.forbidden[time] || (oldCount > 0) == (newCount > 0) {
		return
	}
	busy := monitor.busy + 1
	if newCount == 0 {
		busy = monitor.busy - 1
	}
	monitor.dev.Update(monitor.busy, busy)
	monitor.busy = busy
}

func (monitor *AvoidUnavailableTimesMonitor) DeviationCount() int { return 1 }

func (monitor *AvoidUnavailableTimesMonitor) Deviation(i int) int {
	monitor.checkDeviation(i, 1)
	return monitor.busy
}

func (monitor *AvoidUnavailableTimesMonitor) DeviationDescription(i int) string {
	monitor.checkDeviation(i, 1)
	return fmt.Sprintf("%v: busy at %d unavailable times", monitor.resource.ResourceName(), monitor.busy)
}

func (monitor *AvoidUnavailableTimesMonitor) clone(ctx *CopyContext) Monitor {
	return Copy(ctx, monitor, func(dst, src *AvoidUnavailableTimesMonitor) {
		dst.leaf = src.cloneLeaf(ctx)
		dst.resource = src.resource.CloneResource(ctx)
		dst.forbidden = src.forbidden // Immutable after construction
		dst.busy = src.busy
		dst.dev = src.dev.Clone()
	})
}
