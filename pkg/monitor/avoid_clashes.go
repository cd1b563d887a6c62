package monitor

import (
	"fmt"
	"maps"
	"slices"
)

// AvoidClashesMonitor bills, for every time, the number of meets occupying the resource beyond the first
type AvoidClashesMonitor struct {
	leaf
	resource Resource
	clashes  map[int]int // Time -> deviation, non-zero entries only
	dev      *DevMonitor
}

func NewAvoidClashesMonitor(tree *Tree, constraint *Constraint, resource Resource) *AvoidClashesMonitor {
	monitor := &AvoidClashesMonitor{
		leaf:     newLeaf(tree, constraint),
		resource: resource,
		clashes:  make(map[int]int),
		dev:      NewDevMonitor(),
	}
	tree.bind(monitor.id, monitor)
	return monitor
}

func (monitor *AvoidClashesMonitor) Resource() Resource { return monitor.resource }

func (monitor *AvoidClashesMonitor) AttachToSoln() {
	monitor.mustAttach()
	monitor.resource.AttachMonitor(monitor)
	monitor.Flush()
}

func (monitor *AvoidClashesMonitor) DetachFromSoln() {
	monitor.mustDetach()
	monitor.resource.DetachMonitor(monitor)
	clear(monitor.clashes)
	monitor.dev.Reset()
	monitor.finishDetach()
}

func (monitor *AvoidClashesMonitor) AttachCheck() {
	if !monitor.Attached() {
		monitor.AttachToSoln()
	}
}

func (monitor *AvoidClashesMonitor) Flush() {
	if monitor.Attached() {
		monitor.publish(monitor.dev)
	}
}

func (monitor *AvoidClashesMonitor) ChangeTimeCount(time, oldCount, newCount int) {
	oldDeviation, newDeviation := max(0, oldCount-1), max(0, newCount-1)
	if oldDeviation == newDeviation {
		return
	}
	monitor.dev.Update(oldDeviation, newDeviation)
	if newDeviation == 0 {
		delete(monitor.clashes, time)
	} else {
		monitor.clashes[time] = newDeviation
	}
}

func (monitor *AvoidClashesMonitor) clashTimes() []int {
	return slices.Sorted(maps.Keys(monitor.clashes))
}

func (monitor *AvoidClashesMonitor) DeviationCount() int { return len(monitor.clashes) }

func (monitor *AvoidClashesMonitor) Deviation(i int) int {
	monitor.checkDeviation(i, len(monitor.clashes))
	return monitor.clashes[monitor.clashTimes()[i]]
}

func (monitor *AvoidClashesMonitor) DeviationDescription(i int) string {
	monitor.checkDeviation(i, len(monitor.clashes))
	time := monitor.clashTimes()[i]
	return fmt.Sprintf("%v: %d clashes at time %d", monitor.resource.ResourceName(), monitor.clashes[time], time)
}

func (monitor *AvoidClashesMonitor) clone(ctx *CopyContext) Monitor {
	return Copy(ctx, monitor, func(dst, src *AvoidClashesMonitor) {
		dst.leaf = src.cloneLeaf(ctx)
		dst.resource = src.resource.CloneResource(ctx)
		dst.clashes = maps.Clone(src.clashes)
		dst.dev = src.dev.Clone()
	})
}
