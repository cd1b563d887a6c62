package monitor

import (
	"fmt"
	"slices"
)

type TimeGroup struct {
	Name  string
	Times []int
}

// LimitBusyTimesMonitor bills, for each monitored time group, how far the number of busy
// times of the resource lies outside [Minimum, Maximum]. An idle time group never deviates
type LimitBusyTimesMonitor struct {
	leaf
	resource   Resource
	groups     []TimeGroup
	minimum    int
	maximum    int
	timeGroups map[int][]int // Time -> indices of the groups containing it
	busy       []int         // Busy times per group
	dev        *DevMonitor
}

func NewLimitBusyTimesMonitor(tree *Tree, constraint *Constraint, resource Resource, groups []TimeGroup, minimum, maximum int) *LimitBusyTimesMonitor {
	monitor := &LimitBusyTimesMonitor{
		leaf:       newLeaf(tree, constraint),
		resource:   resource,
		groups:     groups,
		minimum:    minimum,
		maximum:    maximum,
		timeGroups: make(map[int][]int),
		busy:       make([]int, len(groups)),
		dev:        NewDevMonitor(),
	}
	for i, group := range groups {
		for _, time := range group.Times {
			if !slices.Contains(monitor.timeGroups[time], i) {
				monitor.timeGroups[time] = append(monitor.timeGroups[time], i)
			}
		}
	}
	tree.bind(monitor.id, monitor)
	return monitor
}

func (monitor *LimitBusyTimesMonitor) Resource() Resource { return monitor.resource }

func (monitor *LimitBusyTimesMonitor) Limits() (minimum, maximum int) {
	return monitor.minimum, monitor.maximum
}

func (monitor *LimitBusyTimesMonitor) AttachToSoln() {
	monitor.mustAttach()
	monitor.resource.AttachMonitor(monitor)
	monitor.Flush()
}

func (monitor *LimitBusyTimesMonitor) DetachFromSoln() {
	monitor.mustDetach()
	monitor.resource.DetachMonitor(monitor)
	clear(monitor.busy)
	monitor.dev.Reset()
	monitor.finishDetach()
}

func (monitor *LimitBusyTimesMonitor) AttachCheck() {
	if !monitor.Attached() {
		monitor.AttachToSoln()
	}
}

func (monitor *LimitBusyTimesMonitor) Flush() {
	if monitor.Attached() {
		monitor.publish(monitor.dev)
	}
}

func (monitor *LimitBusyTimesMonitor) deviation(busy int) int {
	if busy == 0 {
		return 0
	} else if busy < monitor.minimum {
		return monitor.minimum - busy
	} else if busy > monitor.maximum {
		return busy - monitor.maximum
	}
	return 0
}

func (monitor *LimitBusyTimesMonitor) ChangeTimeCount(time, oldCount, newCount int) {
	if (oldCount > 0) == (newCount > 0) {
		return
	}
	step := 1
	if newCount == 0 {
		step = -1
	}
	for _, group := range monitor.timeGroups[time] {
		oldDeviation := monitor.deviation(monitor.busy[group])
		monitor.busy[group] += step
		monitor.dev.Update(oldDeviation, monitor.deviation(monitor.busy[group]))
	}
}

func (monitor *LimitBusyTimesMonitor) DeviationCount() int { return len(monitor.groups) }

func (monitor *LimitBusyTimesMonitor) Deviation(i int) int {
	monitor.checkDeviation(i, len(monitor.groups))
	return monitor.deviation(monitor.busy[i])
}

func (monitor *LimitBusyTimesMonitor) DeviationDescription(i int) string {
	monitor.checkDeviation(i, len(monitor.groups))
	return fmt.Sprintf("%v: %d busy times in %v (allowed %d-%d)",
		monitor.resource.ResourceName(), monitor.busy[i], monitor.groups[i].Name, monitor.minimum, monitor.maximum)
}

func (monitor *LimitBusyTimesMonitor) clone(ctx *CopyContext) Monitor {
	return Copy(ctx, monitor, func(dst, src *LimitBusyTimesMonitor) {
		*dst = *src
		dst.leaf = src.cloneLeaf(ctx)
		dst.resource = src.resource.CloneResource(ctx)
		dst.busy = slices.Clone(src.busy)
		dst.dev = src.dev.Clone()
	})
}
