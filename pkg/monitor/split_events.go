package monitor

import "fmt"

// SplitLimits bounds the number of meets of an event and the duration of each meet
type SplitLimits struct {
	MinAmount   int
	MaxAmount   int
	MinDuration int
	MaxDuration int
}

func (limits SplitLimits) durationOk(duration int) bool {
	return duration >= limits.MinDuration && duration <= limits.MaxDuration
}

func (limits SplitLimits) amountDeviation(amount int) int {
	if amount < limits.MinAmount {
		return limits.MinAmount - amount
	} else if amount > limits.MaxAmount {
		return amount - limits.MaxAmount
	}
	return 0
}

// SplitEventsMonitor bills meets whose duration is out of bounds plus the distance of the
// meet count from its bounds. An event with no meets deviates by MinAmount
type SplitEventsMonitor struct {
	leaf
	event        Event
	limits       SplitLimits
	amount       int
	badDurations int
	deviation    int
	dev          *DevMonitor
}

func NewSplitEventsMonitor(tree *Tree, constraint *Constraint, event Event, limits SplitLimits) *SplitEventsMonitor {
	monitor := &SplitEventsMonitor{
		leaf:   newLeaf(tree, constraint),
		event:  event,
		limits: limits,
		dev:    NewDevMonitor(),
	}
	tree.bind(monitor.id, monitor)
	return monitor
}

func (monitor *SplitEventsMonitor) Event() Event { return monitor.event }

func (monitor *SplitEventsMonitor) Limits() SplitLimits { return monitor.limits }

func (monitor *SplitEventsMonitor) AttachToSoln() {
	monitor.mustAttach()
	monitor.refresh()
	monitor.event.AttachMonitor(monitor)
	monitor.Flush()
}

func (monitor *SplitEventsMonitor) DetachFromSoln() {
	monitor.mustDetach()
	monitor.event.DetachMonitor(monitor)
	monitor.amount, monitor.badDurations, monitor.deviation = 0, 0, 0
	monitor.dev.Reset()
	monitor.finishDetach()
}

func (monitor *SplitEventsMonitor) AttachCheck() {
	if !monitor.Attached() {
		monitor.AttachToSoln()
	}
}

func (monitor *SplitEventsMonitor) Flush() {
	if monitor.Attached() {
		monitor.publish(monitor.dev)
	}
}

func (monitor *SplitEventsMonitor) refresh() {
	deviation := monitor.badDurations + monitor.limits.amountDeviation(monitor.amount)
	monitor.dev.Update(monitor.deviation, deviation)
	monitor.deviation = deviation
}

func (monitor *SplitEventsMonitor) add(duration int) {
	monitor.amount++
	if !monitor.limits.durationOk(duration) {
		monitor.badDurations++
	}
}

func (monitor *SplitEventsMonitor) remove(duration int) {
	monitor.amount--
	if !monitor.limits.durationOk(duration) {
		monitor.badDurations--
	}
}

func (monitor *SplitEventsMonitor) AddMeet(duration int, assigned bool) {
	monitor.add(duration)
	monitor.refresh()
}

func (monitor *SplitEventsMonitor) DeleteMeet(duration int, assigned bool) {
	monitor.remove(duration)
	monitor.refresh()
}

func (monitor *SplitEventsMonitor) SplitMeet(duration, duration1, duration2 int, assigned bool) {
	monitor.remove(duration)
	monitor.add(duration1)
	monitor.add(duration2)
	monitor.refresh()
}

func (monitor *SplitEventsMonitor) MergeMeet(duration1, duration2, duration int, assigned bool) {
	monitor.remove(duration1)
	monitor.remove(duration2)
	monitor.add(duration)
	monitor.refresh()
}

func (monitor *SplitEventsMonitor) AssignTime(duration int) {}

func (monitor *SplitEventsMonitor) UnassignTime(duration int) {}

func (monitor *SplitEventsMonitor) DeviationCount() int { return 1 }

func (monitor *SplitEventsMonitor) Deviation(i int) int {
	monitor.checkDeviation(i, 1)
	return monitor.deviation
}

func (monitor *SplitEventsMonitor) DeviationDescription(i int) string {
	monitor.checkDeviation(i, 1)
	return fmt.Sprintf("%v: %d meets (allowed %d-%d), %d with duration outside %d-%d",
		monitor.event.EventName(), monitor.amount, monitor.limits.MinAmount, monitor.limits.MaxAmount,
		monitor.badDurations, monitor.limits.MinDuration, monitor.limits.MaxDuration)
}

func (monitor *SplitEventsMonitor) clone(ctx *CopyContext) Monitor {
	return Copy(ctx, monitor, func(dst, src *SplitEventsMonitor) {
		*dst = *src
		dst.leaf = src.cloneLeaf(ctx)
		dst.event = src.event.CloneEvent(ctx)
		dst.dev = src.dev.Clone()
	})
}
