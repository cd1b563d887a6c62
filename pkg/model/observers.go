package model

import (
	"slices"

	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/samber/lo"
)

// eventInSoln relays the edits of one event's meets to the monitors watching it
type eventInSoln struct {
	soln      *Solution
	event     int
	observers []monitor.EventObserver
}

func (e *eventInSoln) EventName() string { return e.soln.instance.Events[e.event].Name }

func (e *eventInSoln) AttachMonitor(observer monitor.EventObserver) {
	for _, meet := range e.soln.meets {
		if meet.Event == e.event {
			observer.AddMeet(meet.Duration, meet.Assigned())
		}
	}
	e.observers = append(e.observers, observer)
}

func (e *eventInSoln) DetachMonitor(observer monitor.EventObserver) {
	e.observers = slices.DeleteFunc(e.observers, func(o monitor.EventObserver) bool { return o == observer })
}

func (e *eventInSoln) CloneEvent(ctx *monitor.CopyContext) monitor.Event {
	return monitor.Copy(ctx, e, func(dst, src *eventInSoln) {
		dst.soln = src.soln.clone(ctx)
		dst.event = src.event
		dst.observers = lo.Map(src.observers, func(observer monitor.EventObserver, _ int) monitor.EventObserver {
			return monitor.CloneMonitor(ctx, observer).(monitor.EventObserver)
		})
	})
}

func (e *eventInSoln) notify(callback func(observer monitor.EventObserver)) {
	for _, observer := range e.observers {
		callback(observer)
	}
	e.soln.touchEvent(e.event)
}

func (e *eventInSoln) flush() {
	for _, observer := range e.observers {
		observer.Flush()
	}
}

// resourceInSoln relays the occupancy changes of one resource to the monitors watching it
type resourceInSoln struct {
	soln      *Solution
	resource  int
	observers []monitor.ResourceObserver
}

func (r *resourceInSoln) ResourceName() string { return r.soln.instance.Resources[r.resource].Name }

func (r *resourceInSoln) AttachMonitor(observer monitor.ResourceObserver) {
	for time, count := range r.soln.counts[r.resource] {
		if count > 0 {
			observer.ChangeTimeCount(time, 0, count)
		}
	}
	r.observers = append(r.observers, observer)
}

func (r *resourceInSoln) DetachMonitor(observer monitor.ResourceObserver) {
	r.observers = slices.DeleteFunc(r.observers, func(o monitor.ResourceObserver) bool { return o == observer })
}

func (r *resourceInSoln) CloneResource(ctx *monitor.CopyContext) monitor.Resource {
	return monitor.Copy(ctx, r, func(dst, src *resourceInSoln) {
		dst.soln = src.soln.clone(ctx)
		dst.resource = src.resource
		dst.observers = lo.Map(src.observers, func(observer monitor.ResourceObserver, _ int) monitor.ResourceObserver {
			return monitor.CloneMonitor(ctx, observer).(monitor.ResourceObserver)
		})
	})
}

func (r *resourceInSoln) changeTimeCount(time, delta int) {
	counts := r.soln.counts[r.resource]
	oldCount := counts[time]
	counts[time] += delta
	for _, observer := range r.observers {
		observer.ChangeTimeCount(time, oldCount, counts[time])
	}
	r.soln.touchResource(r.resource)
}

func (r *resourceInSoln) flush() {
	for _, observer := range r.observers {
		observer.Flush()
	}
}
