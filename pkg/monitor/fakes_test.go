package monitor

import (
	"slices"

	"github.com/limaJavier/hstt/pkg/cost"
)

// stubMonitor lets tests drive changeCost directly
type stubMonitor struct {
	leaf
}

func newStubMonitor(tree *Tree, kind Kind) *stubMonitor {
	monitor := &stubMonitor{leaf: newLeaf(tree, &Constraint{Name: "stub", Kind: kind, Weight: 1})}
	tree.bind(monitor.id, monitor)
	return monitor
}

func (monitor *stubMonitor) set(c cost.Cost) { monitor.changeCost(c) }

func (monitor *stubMonitor) AttachToSoln()   { monitor.mustAttach() }
func (monitor *stubMonitor) DetachFromSoln() { monitor.mustDetach(); monitor.finishDetach() }
func (monitor *stubMonitor) AttachCheck() {
	if !monitor.Attached() {
		monitor.AttachToSoln()
	}
}
func (monitor *stubMonitor) Flush() {}

func (monitor *stubMonitor) clone(ctx *CopyContext) Monitor {
	return Copy(ctx, monitor, func(dst, src *stubMonitor) {
		dst.leaf = src.cloneLeaf(ctx)
	})
}

type fakeMeet struct {
	duration int
	assigned bool
}

// fakeEvent is a minimal structural event
type fakeEvent struct {
	name      string
	meets     []fakeMeet
	observers []EventObserver
}

func (event *fakeEvent) EventName() string { return event.name }

func (event *fakeEvent) AttachMonitor(observer EventObserver) {
	for _, meet := range event.meets {
		observer.AddMeet(meet.duration, meet.assigned)
	}
	event.observers = append(event.observers, observer)
}

func (event *fakeEvent) DetachMonitor(observer EventObserver) {
	event.observers = slices.DeleteFunc(event.observers, func(o EventObserver) bool { return o == observer })
}

func (event *fakeEvent) CloneEvent(ctx *CopyContext) Event {
	return Copy(ctx, event, func(dst, src *fakeEvent) {
		dst.name = src.name
		dst.meets = slices.Clone(src.meets)
		for _, observer := range src.observers {
			dst.observers = append(dst.observers, CloneMonitor(ctx, observer).(EventObserver))
		}
	})
}

func (event *fakeEvent) flush() {
	for _, observer := range event.observers {
		observer.Flush()
	}
}

func (event *fakeEvent) addMeet(duration int, assigned bool) {
	event.meets = append(event.meets, fakeMeet{duration, assigned})
	for _, observer := range event.observers {
		observer.AddMeet(duration, assigned)
	}
	event.flush()
}

func (event *fakeEvent) split(i, duration1 int) {
	meet := event.meets[i]
	event.meets[i].duration = duration1
	event.meets = append(event.meets, fakeMeet{meet.duration - duration1, meet.assigned})
	for _, observer := range event.observers {
		observer.SplitMeet(meet.duration, duration1, meet.duration-duration1, meet.assigned)
	}
	event.flush()
}

func (event *fakeEvent) assign(i int) {
	event.meets[i].assigned = true
	for _, observer := range event.observers {
		observer.AssignTime(event.meets[i].duration)
	}
	event.flush()
}

// fakeResource is a minimal structural resource with one occupancy count per time
type fakeResource struct {
	name      string
	counts    []int
	observers []ResourceObserver
}

func newFakeResource(name string, times int) *fakeResource {
	return &fakeResource{name: name, counts: make([]int, times)}
}

func (resource *fakeResource) ResourceName() string { return resource.name }

func (resource *fakeResource) AttachMonitor(observer ResourceObserver) {
	for time, count := range resource.counts {
		if count > 0 {
			observer.ChangeTimeCount(time, 0, count)
		}
	}
	resource.observers = append(resource.observers, observer)
}

func (resource *fakeResource) DetachMonitor(observer ResourceObserver) {
	resource.observers = slices.DeleteFunc(resource.observers, func(o ResourceObserver) bool { return o == observer })
}

func (resource *fakeResource) CloneResource(ctx *CopyContext) Resource {
	return Copy(ctx, resource, func(dst, src *fakeResource) {
		dst.name = src.name
		dst.counts = slices.Clone(src.counts)
		for _, observer := range src.observers {
			dst.observers = append(dst.observers, CloneMonitor(ctx, observer).(ResourceObserver))
		}
	})
}

// occupy adds delta meets at each of the given times as one logical edit
func (resource *fakeResource) occupy(delta int, times ...int) {
	for _, time := range times {
		oldCount := resource.counts[time]
		resource.counts[time] += delta
		for _, observer := range resource.observers {
			observer.ChangeTimeCount(time, oldCount, resource.counts[time])
		}
	}
	for _, observer := range resource.observers {
		observer.Flush()
	}
}
