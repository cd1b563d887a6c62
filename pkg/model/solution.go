package model

import (
	"fmt"
	"slices"

	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/samber/lo"
)

// Meet is a piece of an event scheduled as one block of consecutive times
type Meet struct {
	Event    int
	Duration int
	Start    int // -1 while unassigned
	Room     int // Resource id of the room, -1 when the meet has none
}

func (meet Meet) Assigned() bool { return meet.Start >= 0 }

// Solution holds the meets of an instance, the per-resource occupancy they induce and the
// monitor tree that prices them. Every edit notifies the observers and flushes the touched
// monitors once, so the root cost is always current
type Solution struct {
	instance  *Instance
	meets     []Meet
	counts    [][]int // Resource -> time -> meets occupying it
	events    []*eventInSoln
	resources []*resourceInSoln

	tree       *monitor.Tree
	root       *monitor.GroupMonitor
	kindGroups map[monitor.Kind]*monitor.GroupMonitor

	touchedEvents    []int
	touchedResources []int
}

// NewSolution splits every event into its initial meets, none of them assigned
func NewSolution(instance *Instance) *Solution {
	meets := make([]Meet, 0, len(instance.Events))
	for _, event := range instance.Events {
		for _, duration := range event.Split {
			meets = append(meets, Meet{Event: event.Id, Duration: duration, Start: -1, Room: -1})
		}
	}
	return newSolution(instance, meets)
}

func newSolution(instance *Instance, meets []Meet) *Solution {
	soln := &Solution{
		instance:   instance,
		meets:      meets,
		counts:     make([][]int, len(instance.Resources)),
		tree:       monitor.NewTree(),
		kindGroups: make(map[monitor.Kind]*monitor.GroupMonitor),
	}

	//** Occupancy
	for resource := range instance.Resources {
		soln.counts[resource] = make([]int, len(instance.Times))
	}
	for _, meet := range meets {
		if !meet.Assigned() {
			continue
		}
		for _, resource := range soln.meetResources(meet) {
			for time := meet.Start; time < meet.Start+meet.Duration; time++ {
				soln.counts[resource][time]++
			}
		}
	}

	//** Structural entities
	soln.events = lo.Map(instance.Events, func(event Event, _ int) *eventInSoln {
		return &eventInSoln{soln: soln, event: event.Id}
	})
	soln.resources = lo.Map(instance.Resources, func(resource Resource, _ int) *resourceInSoln {
		return &resourceInSoln{soln: soln, resource: resource.Id}
	})

	//** Monitors
	soln.root = soln.tree.NewGroup(instance.Name)
	for _, kind := range monitor.ConstraintKinds {
		group := soln.tree.NewGroup(kind.String())
		soln.root.AddChild(group)
		soln.kindGroups[kind] = group
	}
	for i := range instance.Constraints {
		soln.addConstraint(&instance.Constraints[i])
	}

	// Attaching replays the current meets and occupancy into every monitor
	soln.root.AttachToSoln()
	return soln
}

func (soln *Solution) addConstraint(constraint *Constraint) {
	group := soln.kindGroups[constraint.Kind]
	base := &constraint.Constraint
	switch constraint.Kind {
	case monitor.KindAssignTime:
		for _, event := range constraint.Events {
			group.AddChild(monitor.NewAssignTimeMonitor(soln.tree, base, soln.events[event]))
		}
	case monitor.KindSplitEvents:
		for _, event := range constraint.Events {
			group.AddChild(monitor.NewSplitEventsMonitor(soln.tree, base, soln.events[event], constraint.Limits))
		}
	case monitor.KindAvoidClashes:
		for _, resource := range constraint.Resources {
			group.AddChild(monitor.NewAvoidClashesMonitor(soln.tree, base, soln.resources[resource]))
		}
	case monitor.KindAvoidUnavailableTimes:
		for _, resource := range constraint.Resources {
			group.AddChild(monitor.NewAvoidUnavailableTimesMonitor(soln.tree, base, soln.resources[resource], constraint.Times))
		}
	case monitor.KindLimitBusyTimes:
		for _, resource := range constraint.Resources {
			group.AddChild(monitor.NewLimitBusyTimesMonitor(soln.tree, base, soln.resources[resource], constraint.TimeGroups, constraint.Minimum, constraint.Maximum))
		}
	}
}

func (soln *Solution) Instance() *Instance { return soln.instance }

func (soln *Solution) Tree() *monitor.Tree { return soln.tree }

func (soln *Solution) Root() *monitor.GroupMonitor { return soln.root }

func (soln *Solution) Cost() cost.Cost { return soln.root.Cost() }

func (soln *Solution) MeetCount() int { return len(soln.meets) }

func (soln *Solution) Meet(m int) Meet { return soln.meets[m] }

func (soln *Solution) Meets() []Meet { return slices.Clone(soln.meets) }

// MeetsOf lists the meets of an event in solution order
func (soln *Solution) MeetsOf(event int) []int {
	meets := make([]int, 0)
	for m, meet := range soln.meets {
		if meet.Event == event {
			meets = append(meets, m)
		}
	}
	return meets
}

// TimeCount is the number of meets occupying the resource at the time
func (soln *Solution) TimeCount(resource, time int) int { return soln.counts[resource][time] }

// KindGroup returns the group holding every monitor of a constraint kind
func (soln *Solution) KindGroup(kind monitor.Kind) *monitor.GroupMonitor { return soln.kindGroups[kind] }

type KindCost struct {
	Kind     string
	Monitors int
	Cost     cost.Cost
}

// CostByKind breaks the solution cost down by constraint kind
func (soln *Solution) CostByKind() []KindCost {
	return lo.Map(monitor.ConstraintKinds, func(kind monitor.Kind, _ int) KindCost {
		total, count := soln.root.CostByType(kind)
		return KindCost{Kind: kind.String(), Monitors: count, Cost: total}
	})
}

// Defects describes every deviation of every monitor with non-zero cost, most expensive first
func (soln *Solution) Defects() []string {
	descriptions := make([]string, 0)
	for _, kind := range monitor.ConstraintKinds {
		group := soln.kindGroups[kind]
		group.DefectSort()
		for _, defect := range group.Defects() {
			constraintMonitor := defect.(monitor.ConstraintMonitor)
			for i := range constraintMonitor.DeviationCount() {
				if constraintMonitor.Deviation(i) == 0 {
					continue
				}
				descriptions = append(descriptions, fmt.Sprintf("[%v] %v %v: %v",
					kind, constraintMonitor.Constraint().Name, constraintMonitor.Cost(), constraintMonitor.DeviationDescription(i)))
			}
		}
	}
	return descriptions
}

// Clone duplicates the solution together with its monitor tree
func (soln *Solution) Clone() *Solution {
	return soln.clone(monitor.NewCopyContext())
}

func (soln *Solution) clone(ctx *monitor.CopyContext) *Solution {
	return monitor.Copy(ctx, soln, func(dst, src *Solution) {
		dst.instance = src.instance
		dst.meets = slices.Clone(src.meets)
		dst.counts = lo.Map(src.counts, func(counts []int, _ int) []int { return slices.Clone(counts) })
		dst.events = lo.Map(src.events, func(e *eventInSoln, _ int) *eventInSoln {
			return e.CloneEvent(ctx).(*eventInSoln)
		})
		dst.resources = lo.Map(src.resources, func(r *resourceInSoln, _ int) *resourceInSoln {
			return r.CloneResource(ctx).(*resourceInSoln)
		})
		dst.tree = src.tree.Clone(ctx)
		dst.root = monitor.CloneMonitor(ctx, src.root).(*monitor.GroupMonitor)
		dst.kindGroups = make(map[monitor.Kind]*monitor.GroupMonitor, len(src.kindGroups))
		for kind, group := range src.kindGroups {
			dst.kindGroups[kind] = monitor.CloneMonitor(ctx, group).(*monitor.GroupMonitor)
		}
	})
}

// meetResources lists the resources a meet occupies: its event's preassigned resources plus its room
func (soln *Solution) meetResources(meet Meet) []int {
	resources := soln.instance.Events[meet.Event].Resources
	if meet.Room < 0 || slices.Contains(resources, meet.Room) {
		return resources
	}
	return append(slices.Clone(resources), meet.Room)
}

func (soln *Solution) touchEvent(event int) {
	if !slices.Contains(soln.touchedEvents, event) {
		soln.touchedEvents = append(soln.touchedEvents, event)
	}
}

func (soln *Solution) touchResource(resource int) {
	if !slices.Contains(soln.touchedResources, resource) {
		soln.touchedResources = append(soln.touchedResources, resource)
	}
}

// occupy adds delta to the counts of every resource of an assigned meet over its times
func (soln *Solution) occupy(meet Meet, delta int) {
	if !meet.Assigned() {
		return
	}
	for _, resource := range soln.meetResources(meet) {
		soln.occupyResource(resource, meet.Start, meet.Duration, delta)
	}
}

func (soln *Solution) occupyResource(resource, start, duration, delta int) {
	for time := start; time < start+duration; time++ {
		soln.resources[resource].changeTimeCount(time, delta)
	}
}

// flush publishes the staged deviations of every monitor touched by the current edit
func (soln *Solution) flush() {
	for _, event := range soln.touchedEvents {
		soln.events[event].flush()
	}
	for _, resource := range soln.touchedResources {
		soln.resources[resource].flush()
	}
	soln.touchedEvents = soln.touchedEvents[:0]
	soln.touchedResources = soln.touchedResources[:0]
}
