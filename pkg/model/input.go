package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/limaJavier/hstt/pkg/monitor"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type ResourceKind string

const (
	ResourceTeacher ResourceKind = "teacher"
	ResourceClass   ResourceKind = "class"
	ResourceRoom    ResourceKind = "room"
)

type RawTimeGroup struct {
	Name  string
	Times []int
}

type RawResource struct {
	Name string
	Kind string
}

type RawEvent struct {
	Name      string
	Duration  int
	Resources []int // Preassigned resources
	Rooms     []int // Candidate rooms, empty when the event needs no room
	Split     []int // Initial durations of the event's meets
}

type RawConstraint struct {
	Name         string
	Kind         string
	Required     bool
	Weight       uint64
	CostFunction string
	Events       []int
	Resources    []int
	Times        []int
	TimeGroups   []int
	Minimum      int
	Maximum      int
	MinAmount    int
	MaxAmount    int
	MinDuration  int
	MaxDuration  int
}

type RawInstance struct {
	Name        string
	Times       []string
	TimeGroups  []RawTimeGroup
	Resources   []RawResource
	Events      []RawEvent
	Constraints []RawConstraint
}

type Resource struct {
	Id   int
	Name string
	Kind ResourceKind
}

type Event struct {
	Id        int
	Name      string
	Duration  int
	Resources []int
	Rooms     []int
	Split     []int
}

type Constraint struct {
	monitor.Constraint
	Events     []int
	Resources  []int
	Times      []int // Unavailable times
	TimeGroups []monitor.TimeGroup
	Minimum    int
	Maximum    int
	Limits     monitor.SplitLimits
}

type Instance struct {
	Name        string
	Times       []string
	TimeGroups  []monitor.TimeGroup
	Resources   []Resource
	Events      []Event
	Constraints []Constraint
	Rooms       []int // Resources of kind room
}

func InstanceFromJson(file string) (Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Instance{}, fmt.Errorf("cannot read instance: %w", err)
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Instance{}, fmt.Errorf("cannot parse instance %v: %w", file, err)
	}
	return decodeInstance(inputJson)
}

func InstanceFromYaml(file string) (Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Instance{}, fmt.Errorf("cannot read instance: %w", err)
	}
	var inputYaml map[string]any
	if err := yaml.Unmarshal(bytes, &inputYaml); err != nil {
		return Instance{}, fmt.Errorf("cannot parse instance %v: %w", file, err)
	}
	return decodeInstance(inputYaml)
}

func decodeInstance(input map[string]any) (Instance, error) {
	var rawInstance RawInstance
	if err := mapstructure.Decode(input, &rawInstance); err != nil {
		return Instance{}, fmt.Errorf("cannot decode instance: %w", err)
	}
	return ProcessRawInstance(rawInstance)
}

func ProcessRawInstance(raw RawInstance) (Instance, error) {
	totalTimes, totalResources, totalEvents := len(raw.Times), len(raw.Resources), len(raw.Events)
	if totalTimes == 0 {
		return Instance{}, fmt.Errorf("instance \"%v\" has no times", raw.Name)
	}

	instance := Instance{
		Name:  raw.Name,
		Times: raw.Times,
	}

	//** Time groups
	for _, rawGroup := range raw.TimeGroups {
		if time, ok := lo.Find(rawGroup.Times, outOfRange(totalTimes)); ok {
			return Instance{}, fmt.Errorf("time group \"%v\" references unknown time %d", rawGroup.Name, time)
		}
		instance.TimeGroups = append(instance.TimeGroups, monitor.TimeGroup{Name: rawGroup.Name, Times: rawGroup.Times})
	}

	//** Resources
	for id, rawResource := range raw.Resources {
		kind := ResourceKind(rawResource.Kind)
		if !slices.Contains([]ResourceKind{ResourceTeacher, ResourceClass, ResourceRoom}, kind) {
			return Instance{}, fmt.Errorf("resource \"%v\" has unknown kind \"%v\"", rawResource.Name, rawResource.Kind)
		}
		instance.Resources = append(instance.Resources, Resource{Id: id, Name: rawResource.Name, Kind: kind})
		if kind == ResourceRoom {
			instance.Rooms = append(instance.Rooms, id)
		}
	}

	//** Events
	for id, rawEvent := range raw.Events {
		if rawEvent.Duration <= 0 || rawEvent.Duration > totalTimes {
			return Instance{}, fmt.Errorf("event \"%v\" has invalid duration %d", rawEvent.Name, rawEvent.Duration)
		}
		if resource, ok := lo.Find(rawEvent.Resources, outOfRange(totalResources)); ok {
			return Instance{}, fmt.Errorf("event \"%v\" references unknown resource %d", rawEvent.Name, resource)
		}
		if room, ok := lo.Find(rawEvent.Rooms, func(room int) bool { return !slices.Contains(instance.Rooms, room) }); ok {
			return Instance{}, fmt.Errorf("event \"%v\" references %d as a room but it is not one", rawEvent.Name, room)
		}
		if len(lo.Uniq(rawEvent.Resources)) != len(rawEvent.Resources) {
			return Instance{}, fmt.Errorf("event \"%v\" references a resource more than once", rawEvent.Name)
		}

		split := rawEvent.Split
		if len(split) == 0 {
			split = []int{rawEvent.Duration}
		}
		if lo.Sum(split) != rawEvent.Duration || lo.SomeBy(split, func(duration int) bool { return duration <= 0 }) {
			return Instance{}, fmt.Errorf("split %v of event \"%v\" does not add up to its duration %d", split, rawEvent.Name, rawEvent.Duration)
		}

		instance.Events = append(instance.Events, Event{
			Id:        id,
			Name:      rawEvent.Name,
			Duration:  rawEvent.Duration,
			Resources: rawEvent.Resources,
			Rooms:     rawEvent.Rooms,
			Split:     split,
		})
	}

	//** Constraints
	for _, rawConstraint := range raw.Constraints {
		constraint, err := processRawConstraint(rawConstraint, instance, totalTimes, totalResources, totalEvents)
		if err != nil {
			return Instance{}, err
		}
		instance.Constraints = append(instance.Constraints, constraint)
	}

	return instance, nil
}

func processRawConstraint(raw RawConstraint, instance Instance, totalTimes, totalResources, totalEvents int) (Constraint, error) {
	kind, err := monitor.ParseKind(raw.Kind)
	if err != nil || kind == monitor.KindGroup {
		return Constraint{}, fmt.Errorf("constraint \"%v\" has unknown kind \"%v\"", raw.Name, raw.Kind)
	}

	function := monitor.Linear
	if raw.CostFunction != "" {
		if function, err = monitor.LookupCostFunction(raw.CostFunction); err != nil {
			return Constraint{}, fmt.Errorf("constraint \"%v\": %w", raw.Name, err)
		}
	}

	weight := raw.Weight
	if weight == 0 {
		weight = 1
	}

	// Empty references stand for every event or resource
	events, resources := raw.Events, raw.Resources
	if len(events) == 0 {
		events = lo.Range(totalEvents)
	}
	if len(resources) == 0 {
		resources = lo.Range(totalResources)
	}
	if event, ok := lo.Find(events, outOfRange(totalEvents)); ok {
		return Constraint{}, fmt.Errorf("constraint \"%v\" references unknown event %d", raw.Name, event)
	}
	if resource, ok := lo.Find(resources, outOfRange(totalResources)); ok {
		return Constraint{}, fmt.Errorf("constraint \"%v\" references unknown resource %d", raw.Name, resource)
	}
	if group, ok := lo.Find(raw.TimeGroups, outOfRange(len(instance.TimeGroups))); ok {
		return Constraint{}, fmt.Errorf("constraint \"%v\" references unknown time group %d", raw.Name, group)
	}
	if time, ok := lo.Find(raw.Times, outOfRange(totalTimes)); ok {
		return Constraint{}, fmt.Errorf("constraint \"%v\" references unknown time %d", raw.Name, time)
	}

	timeGroups := lo.Map(raw.TimeGroups, func(group int, _ int) monitor.TimeGroup { return instance.TimeGroups[group] })

	// Unavailable times are the listed times plus those of the listed time groups
	times := slices.Clone(raw.Times)
	for _, group := range timeGroups {
		times = append(times, group.Times...)
	}
	slices.Sort(times)
	times = slices.Compact(times)

	constraint := Constraint{
		Constraint: monitor.Constraint{
			Name:     raw.Name,
			Kind:     kind,
			Required: raw.Required,
			Weight:   weight,
			Function: function,
		},
		Events:     events,
		Resources:  resources,
		Times:      times,
		TimeGroups: timeGroups,
		Minimum:    raw.Minimum,
		Maximum:    raw.Maximum,
	}

	switch kind {
	case monitor.KindLimitBusyTimes:
		if len(timeGroups) == 0 {
			return Constraint{}, fmt.Errorf("limit-busy-times constraint \"%v\" needs time groups", raw.Name)
		}
		if constraint.Maximum == 0 {
			constraint.Maximum = totalTimes
		}
		if constraint.Minimum > constraint.Maximum {
			return Constraint{}, fmt.Errorf("constraint \"%v\" has minimum %d above maximum %d", raw.Name, constraint.Minimum, constraint.Maximum)
		}
	case monitor.KindSplitEvents:
		constraint.Limits = monitor.SplitLimits{
			MinAmount:   raw.MinAmount,
			MaxAmount:   raw.MaxAmount,
			MinDuration: raw.MinDuration,
			MaxDuration: raw.MaxDuration,
		}
		if constraint.Limits.MaxAmount == 0 {
			constraint.Limits.MaxAmount = totalTimes
		}
		if constraint.Limits.MaxDuration == 0 {
			constraint.Limits.MaxDuration = totalTimes
		}
		if constraint.Limits.MinAmount > constraint.Limits.MaxAmount || constraint.Limits.MinDuration > constraint.Limits.MaxDuration {
			return Constraint{}, fmt.Errorf("split-events constraint \"%v\" has inconsistent limits %+v", raw.Name, constraint.Limits)
		}
	}

	return constraint, nil
}

func outOfRange(size int) func(int) bool {
	return func(i int) bool { return i < 0 || i >= size }
}
